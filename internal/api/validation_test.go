package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name   string `binding:"required"`
	Email  string `binding:"omitempty,email"`
	Seats  int    `binding:"required,gt=0"`
	TaxID  string `binding:"required,min=9"`
	Filler string
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid struct returns nothing", func(t *testing.T) {
		errs := ValidateStruct(sampleRequest{Name: "Spin", Seats: 10, TaxID: "11.111.111-1"})
		assert.Empty(t, errs)
	})

	t.Run("reads binding tags", func(t *testing.T) {
		errs := ValidateStruct(sampleRequest{Email: "not-an-email", Seats: -1, TaxID: "short"})
		require.Len(t, errs, 4)

		byField := map[string]ValidationError{}
		for _, e := range errs {
			byField[e.Field] = e
		}

		assert.Equal(t, "Name is required", byField["Name"].Message)
		assert.Equal(t, "Email must be a valid email address", byField["Email"].Message)
		assert.Equal(t, "Seats must be greater than 0", byField["Seats"].Message)
		assert.Equal(t, "TaxID must be at least 9 characters", byField["TaxID"].Message)
	})

	t.Run("non-struct input returns nothing", func(t *testing.T) {
		assert.Nil(t, ValidateStruct("not a struct"))
	})
}

func TestRespondWithValidationErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondWithValidationErrors(c, []ValidationError{
		{Field: "Name", Tag: "required", Message: "Name is required"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Error   string            `json:"error"`
		Details []ValidationError `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "validation failed", body.Error)
	require.Len(t, body.Details, 1)
	assert.Equal(t, "Name is required", body.Details[0].Message)
}
