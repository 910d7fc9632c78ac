package reservation_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gymlite/internal/logger"
	"gymlite/internal/reservation"
)

type MockRepo struct {
	mock.Mock
}

func (m *MockRepo) Reserve(ctx context.Context, memberID, sessionID int) (*reservation.Reservation, error) {
	args := m.Called(ctx, memberID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reservation.Reservation), args.Error(1)
}

func (m *MockRepo) FindDetail(ctx context.Context, id int) (*reservation.ReservationDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reservation.ReservationDetail), args.Error(1)
}

func (m *MockRepo) Cancel(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepo) MarkAttendance(ctx context.Context, id int, attended bool) error {
	args := m.Called(ctx, id, attended)
	return args.Error(0)
}

func (m *MockRepo) ListByMember(ctx context.Context, memberID int) ([]reservation.ReservationDetail, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]reservation.ReservationDetail), args.Error(1)
}

func (m *MockRepo) ListBySession(ctx context.Context, sessionID int) ([]reservation.ReservationDetail, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]reservation.ReservationDetail), args.Error(1)
}

func newReserveRouter(repo reservation.Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := reservation.NewHandler(repo, nil)
	router.POST("/sessions/:sessionID/reserve", handler.Reserve)
	router.POST("/reservations/:reservationID/cancel", handler.Cancel)
	router.PATCH("/reservations/:reservationID/attendance", handler.MarkAttendance)
	return router
}

func postReserve(router *gin.Engine, sessionID int, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", fmt.Sprintf("/sessions/%d/reserve", sessionID), bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestMain(m *testing.M) {
	logger.Init()
	m.Run()
}

func TestReserveHandler_StatusMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"session not found", reservation.ErrSessionNotFound, http.StatusNotFound},
		{"no active subscription", reservation.ErrNoActiveSubscription, http.StatusUnprocessableEntity},
		{"capacity exceeded", reservation.ErrCapacityExceeded, http.StatusConflict},
		{"duplicate", reservation.ErrDuplicateReservation, http.StatusConflict},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(MockRepo)
			repo.On("Reserve", mock.Anything, 7, 3).Return(nil, tc.err).Once()

			w := postReserve(newReserveRouter(repo), 3, `{"member_id": 7}`)

			require.Equal(t, tc.wantCode, w.Code)

			// The rejection reason must survive to the client
			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.err.Error(), body["error"])
			repo.AssertExpectations(t)
		})
	}
}

func TestReserveHandler_Success(t *testing.T) {
	repo := new(MockRepo)
	res := &reservation.Reservation{ID: 11, MemberID: 7, ClassSessionID: 3, Status: reservation.StatusConfirmed}
	repo.On("Reserve", mock.Anything, 7, 3).Return(res, nil).Once()

	w := postReserve(newReserveRouter(repo), 3, `{"member_id": 7}`)

	require.Equal(t, http.StatusCreated, w.Code)

	var got reservation.Reservation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 11, got.ID)
	assert.Equal(t, reservation.StatusConfirmed, got.Status)
	repo.AssertExpectations(t)
}

func TestReserveHandler_BadInput(t *testing.T) {
	repo := new(MockRepo)
	router := newReserveRouter(repo)

	t.Run("malformed JSON", func(t *testing.T) {
		w := postReserve(router, 3, `{"member_id": nope}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing member_id", func(t *testing.T) {
		w := postReserve(router, 3, `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("non-numeric session ID", func(t *testing.T) {
		req, _ := http.NewRequest("POST", "/sessions/abc/reserve", bytes.NewBufferString(`{"member_id": 7}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	repo.AssertNotCalled(t, "Reserve")
}

func TestCancelHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := new(MockRepo)
		repo.On("Cancel", mock.Anything, 5).Return(nil).Once()

		req, _ := http.NewRequest("POST", "/reservations/5/cancel", nil)
		w := httptest.NewRecorder()
		newReserveRouter(repo).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		repo.AssertExpectations(t)
	})

	t.Run("not confirmed", func(t *testing.T) {
		repo := new(MockRepo)
		repo.On("Cancel", mock.Anything, 5).Return(reservation.ErrReservationNotFoundOrNotConfirmed).Once()

		req, _ := http.NewRequest("POST", "/reservations/5/cancel", nil)
		w := httptest.NewRecorder()
		newReserveRouter(repo).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestMarkAttendanceHandler(t *testing.T) {
	repo := new(MockRepo)
	repo.On("MarkAttendance", mock.Anything, 5, true).Return(nil).Once()

	req, _ := http.NewRequest("PATCH", "/reservations/5/attendance", bytes.NewBufferString(`{"attended": true}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	newReserveRouter(repo).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	repo.AssertExpectations(t)
}
