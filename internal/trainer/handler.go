package trainer

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"gymlite/internal/api"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	repo *Repository
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{repo: NewRepository(db)}
}

// Create godoc
// @Summary      Create trainer
// @Tags         trainers,admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateTrainerRequest  true  "Trainer payload"
// @Success      201      {object}  Trainer
// @Failure      400      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /admin/trainers [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	born, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "birth_date must be YYYY-MM-DD"})
		return
	}

	var phone *string
	if req.Phone != "" {
		phone = &req.Phone
	}

	tr, err := h.repo.Create(c.Request.Context(), &Trainer{
		TaxID:     req.TaxID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     phone,
		BirthDate: born,
		Specialty: req.Specialty,
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateTaxID) {
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create trainer"})
		return
	}

	c.JSON(http.StatusCreated, tr)
}

// List godoc
// @Summary      List trainers
// @Tags         trainers
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Trainer
// @Failure      500  {object}  api.ErrorResponse
// @Router       /trainers [get]
func (h *Handler) List(c *gin.Context) {
	trainers, err := h.repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch trainers"})
		return
	}

	c.JSON(http.StatusOK, trainers)
}

// Delete godoc
// @Summary      Delete trainer
// @Description  Fails while the trainer still has scheduled sessions.
// @Tags         trainers,admin
// @Security     BearerAuth
// @Produce      json
// @Param        trainerID  path      int  true  "Trainer ID"
// @Success      200        {object}  api.MessageResponse
// @Failure      400        {object}  api.ErrorResponse
// @Failure      404        {object}  api.ErrorResponse
// @Failure      409        {object}  api.ErrorResponse
// @Router       /admin/trainers/{trainerID} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("trainerID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid trainer ID"})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrTrainerNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Trainer not found"})
		case errors.Is(err, ErrTrainerInUse):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to delete trainer"})
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Trainer deleted"})
}
