package plan

import (
	"errors"
	"net/http"

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
// @Summary      Create plan
// @Description  Admin-only: registers a new subscription plan.
// @Tags         plans,admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreatePlanRequest  true  "Plan payload"
// @Success      201      {object}  Plan
// @Failure      400      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /admin/plans [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	p, err := h.repo.Create(c.Request.Context(), &Plan{
		Name:           req.Name,
		PriceCents:     req.PriceCents,
		DurationMonths: req.DurationMonths,
		ClassLimit:     req.ClassLimit,
		Perks:          req.Perks,
		Description:    req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateName):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrInvalidPlan):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create plan"})
		}
		return
	}

	c.JSON(http.StatusCreated, p)
}

// List godoc
// @Summary      List plans
// @Tags         plans
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Plan
// @Failure      500  {object}  api.ErrorResponse
// @Router       /plans [get]
func (h *Handler) List(c *gin.Context) {
	plans, err := h.repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch plans"})
		return
	}

	c.JSON(http.StatusOK, plans)
}
