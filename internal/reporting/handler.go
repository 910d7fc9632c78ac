package reporting

import (
	"net/http"
	"strconv"

	"gymlite/internal/api"
	"gymlite/internal/subscription"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

const defaultExpiryWindowDays = 7

type Handler struct {
	repo *Repository
	subs *subscription.Repository
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{repo: NewRepository(db), subs: subscription.NewRepository(db)}
}

// @Summary      Dashboard summary
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} reporting.Summary
// @Failure      500 {object} api.ErrorResponse
// @Router       /dashboard/summary [get]
func (h *Handler) Summary(c *gin.Context) {
	summary, err := h.repo.Summary(c.Request.Context(), defaultExpiryWindowDays)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to build summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// @Summary      Memberships expiring soon
// @Description  ?days=N widens the window (default 7).
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        days query int false "Window in days"
// @Success      200 {array} subscription.ExpiringSubscription
// @Failure      500 {object} api.ErrorResponse
// @Router       /dashboard/expiring [get]
func (h *Handler) Expiring(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil || days <= 0 {
		days = defaultExpiryWindowDays
	}

	expiring, err := h.subs.ExpiringWithin(c.Request.Context(), days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch expiring memberships"})
		return
	}

	c.JSON(http.StatusOK, expiring)
}

// @Summary      Upcoming sessions with few seats left
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} reporting.LowSeatSession
// @Failure      500 {object} api.ErrorResponse
// @Router       /dashboard/low-seats [get]
func (h *Handler) LowSeats(c *gin.Context) {
	sessions, err := h.repo.LowSeatSessions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch sessions"})
		return
	}

	c.JSON(http.StatusOK, sessions)
}

// @Summary      Sessions and reservations by class type
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} reporting.TypeStat
// @Failure      500 {object} api.ErrorResponse
// @Router       /dashboard/session-types [get]
func (h *Handler) SessionTypes(c *gin.Context) {
	stats, err := h.repo.SessionsByType(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// @Summary      Completed payments by method
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} reporting.MethodStat
// @Failure      500 {object} api.ErrorResponse
// @Router       /dashboard/payment-methods [get]
func (h *Handler) PaymentMethods(c *gin.Context) {
	stats, err := h.repo.PaymentMethodStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// @Summary      Confirmed reservations per day, last 7 days
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} reporting.DayCount
// @Failure      500 {object} api.ErrorResponse
// @Router       /dashboard/reservations-week [get]
func (h *Handler) ReservationsWeek(c *gin.Context) {
	series, err := h.repo.ReservationsLastWeek(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch series"})
		return
	}

	c.JSON(http.StatusOK, series)
}
