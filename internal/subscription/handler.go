package subscription

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"gymlite/internal/api"
	"gymlite/internal/logger"
	"gymlite/internal/metrics"
	"gymlite/internal/plan"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

// ReminderSender is implemented by the email service. A nil sender disables
// expiry reminders without touching the reconcile path.
type ReminderSender interface {
	SendExpiryReminder(sub ExpiringSubscription)
}

const reminderWindowDays = 7

type Handler struct {
	repo      *Repository
	reminders ReminderSender
}

func NewHandler(db *sqlx.DB, reminders ReminderSender) *Handler {
	return &Handler{repo: NewRepository(db), reminders: reminders}
}

// @Summary      Enroll a member in a plan
// @Description  End date is start date plus the plan duration in calendar months.
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body subscription.CreateSubscriptionRequest true "Enrollment payload"
// @Success      201 {object} subscription.Subscription
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /subscriptions [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	startDate := time.Now().UTC().Truncate(24 * time.Hour)
	if req.StartDate != "" {
		parsed, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "start_date must be YYYY-MM-DD"})
			return
		}
		startDate = parsed
	}

	sub, err := h.repo.Create(c.Request.Context(), req.MemberID, req.PlanID, startDate)
	if err != nil {
		switch {
		case errors.Is(err, plan.ErrPlanNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Plan not found"})
		case errors.Is(err, ErrMemberMissing):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create subscription"})
		}
		return
	}

	c.JSON(http.StatusCreated, sub)
}

// @Summary      Subscription history for a member
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        memberID path int true "Member ID"
// @Success      200 {array} subscription.SubscriptionDetail
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /members/{memberID}/subscriptions [get]
func (h *Handler) ListByMember(c *gin.Context) {
	memberID, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid member ID"})
		return
	}

	subs, err := h.repo.ListByMember(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch subscriptions"})
		return
	}

	c.JSON(http.StatusOK, subs)
}

// @Summary      Active subscription for a member
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        memberID path int true "Member ID"
// @Success      200 {object} subscription.Subscription
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /members/{memberID}/subscriptions/active [get]
func (h *Handler) Active(c *gin.Context) {
	memberID, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid member ID"})
		return
	}

	sub, err := h.repo.ActiveForMember(c.Request.Context(), memberID)
	if err != nil {
		if errors.Is(err, ErrNoneActive) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch subscription"})
		return
	}

	c.JSON(http.StatusOK, sub)
}

// @Summary      Cancel a subscription
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        subscriptionID path int true "Subscription ID"
// @Success      200 {object} api.MessageResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /subscriptions/{subscriptionID}/cancel [post]
func (h *Handler) Cancel(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("subscriptionID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid subscription ID"})
		return
	}

	if err := h.repo.Cancel(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrSubscriptionNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Subscription not found"})
		case errors.Is(err, ErrAlreadyCancelled):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to cancel subscription"})
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Subscription cancelled"})
}

// @Summary      Reconcile subscription statuses
// @Description  Admin-only: expires lapsed subscriptions and queues renewal reminders.
// @Tags         subscriptions,admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]int64
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/subscriptions/reconcile [post]
func (h *Handler) Reconcile(c *gin.Context) {
	flipped, err := h.repo.ReconcileStatuses(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to reconcile subscriptions"})
		return
	}

	metrics.RecordReconcileRun(flipped)
	logger.Info("subscription reconcile", "expired", flipped)

	if h.reminders != nil {
		expiring, err := h.repo.ExpiringWithin(c.Request.Context(), reminderWindowDays)
		if err != nil {
			logger.Error("expiry reminder lookup failed", "error", err)
		} else {
			for _, sub := range expiring {
				h.reminders.SendExpiryReminder(sub)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"expired": flipped})
}
