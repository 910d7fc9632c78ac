package reservation

import (
	"errors"
	"net/http"
	"strconv"

	"gymlite/internal/api"
	"gymlite/internal/logger"
	"gymlite/internal/metrics"

	"github.com/gin-gonic/gin"
)

// ConfirmationSender is implemented by the email service. Nil disables the
// confirmation mail.
type ConfirmationSender interface {
	SendReservationConfirmed(detail ReservationDetail)
}

type ReserveRequest struct {
	MemberID int `json:"member_id" binding:"required"`
}

type Handler struct {
	repo          Repository
	confirmations ConfirmationSender
}

func NewHandler(repo Repository, confirmations ConfirmationSender) *Handler {
	return &Handler{repo: repo, confirmations: confirmations}
}

// @Summary      Reserve a seat in a class session
// @Description  Rejections are distinct: 422 without an active subscription,
// @Description  409 when the session is full, 409 when the member already holds one.
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        sessionID path int true "Class session ID"
// @Param        request body reservation.ReserveRequest true "Member"
// @Success      201 {object} reservation.Reservation
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      422 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /sessions/{sessionID}/reserve [post]
func (h *Handler) Reserve(c *gin.Context) {
	sessionID, err := strconv.Atoi(c.Param("sessionID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid session ID"})
		return
	}

	var req ReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	res, err := h.repo.Reserve(c.Request.Context(), req.MemberID, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, ErrSessionNotFound):
			metrics.RecordReservation("session_not_found")
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrNoActiveSubscription):
			metrics.RecordReservation("no_subscription")
			c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrCapacityExceeded):
			metrics.RecordReservation("capacity_exceeded")
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrDuplicateReservation):
			metrics.RecordReservation("duplicate")
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
		default:
			metrics.RecordReservation("error")
			logger.Error("reserve failed", "session_id", sessionID, "member_id", req.MemberID, "error", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to reserve"})
		}
		return
	}

	metrics.RecordReservation("confirmed")

	if h.confirmations != nil {
		if detail, err := h.repo.FindDetail(c.Request.Context(), res.ID); err == nil {
			h.confirmations.SendReservationConfirmed(*detail)
		}
	}

	c.JSON(http.StatusCreated, res)
}

// @Summary      Cancel a reservation
// @Tags         reservations
// @Produce      json
// @Security     BearerAuth
// @Param        reservationID path int true "Reservation ID"
// @Success      200 {object} api.MessageResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /reservations/{reservationID}/cancel [post]
func (h *Handler) Cancel(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("reservationID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid reservation ID"})
		return
	}

	if err := h.repo.Cancel(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrReservationNotFoundOrNotConfirmed) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to cancel reservation"})
		return
	}

	metrics.RecordReservationCancellation()
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Reservation cancelled"})
}

// @Summary      Mark attendance
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        reservationID path int true "Reservation ID"
// @Param        request body reservation.AttendanceRequest true "Attendance flag"
// @Success      200 {object} api.MessageResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /reservations/{reservationID}/attendance [patch]
func (h *Handler) MarkAttendance(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("reservationID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid reservation ID"})
		return
	}

	var req AttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.repo.MarkAttendance(c.Request.Context(), id, *req.Attended); err != nil {
		if errors.Is(err, ErrReservationNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Reservation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update attendance"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Attendance updated"})
}

// @Summary      Reservations for a member
// @Tags         reservations
// @Produce      json
// @Security     BearerAuth
// @Param        memberID path int true "Member ID"
// @Success      200 {array} reservation.ReservationDetail
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /members/{memberID}/reservations [get]
func (h *Handler) ListByMember(c *gin.Context) {
	memberID, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid member ID"})
		return
	}

	reservations, err := h.repo.ListByMember(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch reservations"})
		return
	}

	c.JSON(http.StatusOK, reservations)
}

// @Summary      Reservations for a session
// @Tags         reservations
// @Produce      json
// @Security     BearerAuth
// @Param        sessionID path int true "Class session ID"
// @Success      200 {array} reservation.ReservationDetail
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /sessions/{sessionID}/reservations [get]
func (h *Handler) ListBySession(c *gin.Context) {
	sessionID, err := strconv.Atoi(c.Param("sessionID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid session ID"})
		return
	}

	reservations, err := h.repo.ListBySession(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch reservations"})
		return
	}

	c.JSON(http.StatusOK, reservations)
}
