package payment

import (
	"errors"
	"net/http"
	"strconv"

	"gymlite/internal/api"
	"gymlite/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

// ReceiptSender is implemented by the email service. Nil disables the
// payment-received mail.
type ReceiptSender interface {
	SendPaymentReceived(detail PaymentDetail)
}

type Handler struct {
	repo     *Repository
	receipts ReceiptSender
}

func NewHandler(db *sqlx.DB, receipts ReceiptSender) *Handler {
	return &Handler{repo: NewRepository(db), receipts: receipts}
}

// @Summary      Record a payment
// @Description  Method is normalized to lowercase; one of transfer, webpay, card, cash.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body payment.RecordPaymentRequest true "Payment payload"
// @Success      201 {object} payment.Payment
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /payments [post]
func (h *Handler) Record(c *gin.Context) {
	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	var receipt *string
	if req.Receipt != "" {
		receipt = &req.Receipt
	}

	p, err := h.repo.Record(c.Request.Context(), req.SubscriptionID, req.AmountCents, req.Method, receipt)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidMethod), errors.Is(err, ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrSubscriptionMissing):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to record payment"})
		}
		return
	}

	metrics.RecordPayment(p.Method, p.AmountCents)

	if h.receipts != nil {
		if detail, err := h.repo.FindDetail(c.Request.Context(), p.ID); err == nil {
			h.receipts.SendPaymentReceived(*detail)
		}
	}

	c.JSON(http.StatusCreated, p)
}

// @Summary      Payment history
// @Description  Newest first, joined with member and plan names. ?limit=N caps the page (default 50).
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Max rows"
// @Success      200 {array} payment.PaymentDetail
// @Failure      500 {object} api.ErrorResponse
// @Router       /payments [get]
func (h *Handler) History(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	payments, err := h.repo.History(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, payments)
}
