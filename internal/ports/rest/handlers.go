package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"cko-gateway/internal/bank"
	"cko-gateway/internal/domain"
	"cko-gateway/internal/service"
	"cko-gateway/pkg/e"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go -package=mocks
type PaymentProcessor interface {
	ProcessPayment(ctx context.Context, payment domain.Payment, idempotencyKey string) (domain.PaymentRecord, error)
	GetPaymentByID(ctx context.Context, id string) (domain.PaymentRecord, error)
}

const IdempotencyKeyHeader = "Cko-Idempotency-Key"

const validationRejectedMessage = "Payment rejected due to validation errors"

type Handler struct {
	payments PaymentProcessor
	logger   *slog.Logger
}

func NewHandler(logger *slog.Logger, payments PaymentProcessor) *Handler {
	return &Handler{
		payments: payments,
		logger:   logger,
	}
}

// PostPayment godoc
// @Summary Process a card payment
// @Description Validate the payment, authorize it with the acquiring bank and record the outcome.
// @ID post-payment
// @Accept  json
// @Produce  json
// @Param payment body domain.PostPaymentRequest true "Payment to process"
// @Param Cko-Idempotency-Key header string false "Client-supplied deduplication key"
// @Success 200 {object} domain.PaymentRecord "Payment processed"
// @Failure 400 {object} map[string]interface{} "Validation failure"
// @Failure 409 {object} map[string]string "Idempotency key already in use"
// @Failure 500 {object} map[string]string "Bank or internal failure"
// @Router /api/payments [post]
func (h *Handler) PostPayment(c *gin.Context) {
	var req domain.PostPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("failed to bind payment request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"message": validationRejectedMessage,
			"errors":  []string{"request body must be a valid JSON payment"},
		})
		return
	}

	result := req.ToPayment()
	if result.IsFailure() {
		h.logger.Warn("payment validation failed",
			slog.String("request", req.String()),
			slog.Any("errors", result.Errors()),
		)
		c.JSON(http.StatusBadRequest, gin.H{
			"message": validationRejectedMessage,
			"errors":  result.Errors(),
		})
		return
	}

	record, err := h.payments.ProcessPayment(c.Request.Context(), result.Value(), c.GetHeader(IdempotencyKeyHeader))
	if err != nil {
		h.respondProcessingError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *Handler) respondProcessingError(c *gin.Context, err error) {
	var conflict *service.IdempotencyConflictError
	if errors.As(err, &conflict) {
		c.JSON(http.StatusConflict, gin.H{
			"error":           conflict.Error(),
			"idempotency_key": conflict.Key,
		})
		return
	}

	var bankErr *bank.Error
	if errors.As(err, &bankErr) {
		h.logger.Error("bank boundary failure",
			slog.String("kind", string(bankErr.Kind)),
			slog.String("error", bankErr.Message),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": bankErr.Message})
		return
	}

	h.logger.Error("failed to process payment", slog.String("error", err.Error()))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred"})
}

// GetPayment godoc
// @Summary Get a payment by id
// @Description Fetch a previously recorded payment outcome.
// @ID get-payment-by-id
// @Produce  json
// @Param id path string true "Payment ID"
// @Success 200 {object} domain.PaymentRecord "Payment found"
// @Failure 404 "Unknown payment id"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/payments/{id} [get]
func (h *Handler) GetPayment(c *gin.Context) {
	id := c.Param("id")

	record, err := h.payments.GetPaymentByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		h.logger.Error("failed to fetch payment", slog.String("payment_id", id), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred"})
		return
	}

	c.JSON(http.StatusOK, record)
}
