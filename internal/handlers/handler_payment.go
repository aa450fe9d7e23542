package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/minivenmo/mini_venmo_app/internal/apperrors"
	portssvc "github.com/minivenmo/mini_venmo_app/internal/core/ports/services"
	"github.com/minivenmo/mini_venmo_app/internal/dto"
	"github.com/minivenmo/mini_venmo_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// paymentHandler handles HTTP requests for payments and charges.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

// newPaymentHandler creates a new paymentHandler.
func newPaymentHandler(ps portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{paymentService: ps}
}

// registerPaymentRoutes registers routes related to payments.
func registerPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade) {
	h := newPaymentHandler(paymentService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("/:accountID/pay", h.pay)
		accounts.POST("/:accountID/charge", h.charge)
	}
}

// pay settles a transfer from the account in the path to the target in the body.
func (h *paymentHandler) pay(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	payerID := c.Param("accountID")

	var req dto.PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Pay", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	record, err := h.paymentService.Transfer(c.Request.Context(), payerID, req.TargetID, req.Amount, req.Note)
	if err != nil {
		h.respondPaymentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPaymentRecordResponse(record))
}

// charge settles a payment in the opposite direction: the account in the
// path requests money from the target in the body.
func (h *paymentHandler) charge(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requesterID := c.Param("accountID")

	var req dto.ChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Charge", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	record, err := h.paymentService.Charge(c.Request.Context(), requesterID, req.TargetID, req.Amount, req.Note)
	if err != nil {
		h.respondPaymentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPaymentRecordResponse(record))
}

// respondPaymentError maps settlement errors to HTTP statuses.
func (h *paymentHandler) respondPaymentError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrAccountNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient funds"})
	case errors.Is(err, apperrors.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be positive"})
	case errors.Is(err, apperrors.ErrSelfTransfer):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot transfer to self"})
	default:
		logger.Error("Failed to settle payment in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process payment"})
	}
}
