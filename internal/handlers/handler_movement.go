package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/bank_dashboard/internal/core/ports/services"
	"github.com/SscSPs/bank_dashboard/internal/dto"
	"github.com/SscSPs/bank_dashboard/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// movementHandler exposes the transfer and bill payment engines.
type movementHandler struct {
	transferService portssvc.TransferSvc
	paymentService  portssvc.PaymentSvc
}

func newMovementHandler(ts portssvc.TransferSvc, ps portssvc.PaymentSvc) *movementHandler {
	return &movementHandler{
		transferService: ts,
		paymentService:  ps,
	}
}

// registerMovementRoutes registers the money-moving routes, rate limited per user.
func registerMovementRoutes(rg *gin.RouterGroup, ts portssvc.TransferSvc, ps portssvc.PaymentSvc, movementLimiter *limiter.Limiter) {
	h := newMovementHandler(ts, ps)
	limit := middleware.RateLimit(movementLimiter, middleware.UserKey)

	rg.POST("/transfers", limit, h.transfer)
	rg.POST("/upcoming-payments/:paymentID/pay", limit, h.payBill)
}

// transfer godoc
// @Summary Transfer money
// @Description Moves funds out of one of the user's accounts. Use toAccountId "external" to send money outside the bank.
// @Tags transfers
// @Accept json
// @Produce json
// @Param transfer body dto.TransferRequest true "Transfer details"
// @Success 200 {object} dto.MovementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transfers [post]
func (h *movementHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	transferReq, err := req.ToDomain()
	if err != nil {
		respondError(c, logger, err, "Failed to transfer funds")
		return
	}

	logger = logger.With(slog.String("from_account_id", req.FromAccountID), slog.String("to_account_id", req.ToAccountID))
	result, err := h.transferService.Transfer(c.Request.Context(), actor, transferReq)
	if err != nil {
		respondError(c, logger, err, "Failed to transfer funds")
		return
	}

	logger.Info("Transfer completed", slog.String("amount", transferReq.Amount.String()))
	c.JSON(http.StatusOK, dto.ToMovementResponse(result))
}

// payBill godoc
// @Summary Pay a scheduled payment
// @Description Debits the payment's account and marks the payment paid
// @Tags payments
// @Produce json
// @Param paymentID path string true "Payment ID"
// @Success 200 {object} dto.MovementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /upcoming-payments/{paymentID}/pay [post]
func (h *movementHandler) payBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	paymentID := c.Param("paymentID")
	logger = logger.With(slog.String("payment_id", paymentID))

	result, err := h.paymentService.PayBill(c.Request.Context(), actor, paymentID)
	if err != nil {
		respondError(c, logger, err, "Failed to pay bill")
		return
	}

	logger.Info("Bill paid")
	c.JSON(http.StatusOK, dto.ToMovementResponse(result))
}
