package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/bank_dashboard/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// errorCodes is checked in order; specific failures come before their category.
var errorCodes = []struct {
	target error
	status int
	code   string
}{
	{apperrors.ErrCurrencyMismatch, http.StatusBadRequest, "currency_mismatch"},
	{apperrors.ErrValidation, http.StatusBadRequest, "invalid_input"},
	{apperrors.ErrAccountNotFound, http.StatusNotFound, "account_not_found"},
	{apperrors.ErrPaymentNotFound, http.StatusNotFound, "payment_not_found"},
	{apperrors.ErrNotFound, http.StatusNotFound, "not_found"},
	{apperrors.ErrAlreadyPaid, http.StatusConflict, "already_paid"},
	{apperrors.ErrInsufficientFunds, http.StatusUnprocessableEntity, "insufficient_funds"},
	{apperrors.ErrAccountInactive, http.StatusUnprocessableEntity, "account_inactive"},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
}

// respondError maps err to a status and writes it. Internal failures get an
// opaque message; their cause only goes to the log.
func respondError(c *gin.Context, logger *slog.Logger, err error, internalMsg string) {
	if errors.Is(err, apperrors.ErrInternal) {
		status := http.StatusInternalServerError
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code >= 500 {
			status = appErr.Code
		}
		logger.Error(internalMsg, slog.String("error", err.Error()))
		c.JSON(status, ErrorResponse{Error: internalMsg, Code: "internal"})
		return
	}

	for _, ec := range errorCodes {
		if errors.Is(err, ec.target) {
			logger.Warn("Request rejected", slog.String("code", ec.code), slog.String("error", err.Error()))
			c.JSON(ec.status, ErrorResponse{Error: err.Error(), Code: ec.code})
			return
		}
	}

	logger.Error(internalMsg, slog.String("error", err.Error()))
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: internalMsg, Code: "internal"})
}

func respondBindError(c *gin.Context, logger *slog.Logger, err error) {
	logger.Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request: " + err.Error(), Code: "invalid_input"})
}
