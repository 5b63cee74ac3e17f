package handlers

import (
	"fmt"

	"github.com/SscSPs/bank_dashboard/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// validMoney accepts decimal strings that are positive with at most two fraction digits.
var validMoney validator.Func = func(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := domain.ParseAmount(s)
	return err == nil
}

// registerValidators adds the custom binding tags to gin's validator.
func registerValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	if err := v.RegisterValidation("money", validMoney); err != nil {
		return fmt.Errorf("failed to register money validator: %w", err)
	}
	return nil
}
