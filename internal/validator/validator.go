// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"ledgersync/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("entity", validateEntity)
		_ = v.RegisterValidation("txn_status", validateTransactionStatus)
	}
}

// validateEntity checks that the value is one of the accepted entity values.
func validateEntity(fl validator.FieldLevel) bool {
	return models.Entity(fl.Field().String()).IsValid()
}

// validateTransactionStatus checks that the value is a known computed status.
func validateTransactionStatus(fl validator.FieldLevel) bool {
	switch models.TransactionStatus(fl.Field().String()) {
	case models.StatusOK, models.StatusNeedsAttention, models.StatusError, models.StatusReview:
		return true
	}
	return false
}
