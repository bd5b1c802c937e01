// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"patrimonio/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("transaction_type", oneOf(models.TransactionTypes))
		_ = v.RegisterValidation("account_type", oneOf(models.AccountTypes))
		_ = v.RegisterValidation("asset_condition", oneOf(models.AssetConditions))
		_ = v.RegisterValidation("vehicle_type", oneOf(models.VehicleTypes))
		_ = v.RegisterValidation("fuel_type", oneOf(models.FuelTypes))
		_ = v.RegisterValidation("profile_role", oneOf(models.Roles))
		_ = v.RegisterValidation("vehicle_year", validateVehicleYear)
	}
}

// oneOf builds a validator accepting exactly the given enum values.
func oneOf[T ~string](values []T) validator.Func {
	allowed := make(map[string]bool, len(values))
	for _, v := range values {
		allowed[string(v)] = true
	}
	return func(fl validator.FieldLevel) bool {
		return allowed[fl.Field().String()]
	}
}

// validateVehicleYear accepts model years from 1900 up to next year.
func validateVehicleYear(fl validator.FieldLevel) bool {
	year := fl.Field().Int()
	return year >= 1900 && year <= int64(time.Now().Year()+1)
}
