// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// validCurrencies contains the ISO 4217 codes PesaGuru budgets accept.
var validCurrencies = map[string]bool{
	"AED": true, "AUD": true, "BIF": true, "CAD": true, "CHF": true,
	"CNY": true, "EGP": true, "ETB": true, "EUR": true, "GBP": true,
	"GHS": true, "INR": true, "JPY": true, "KES": true, "MWK": true,
	"NGN": true, "RWF": true, "SAR": true, "SOS": true, "SSP": true,
	"TZS": true, "UGX": true, "USD": true, "ZAR": true, "ZMW": true,
}

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("iso4217", validateISO4217)
		_ = v.RegisterValidation("goal_type", validateGoalType)
		_ = v.RegisterValidation("goal_priority", validateGoalPriority)
		_ = v.RegisterValidation("goal_status", validateGoalStatus)
		_ = v.RegisterValidation("payment_method", validatePaymentMethod)
	}
}

func validateISO4217(fl validator.FieldLevel) bool {
	return validCurrencies[fl.Field().String()]
}

func validateGoalType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "emergency_fund", "retirement", "education", "debt_repayment",
		"investment", "real_estate", "other":
		return true
	}
	return false
}

func validateGoalPriority(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "high", "medium", "low":
		return true
	}
	return false
}

func validateGoalStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "in_progress", "completed", "overdue":
		return true
	}
	return false
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "mpesa", "cash", "card", "bank_transfer":
		return true
	}
	return false
}
