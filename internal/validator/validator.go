// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// validCurrencies contains the ISO 4217 currency codes the app accepts.
var validCurrencies = map[string]bool{
	"ARS": true, "BOB": true, "BRL": true, "CAD": true, "CLP": true,
	"COP": true, "CRC": true, "EUR": true, "GBP": true, "GTQ": true,
	"HNL": true, "MXN": true, "NIO": true, "PAB": true, "PEN": true,
	"PYG": true, "USD": true, "UYU": true, "VES": true,
}

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("iso4217", validateISO4217)
		_ = v.RegisterValidation("bucket", validateBucket)
		_ = v.RegisterValidation("transaction_kind", validateTransactionKind)
		_ = v.RegisterValidation("conversion_type", validateConversionType)
	}
}

func validateISO4217(fl validator.FieldLevel) bool {
	return validCurrencies[fl.Field().String()]
}

func validateBucket(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "nu", "nequi", "nequi2", "cash":
		return true
	}
	return false
}

func validateTransactionKind(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "income", "expense", "transfer", "cash-conversion":
		return true
	}
	return false
}

func validateConversionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "to_cash", "from_cash":
		return true
	}
	return false
}
