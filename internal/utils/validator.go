// internal/utils/validator.go
package utils

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("cnpj", validateCNPJ)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// validateCNPJ checks the Brazilian company registry number, digits only or
// the usual 00.000.000/0000-00 punctuation.
func validateCNPJ(fl validator.FieldLevel) bool {
	raw := fl.Field().String()

	digits := make([]int, 0, 14)
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			d, _ := strconv.Atoi(string(r))
			digits = append(digits, d)
		} else if r != '.' && r != '/' && r != '-' {
			return false
		}
	}
	if len(digits) != 14 {
		return false
	}

	// All-equal sequences pass the checksum but are not valid registrations
	allEqual := true
	for _, d := range digits[1:] {
		if d != digits[0] {
			allEqual = false
			break
		}
	}
	if allEqual {
		return false
	}

	return cnpjCheckDigit(digits, 12) == digits[12] &&
		cnpjCheckDigit(digits, 13) == digits[13]
}

func cnpjCheckDigit(digits []int, length int) int {
	weights := []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	offset := len(weights) - length

	sum := 0
	for i := 0; i < length; i++ {
		sum += digits[i] * weights[offset+i]
	}

	rest := sum % 11
	if rest < 2 {
		return 0
	}
	return 11 - rest
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param() + " characters"
	case "max":
		return e.Field() + " must be at most " + e.Param() + " characters"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "cnpj":
		return "Invalid CNPJ"
	default:
		return e.Field() + " is invalid"
	}
}
