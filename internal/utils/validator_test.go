// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cnpjFixture struct {
	CNPJ string `validate:"cnpj"`
}

func TestValidateCNPJ(t *testing.T) {
	tests := []struct {
		name  string
		cnpj  string
		valid bool
	}{
		{"punctuated", "11.222.333/0001-81", true},
		{"digits only", "11222333000181", true},
		{"bad check digit", "11.222.333/0001-80", false},
		{"all equal digits", "11.111.111/1111-11", false},
		{"too short", "1122233300018", false},
		{"letters", "11.222.333/0001-8a", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&cnpjFixture{CNPJ: tt.cnpj})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

type requestFixture struct {
	Name     string `validate:"required,min=2,max=10"`
	Priority string `validate:"omitempty,oneof=alta media baixa"`
}

func TestGetValidationErrors(t *testing.T) {
	err := ValidateStruct(&requestFixture{Name: "", Priority: "urgente"})
	require.Error(t, err)

	validationErrors := GetValidationErrors(err)
	require.Len(t, validationErrors, 2)

	byField := map[string]ValidationError{}
	for _, ve := range validationErrors {
		byField[ve.Field] = ve
	}

	assert.Equal(t, "required", byField["name"].Tag)
	assert.NotEmpty(t, byField["name"].Message)
	assert.Equal(t, "oneof", byField["priority"].Tag)
}

func TestGetValidationErrorsNilError(t *testing.T) {
	assert.Empty(t, GetValidationErrors(nil))
}
