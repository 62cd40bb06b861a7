// internal/models/product_test.go
package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDerivedStatus(t *testing.T) {
	tests := []struct {
		name       string
		quantidade string
		minimo     string
		want       ProductStatus
	}{
		{"zero quantity", "0", "5", ProductStatusOutOfStock},
		{"negative quantity", "-1", "0", ProductStatusOutOfStock},
		{"at minimum", "5", "5", ProductStatusLowStock},
		{"below minimum", "3", "5", ProductStatusLowStock},
		{"above minimum", "10", "5", ProductStatusAvailable},
		{"no minimum set", "1", "0", ProductStatusAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Product{
				Quantidade:    decimal.RequireFromString(tt.quantidade),
				EstoqueMinimo: decimal.RequireFromString(tt.minimo),
			}
			assert.Equal(t, tt.want, p.DerivedStatus())
		})
	}
}
