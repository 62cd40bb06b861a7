// internal/interchange/csv_test.go
package interchange

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/almoxdev/estoque-backend/internal/models"
)

func TestDelimitedTextHeaderOnly(t *testing.T) {
	out := DelimitedText([]string{"produto", "marca"}, nil)
	assert.Equal(t, "produto,marca", out)
}

func TestDelimitedTextQuotesEveryValue(t *testing.T) {
	out := DelimitedText([]string{"produto", "quantidade"}, []Record{
		{"produto": "Arroz", "quantidade": float64(10)},
	})
	assert.Equal(t, "produto,quantidade\n\"Arroz\",\"10\"", out)
}

func TestDelimitedTextEscapesEmbeddedQuotes(t *testing.T) {
	out := DelimitedText([]string{"produto"}, []Record{
		{"produto": `Arroz "Premium"`},
	})
	assert.Equal(t, "produto\n\"Arroz \"\"Premium\"\"\"", out)
}

func TestDelimitedTextModelValueTypes(t *testing.T) {
	validade := models.NewDate(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))

	out := DelimitedText(
		[]string{"valor_total", "desconto", "quantidade", "validade", "vencido"},
		[]Record{{
			"valor_total": decimal.NullDecimal{Decimal: decimal.RequireFromString("123.45"), Valid: true},
			"desconto":    decimal.NullDecimal{},
			"quantidade":  decimal.RequireFromString("10.5"),
			"validade":    &validade,
			"vencido":     (*models.Date)(nil),
		}},
	)
	assert.Equal(t,
		"valor_total,desconto,quantidade,validade,vencido\n\"123.45\",\"\",\"10.5\",\"2026-03-15\",\"\"",
		out)
}

func TestDelimitedTextMissingAndNilFields(t *testing.T) {
	out := DelimitedText([]string{"produto", "marca", "comprado"}, []Record{
		{"produto": "Arroz", "marca": nil, "comprado": true},
	})
	assert.Equal(t, "produto,marca,comprado\n\"Arroz\",\"\",\"true\"", out)
}
