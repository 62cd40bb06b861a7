// internal/interchange/template_test.go
package interchange

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTemplateHasHeaderAndExampleRows(t *testing.T) {
	f, err := BuildTemplate(Products)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Produtos"}, f.GetSheetList())

	rows, err := f.GetRows("Produtos")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 3)

	labels := make([]string, 0, len(Columns(Products)))
	for _, col := range Columns(Products) {
		labels = append(labels, col.Label)
	}
	assert.Equal(t, labels, rows[0])
	assert.Equal(t, "Arroz Integral", rows[1][0])
}

func TestBuildTemplateEveryCollection(t *testing.T) {
	for _, c := range All {
		f, err := BuildTemplate(c)
		require.NoError(t, err, "collection %s", c)

		rows, err := f.GetRows(f.GetSheetList()[0])
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(rows), 2, "collection %s should ship example rows", c)
		require.NoError(t, f.Close())
	}
}
