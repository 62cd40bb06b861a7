// internal/interchange/schema_test.go
package interchange

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllCollectionsRegistered(t *testing.T) {
	assert.Len(t, All, 6)
	for _, c := range All {
		assert.True(t, Valid(c), "collection %s should be valid", c)
		assert.NotEmpty(t, Label(c), "collection %s should have a label", c)
		assert.NotEmpty(t, Columns(c), "collection %s should have columns", c)
	}
}

func TestValidRejectsUnknownCollection(t *testing.T) {
	assert.False(t, Valid(Collection("users")))
	assert.False(t, Valid(Collection("")))
}

func TestRestoreOrderPutsReferencedCollectionsFirst(t *testing.T) {
	expected := []Collection{
		StorageLocations,
		Invoices,
		Products,
		ProductEntries,
		ProductExits,
		ShoppingList,
	}
	assert.Equal(t, expected, RestoreOrder)
}

func TestResolveSheetExactLabel(t *testing.T) {
	c, ok := ResolveSheet("Produtos")
	assert.True(t, ok)
	assert.Equal(t, Products, c)

	c, ok = ResolveSheet("Locais de Armazenamento")
	assert.True(t, ok)
	assert.Equal(t, StorageLocations, c)
}

func TestResolveSheetTruncatedLabel(t *testing.T) {
	// Sheet names are capped by the spreadsheet format, so a truncated
	// label must still resolve.
	c, ok := ResolveSheet("Locais de Armazen")
	assert.True(t, ok)
	assert.Equal(t, StorageLocations, c)
}

func TestResolveSheetUnknown(t *testing.T) {
	_, ok := ResolveSheet("Planilha1")
	assert.False(t, ok)

	_, ok = ResolveSheet("")
	assert.False(t, ok)
}
