// internal/interchange/schema.go
package interchange

import "strings"

// Collection identifies one of the exchangeable data sets. The registry below
// is the single source of truth for which collections exist and how their
// columns appear on spreadsheets and printed documents.
type Collection string

const (
	Products         Collection = "products"
	StorageLocations Collection = "storage_locations"
	Invoices         Collection = "invoices"
	ProductEntries   Collection = "product_entries"
	ProductExits     Collection = "product_exits"
	ShoppingList     Collection = "shopping_list"
)

// Column pairs a record field key with its display label.
type Column struct {
	Key   string
	Label string
}

// All lists every collection in display order.
var All = []Collection{
	Products,
	StorageLocations,
	Invoices,
	ProductEntries,
	ProductExits,
	ShoppingList,
}

// RestoreOrder is the mandatory write order for backup restoration. Later
// collections hold references to earlier ones, so a backend enforcing
// referential integrity rejects any other order.
var RestoreOrder = []Collection{
	StorageLocations,
	Invoices,
	Products,
	ProductEntries,
	ProductExits,
	ShoppingList,
}

var labels = map[Collection]string{
	Products:         "Produtos",
	StorageLocations: "Locais de Armazenamento",
	Invoices:         "Notas Fiscais",
	ProductEntries:   "Entradas de Produtos",
	ProductExits:     "Saídas de Produtos",
	ShoppingList:     "Lista de Compras",
}

var columns = map[Collection][]Column{
	Products: {
		{Key: "produto", Label: "Produto"},
		{Key: "marca", Label: "Marca"},
		{Key: "quantidade", Label: "Quantidade"},
		{Key: "unidade", Label: "Unidade"},
		{Key: "validade", Label: "Validade"},
		{Key: "valor", Label: "Valor"},
		{Key: "estoque_minimo", Label: "Estoque Mínimo"},
		{Key: "status", Label: "Status"},
	},
	StorageLocations: {
		{Key: "name", Label: "Nome"},
		{Key: "description", Label: "Descrição"},
	},
	Invoices: {
		{Key: "numero", Label: "Número"},
		{Key: "data", Label: "Data"},
		{Key: "valor_total", Label: "Valor Total"},
	},
	ProductEntries: {
		{Key: "dia", Label: "Data"},
		{Key: "produto_id", Label: "Produto ID"},
		{Key: "quantidade", Label: "Quantidade"},
		{Key: "observacao", Label: "Observação"},
	},
	ProductExits: {
		{Key: "dia", Label: "Data"},
		{Key: "produto_id", Label: "Produto ID"},
		{Key: "quantidade", Label: "Quantidade"},
		{Key: "motivo", Label: "Motivo"},
	},
	ShoppingList: {
		{Key: "produto", Label: "Produto"},
		{Key: "quantidade", Label: "Quantidade"},
		{Key: "unidade", Label: "Unidade"},
		{Key: "prioridade", Label: "Prioridade"},
		{Key: "comprado", Label: "Comprado"},
	},
}

// Label returns the display label of a collection. Unknown collections are a
// programming error; the empty string makes that loud in output.
func Label(c Collection) string {
	return labels[c]
}

// Columns returns the ordered export column set of a collection.
func Columns(c Collection) []Column {
	return columns[c]
}

// Valid reports whether c names a known collection.
func Valid(c Collection) bool {
	_, ok := labels[c]
	return ok
}

// ResolveSheet maps a workbook sheet name back to its collection. Exact label
// match first, then a prefix match so labels truncated to the spreadsheet
// sheet-name limit still resolve.
func ResolveSheet(sheet string) (Collection, bool) {
	for _, c := range All {
		if labels[c] == sheet {
			return c, true
		}
	}
	for _, c := range All {
		if sheet != "" && strings.HasPrefix(labels[c], sheet) {
			return c, true
		}
	}
	return "", false
}
