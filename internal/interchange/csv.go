// internal/interchange/csv.go
package interchange

import "strings"

// DelimitedText renders rows as comma-separated text: a header line of field
// names, then one line per row with every value double-quote wrapped.
// Embedded quotes are escaped by doubling, per the usual convention.
// The stdlib csv writer is deliberately not used here: it quotes only when
// needed, and consumers of these exports expect every cell quoted.
func DelimitedText(fields []string, rows []Record) string {
	var b strings.Builder
	b.WriteString(strings.Join(fields, ","))

	for _, rec := range rows {
		b.WriteByte('\n')
		for i, field := range fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(formatValue(rec[field]), `"`, `""`))
			b.WriteByte('"')
		}
	}

	return b.String()
}
