// internal/interchange/record.go
package interchange

import (
	"encoding/json"
	"fmt"
)

// Record is one row of a collection as a loose key/value bag. Exports carry
// whatever the data store returned; imports carry whatever the file held.
// Concrete typing happens at the data-store boundary.
type Record map[string]interface{}

// Table couples a collection with its rows for the codecs.
type Table struct {
	Collection Collection
	Rows       []Record
}

// RecordsFrom converts a slice of model structs into records via their JSON
// form, preserving every field verbatim.
func RecordsFrom(v interface{}) ([]Record, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode rows: %w", err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode rows: %w", err)
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}
