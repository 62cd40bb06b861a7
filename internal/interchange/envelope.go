// internal/interchange/envelope.go
package interchange

import (
	"encoding/json"
	"fmt"
	"time"
)

// EnvelopeVersion tags the backup format. Restores fail closed on anything
// else.
const EnvelopeVersion = "1.0"

// Envelope is the versioned top-level backup document: every row of every
// collection verbatim, keyed by collection name. Raw JSON is kept per
// collection so a round trip through the envelope is byte-preserving.
type Envelope struct {
	Version    string                         `json:"version"`
	ExportedAt time.Time                      `json:"exported_at"`
	Data       map[Collection]json.RawMessage `json:"data"`
}

// BuildEnvelope snapshots the given collections with no column filtering and
// no value coercion.
func BuildEnvelope(collections map[Collection][]Record) (*Envelope, error) {
	data := make(map[Collection]json.RawMessage, len(collections))
	for c, rows := range collections {
		if rows == nil {
			rows = []Record{}
		}
		raw, err := json.Marshal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to encode collection %s: %w", c, err)
		}
		data[c] = raw
	}

	return &Envelope{
		Version:    EnvelopeVersion,
		ExportedAt: time.Now().UTC(),
		Data:       data,
	}, nil
}

// Encode renders the envelope as an indented JSON document for download.
func (e *Envelope) Encode() ([]byte, error) {
	return json.MarshalIndent(e, "", "  ")
}

// ParseEnvelope validates the envelope shape: a missing data field or an
// unrecognized version is a FormatError.
func ParseEnvelope(data []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &FormatError{Msg: fmt.Sprintf("invalid backup document: %v", err)}
	}
	if env.Data == nil {
		return nil, &FormatError{Msg: "backup document has no data field"}
	}
	if env.Version != EnvelopeVersion {
		return nil, &FormatError{Msg: fmt.Sprintf("unsupported backup version %q", env.Version)}
	}
	return &env, nil
}

// Rows returns the stored rows of a collection. A collection absent from the
// envelope yields an empty sequence, not an error.
func (e *Envelope) Rows(c Collection) ([]Record, error) {
	raw, ok := e.Data[c]
	if !ok {
		return []Record{}, nil
	}

	var rows []Record
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, &FormatError{Msg: fmt.Sprintf("corrupt rows for collection %s: %v", c, err)}
	}
	if rows == nil {
		rows = []Record{}
	}
	return rows, nil
}

// Raw returns the untouched JSON rows of a collection, for callers that
// replay them straight into the data store.
func (e *Envelope) Raw(c Collection) (json.RawMessage, bool) {
	raw, ok := e.Data[c]
	return raw, ok
}
