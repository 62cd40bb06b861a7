// internal/interchange/envelope_test.go
package interchange

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	env, err := BuildEnvelope(map[Collection][]Record{
		Products: {
			{"id": "abc", "produto": "Arroz", "quantidade": "10"},
		},
		StorageLocations: {},
	})
	require.NoError(t, err)
	assert.Equal(t, EnvelopeVersion, env.Version)
	assert.False(t, env.ExportedAt.IsZero())

	encoded, err := env.Encode()
	require.NoError(t, err)

	parsed, err := ParseEnvelope(encoded)
	require.NoError(t, err)

	rows, err := parsed.Rows(Products)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Arroz", rows[0]["produto"])

	rows, err = parsed.Rows(StorageLocations)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestParseEnvelopeMissingData(t *testing.T) {
	_, err := ParseEnvelope([]byte(`{"version":"1.0"}`))
	require.Error(t, err)

	var formatErr *FormatError
	assert.ErrorAs(t, err, &formatErr)
}

func TestParseEnvelopeUnsupportedVersion(t *testing.T) {
	_, err := ParseEnvelope([]byte(`{"version":"2.0","data":{}}`))
	require.Error(t, err)

	var formatErr *FormatError
	assert.ErrorAs(t, err, &formatErr)
}

func TestParseEnvelopeInvalidJSON(t *testing.T) {
	_, err := ParseEnvelope([]byte("{"))
	require.Error(t, err)

	var formatErr *FormatError
	assert.ErrorAs(t, err, &formatErr)
}

func TestEnvelopeRowsAbsentCollection(t *testing.T) {
	env, err := BuildEnvelope(map[Collection][]Record{})
	require.NoError(t, err)

	rows, err := env.Rows(Invoices)
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestEnvelopeRowsCorruptCollection(t *testing.T) {
	env := &Envelope{
		Version: EnvelopeVersion,
		Data: map[Collection]json.RawMessage{
			Products: json.RawMessage(`{"not":"an array"}`),
		},
	}

	_, err := env.Rows(Products)
	require.Error(t, err)

	var formatErr *FormatError
	assert.ErrorAs(t, err, &formatErr)
}
