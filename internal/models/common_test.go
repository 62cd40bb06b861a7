// internal/models/common_test.go
package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(time.Date(2025, 3, 15, 17, 30, 0, 0, time.Local))

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-03-15"`, string(data))

	var parsed Date
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, "2025-03-15", parsed.String())
}

func TestDateUnmarshalToleratesTimestamps(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-03-15T10:30:00Z"`), &d))
	assert.Equal(t, "2025-03-15", d.String())
}

func TestDateUnmarshalNull(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte("null"), &d))
	assert.True(t, d.IsZero())
}

func TestDateMarshalZero(t *testing.T) {
	data, err := json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2025, 1, 2, 8, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-01-02", d.String())

	require.NoError(t, d.Scan("2025-06-30"))
	assert.Equal(t, "2025-06-30", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))
}

func TestParseDateRejectsBadInput(t *testing.T) {
	_, err := ParseDate("15/03/2025")
	assert.Error(t, err)
}
