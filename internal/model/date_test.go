package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(1995, time.December, 15)

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"1995-12-15"`, string(raw))

	var back Date
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, d.Equal(back.Time))
}

func TestDateUnmarshalNull(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte("null"), &d))
	assert.True(t, d.IsZero())
}

func TestDateUnmarshalRejectsTimestamps(t *testing.T) {
	var d Date
	err := json.Unmarshal([]byte(`"1995-12-15T10:30:00Z"`), &d)
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2001-02-03")
	require.NoError(t, err)
	assert.Equal(t, "2001-02-03", d.String())

	_, err = ParseDate("03.02.2001")
	assert.Error(t, err)
}
