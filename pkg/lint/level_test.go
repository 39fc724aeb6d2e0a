package lint

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in     string
		want   Level
		wantOK bool
	}{
		{"allow", Allow, true},
		{"Warn", Warn, true},
		{"warning", Warn, true},
		{" DENY ", Deny, true},
		{"forbid", Forbid, true},
		{"error", Warn, false},
		{"", Warn, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseLevel(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestLevel_String(t *testing.T) {
	assert.Equal(t, "allow", Allow.String())
	assert.Equal(t, "forbid", Forbid.String())
	assert.Equal(t, "unknown", Level(9).String())
}

func TestLevel_IsError(t *testing.T) {
	assert.False(t, Allow.IsError())
	assert.False(t, Warn.IsError())
	assert.True(t, Deny.IsError())
	assert.True(t, Forbid.IsError())
}

func TestLevel_Text(t *testing.T) {
	data, err := json.Marshal(map[string]Level{"a": Deny})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"deny"}`, string(data))

	var back map[string]Level
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, Deny, back["a"])

	var l Level
	assert.Error(t, l.UnmarshalText([]byte("loud")))

	_, err = Level(7).MarshalText()
	assert.Error(t, err)
}
