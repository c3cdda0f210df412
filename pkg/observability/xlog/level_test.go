package xlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{" INFO ", LevelInfo},
		{"warn", LevelWarn},
		{"Warning", LevelWarn},
		{"error", LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	got, err := ParseLevel("trace")
	assert.Error(t, err)
	assert.Equal(t, LevelInfo, got)
}

func TestLevel_Text(t *testing.T) {
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "INFO+2", (LevelInfo + 2).String())

	text, err := LevelError.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "ERROR", string(text))

	var l Level
	require.NoError(t, l.UnmarshalText([]byte("debug")))
	assert.Equal(t, LevelDebug, l)
	assert.Error(t, l.UnmarshalText([]byte("nope")))
	assert.Equal(t, LevelDebug, l, "failed unmarshal leaves value unchanged")
}
