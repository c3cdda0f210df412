package xlog

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	ResetDefault()
	t.Cleanup(ResetDefault)

	first := Default()
	require.NotNil(t, first)
	assert.Same(t, first, Default())
	assert.Equal(t, LevelInfo, first.GetLevel())

	var buf bytes.Buffer
	custom, _, err := New().SetOutput(&buf).Build()
	require.NoError(t, err)
	SetDefault(custom)
	SetDefault(nil)

	Default().Info(context.Background(), "global")
	assert.Contains(t, buf.String(), "global")

	ResetDefault()
	assert.NotSame(t, custom, Default())
}
