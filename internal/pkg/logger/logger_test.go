package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	t.Run("Development", func(t *testing.T) {
		l, err := New("development", "debug")
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(zap.DebugLevel))
	})

	t.Run("Production", func(t *testing.T) {
		l, err := New("production", "info")
		require.NoError(t, err)
		assert.False(t, l.Core().Enabled(zap.DebugLevel))
		assert.True(t, l.Core().Enabled(zap.InfoLevel))
	})

	t.Run("InvalidLevelKeepsDefault", func(t *testing.T) {
		l, err := New("production", "loud")
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(zap.InfoLevel))
	})
}

func TestForComponent(t *testing.T) {
	t.Run("AddsComponentField", func(t *testing.T) {
		core, logs := observer.New(zap.InfoLevel)

		ForComponent(zap.New(core), "buyer_reference_relay").Info("tick")

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "buyer_reference_relay", logs.All()[0].ContextMap()["component"])
	})

	t.Run("NilParentIsNoop", func(t *testing.T) {
		assert.NotPanics(t, func() {
			ForComponent(nil, "x").Info("ignored")
		})
	})
}
