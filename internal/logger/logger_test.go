package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFromContext(t *testing.T) {
	t.Run("missing logger falls back to global", func(t *testing.T) {
		require.NotNil(t, FromContext(context.Background()))
	})

	t.Run("returns stored logger", func(t *testing.T) {
		l := zap.NewNop().Sugar()
		ctx := WithContext(context.Background(), l)
		require.Same(t, l, FromContext(ctx))
	})
}
