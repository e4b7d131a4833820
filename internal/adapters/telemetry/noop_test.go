package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/vend/internal/adapters/telemetry"
	"go.trai.ch/vend/internal/core/domain"
	"go.trai.ch/vend/internal/core/ports"
)

func TestNoOp_Record(t *testing.T) {
	tel := telemetry.NewNoOp()

	ctx, v := tel.Record(context.Background(), "resolve github.com/x/y")
	require.NotNil(t, v)

	fromCtx, ok := ports.VertexFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, v, fromCtx)

	n, err := v.Stdout().Write([]byte("test log"))
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	v.Log(domain.LogLevelInfo, "msg")
	v.Cached()
	v.Complete(nil)

	assert.NoError(t, tel.Close())
}
