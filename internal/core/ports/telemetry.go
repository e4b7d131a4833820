package ports

import (
	"context"
	"io"

	"go.trai.ch/vend/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Telemetry records units of work as vertices.
type Telemetry interface {
	// Record starts a new vertex and returns a context carrying it.
	Record(ctx context.Context, name string, opts ...VertexOption) (context.Context, Vertex)
	// Close flushes and closes the recording session.
	Close() error
}

// Vertex is a recorded unit of work.
type Vertex interface {
	// Stdout returns a writer for the standard output of the work.
	Stdout() io.Writer
	// Stderr returns a writer for the error output of the work.
	Stderr() io.Writer
	// Log records a message at the given level.
	Log(level domain.LogLevel, msg string)
	// Complete marks the vertex as finished, failed when err is not nil.
	Complete(err error)
	// Cached marks the vertex as satisfied without doing any work.
	Cached()
}

// VertexConfig holds configuration for a starting vertex.
type VertexConfig struct {
	// Parent is the name of the vertex this one belongs to.
	Parent string
}

// VertexOption is a functional option for configuring a vertex.
type VertexOption func(*VertexConfig)

// WithParent groups the vertex under the named parent vertex.
func WithParent(name string) VertexOption {
	return func(c *VertexConfig) {
		c.Parent = name
	}
}

type vertexKey struct{}

// ContextWithVertex returns a copy of ctx carrying v.
func ContextWithVertex(ctx context.Context, v Vertex) context.Context {
	return context.WithValue(ctx, vertexKey{}, v)
}

// VertexFromContext returns the vertex carried by ctx, if any.
func VertexFromContext(ctx context.Context) (Vertex, bool) {
	v, ok := ctx.Value(vertexKey{}).(Vertex)
	return v, ok
}
