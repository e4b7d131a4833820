package resolver

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"go.trai.ch/vend/internal/core/domain"
	"go.trai.ch/vend/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Resolver resolves the vendor trees of top-level dependencies.
type Resolver struct {
	strategy  ports.ProduceStrategy
	visitor   ports.DependencyVisitor
	telemetry ports.Telemetry
}

// New creates a Resolver that walks vendor directories listed by scanner.
func New(scanner ports.VendorScanner, telemetry ports.Telemetry) *Resolver {
	strategy := VendorOnlyStrategy{}
	return NewResolver(strategy, NewVendorVisitor(scanner, strategy), telemetry)
}

// NewResolver creates a Resolver from explicit collaborators.
func NewResolver(
	strategy ports.ProduceStrategy,
	visitor ports.DependencyVisitor,
	telemetry ports.Telemetry,
) *Resolver {
	return &Resolver{
		strategy:  strategy,
		visitor:   visitor,
		telemetry: telemetry,
	}
}

// Resolve produces the dependency set of every host for the given phase and
// attaches it to the host. Hosts are resolved concurrently and returned in
// input order.
func (r *Resolver) Resolve(
	ctx context.Context,
	hosts []domain.Dependency,
	phase domain.BuildPhase,
) ([]domain.Dependency, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, host := range hosts {
		g.Go(func() error {
			return r.resolveHost(ctx, host, phase)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return hosts, nil
}

func (r *Resolver) resolveHost(ctx context.Context, host domain.Dependency, phase domain.BuildPhase) (err error) {
	ctx, vertex := r.telemetry.Record(ctx, "resolve "+host.Name())
	defer func() {
		vertex.Complete(err)
	}()

	dir, err := domain.SourceDir(host)
	if err != nil {
		return err
	}

	deps, err := r.strategy.Produce(ctx, host, dir, r.visitor, phase)
	if err != nil {
		return zerr.With(errors.Join(domain.ErrResolutionFailed, err), "dependency", host.Name())
	}
	vertex.Log(domain.LogLevelInfo, fmt.Sprintf("%d vendored packages in %s", deps.Len(), dir))

	return host.SetDependencies(deps)
}
