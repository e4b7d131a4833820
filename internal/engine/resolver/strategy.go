package resolver

import (
	"context"

	"go.trai.ch/vend/internal/core/domain"
	"go.trai.ch/vend/internal/core/ports"
)

// VendorOnlyStrategy produces the dependencies of a package from its vendor
// directory alone. Manifests nested in vendored packages are ignored.
type VendorOnlyStrategy struct{}

var _ ports.ProduceStrategy = VendorOnlyStrategy{}

// Produce delegates to the vendor visitor.
func (VendorOnlyStrategy) Produce(
	ctx context.Context,
	parent domain.Dependency,
	rootDir string,
	visitor ports.DependencyVisitor,
	phase domain.BuildPhase,
) (*domain.DependencySet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return visitor.VisitVendorDependencies(ctx, parent, rootDir, phase)
}
