package resolver

import (
	"context"

	"go.trai.ch/vend/internal/core/domain"
	"go.trai.ch/vend/internal/core/ports"
	"go.trai.ch/zerr"
)

// VendorVisitor resolves the packages found in a vendor directory and,
// recursively, the vendor directories nested inside them.
type VendorVisitor struct {
	scanner  ports.VendorScanner
	strategy ports.ProduceStrategy
}

var _ ports.DependencyVisitor = (*VendorVisitor)(nil)

// NewVendorVisitor creates a visitor that lists packages with scanner and
// produces the dependencies of each one with strategy.
func NewVendorVisitor(scanner ports.VendorScanner, strategy ports.ProduceStrategy) *VendorVisitor {
	return &VendorVisitor{
		scanner:  scanner,
		strategy: strategy,
	}
}

// VisitVendorDependencies returns the packages vendored below rootDir that
// parent does not exclude.
func (v *VendorVisitor) VisitVendorDependencies(
	ctx context.Context,
	parent domain.Dependency,
	rootDir string,
	phase domain.BuildPhase,
) (*domain.DependencySet, error) {
	pkgs, err := v.scanner.Scan(rootDir, phase)
	if err != nil {
		return nil, err
	}

	set := domain.NewDependencySet()
	for _, pkg := range pkgs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if parent.Excludes(pkg.Name) {
			continue
		}

		dep, err := NewVendorDependency(ctx, pkg.Name, parent, pkg.Dir, v.strategy, v)
		if err != nil {
			return nil, zerr.With(err, "package", pkg.Name)
		}
		set.Add(dep)
	}

	return set, nil
}
