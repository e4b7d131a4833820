// Package resolver builds the vendored dependency trees of resolved dependencies.
package resolver

import (
	"context"
	"errors"
	"os"

	"go.trai.ch/vend/internal/core/domain"
	"go.trai.ch/vend/internal/core/ports"
	"go.trai.ch/zerr"
)

// NewVendorDependency creates the package name vendored under parent whose
// source lives in rootDir, and attaches the dependencies strategy produces
// for it.
//
// The returned dependency is complete: its dependency set is assigned before
// it is handed back, and its children were built against the finished parent.
func NewVendorDependency(
	ctx context.Context,
	name string,
	parent domain.Dependency,
	rootDir string,
	strategy ports.ProduceStrategy,
	visitor ports.DependencyVisitor,
) (*domain.VendorDependency, error) {
	info, err := os.Stat(rootDir)
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrVendorRootUnreadable, err), "dir", rootDir)
	}

	dep, err := domain.NewVendorDependency(name, parent, info.ModTime())
	if err != nil {
		return nil, err
	}

	deps, err := strategy.Produce(ctx, dep, rootDir, visitor, domain.PhaseBuild)
	if err != nil {
		return nil, err
	}
	if err := dep.SetDependencies(deps); err != nil {
		return nil, err
	}

	return dep, nil
}
