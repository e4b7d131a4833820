package ports

import (
	"context"

	"go.trai.ch/vend/internal/core/domain"
)

// DependencyVisitor discovers the dependencies nested inside a resolved dependency.
//
//go:generate go run go.uber.org/mock/mockgen -source=produce.go -destination=mocks/mock_produce.go -package=mocks
type DependencyVisitor interface {
	// VisitVendorDependencies returns the packages found in the vendor
	// directory below rootDir, already resolved against parent.
	VisitVendorDependencies(
		ctx context.Context,
		parent domain.Dependency,
		rootDir string,
		phase domain.BuildPhase,
	) (*domain.DependencySet, error)
}

// ProduceStrategy decides how the dependencies of a resolved dependency are produced.
type ProduceStrategy interface {
	// Produce computes the dependency set of parent whose files live in rootDir.
	Produce(
		ctx context.Context,
		parent domain.Dependency,
		rootDir string,
		visitor DependencyVisitor,
		phase domain.BuildPhase,
	) (*domain.DependencySet, error)
}
