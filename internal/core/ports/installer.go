package ports

import (
	"context"

	"go.trai.ch/vend/internal/core/domain"
)

// Installer copies the files of a dependency into a destination directory.
//
//go:generate go run go.uber.org/mock/mockgen -source=installer.go -destination=mocks/mock_installer.go -package=mocks
type Installer interface {
	// Install places the source of dep into dest, replacing what was there.
	Install(ctx context.Context, dep domain.Dependency, dest string) error
}

// InstallerRegistry maps an installation mechanism to its implementation.
type InstallerRegistry interface {
	// Lookup returns the installer registered for kind.
	Lookup(kind domain.InstallerKind) (Installer, error)
}
