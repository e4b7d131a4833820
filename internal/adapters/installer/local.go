// Package installer implements the mechanisms that place dependency
// sources into an install directory.
package installer

import (
	"context"
	"errors"
	"os"

	"go.trai.ch/vend/internal/adapters/fs"
	"go.trai.ch/vend/internal/core/domain"
	"go.trai.ch/vend/internal/core/ports"
	"go.trai.ch/zerr"
)

// LocalDirectoryInstaller copies a dependency straight from its directory
// on the local file system.
type LocalDirectoryInstaller struct {
	walker *fs.Walker
}

var _ ports.Installer = (*LocalDirectoryInstaller)(nil)

// NewLocalDirectoryInstaller creates a new LocalDirectoryInstaller.
func NewLocalDirectoryInstaller(walker *fs.Walker) *LocalDirectoryInstaller {
	return &LocalDirectoryInstaller{walker: walker}
}

// Install replaces dest with a copy of the source directory of dep.
func (i *LocalDirectoryInstaller) Install(ctx context.Context, dep domain.Dependency, dest string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	src, err := domain.SourceDir(dep)
	if err != nil {
		return err
	}
	if info, err := os.Stat(src); err != nil || !info.IsDir() {
		return zerr.With(zerr.With(domain.ErrInstallFailed, "dependency", dep.Name()), "source", src)
	}

	return replaceDir(i.walker, dest, src, dep.Name())
}

// replaceDir removes dest and copies src into it.
func replaceDir(walker *fs.Walker, dest, src, name string) error {
	if err := os.RemoveAll(dest); err != nil {
		return zerr.With(errors.Join(domain.ErrInstallFailed, err), "dependency", name)
	}
	if err := walker.CopyDir(dest, src); err != nil {
		return zerr.With(errors.Join(domain.ErrInstallFailed, err), "dependency", name)
	}
	return nil
}
