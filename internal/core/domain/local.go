package domain

import (
	"path"
	"path/filepath"
	"time"
)

// LocalDependency is a dependency read straight from a directory on the local filesystem.
type LocalDependency struct {
	resolved
	dir     string
	lockDir string
}

var _ Dependency = (*LocalDependency)(nil)

// NewLocalDependency creates a LocalDependency rooted at dir.
func NewLocalDependency(name, dir string, updateTime time.Time) *LocalDependency {
	return &LocalDependency{
		resolved: newResolved(name, "", updateTime),
		dir:      filepath.Clean(dir),
		lockDir:  filepath.ToSlash(filepath.Clean(dir)),
	}
}

// WithLockDir sets the directory recorded in the lock file and shown as the
// version, usually the path declared in the manifest. Relative paths keep
// the lock file independent of where the project is checked out.
func (d *LocalDependency) WithLockDir(dir string) *LocalDependency {
	d.lockDir = path.Clean(filepath.ToSlash(dir))
	return d
}

// Dir returns the directory holding the dependency source.
func (d *LocalDependency) Dir() string {
	return d.dir
}

// Installer always selects the local-directory installer.
func (d *LocalDependency) Installer() (InstallerKind, error) {
	return InstallerLocalDirectory, nil
}

// LockNotation returns the lock-file description of the dependency.
func (d *LocalDependency) LockNotation() Notation {
	return Notation{
		NameKey: d.name,
		DirKey:  d.lockDir,
	}
}

// FormatVersion returns the lock directory in forward-slash form.
func (d *LocalDependency) FormatVersion() string {
	return d.lockDir
}
