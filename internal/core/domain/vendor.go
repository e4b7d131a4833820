package domain

import (
	"path"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/zerr"
)

// VendorDirectory is the reserved directory holding vendored packages.
const VendorDirectory = "vendor"

// VendorPackage is a package found inside a vendor directory.
type VendorPackage struct {
	// Name is the import path of the package, relative to the vendor directory.
	Name string
	// Dir is the directory holding the package source.
	Dir string
}

// VendorDependency is a dependency whose source lives inside the vendor
// directory of another dependency.
//
// The host is the non-vendor dependency that ultimately owns the package,
// however deeply the vendor directories are nested. The path to the host is
// relative and always uses forward slashes.
type VendorDependency struct {
	resolved
	host               Dependency
	relativePathToHost string
}

var _ Dependency = (*VendorDependency)(nil)

// ResolveHost determines the host dependency owning packageName when it is
// found in the vendor directory of parent, and the path from the host root
// to the package.
//
// A vendored parent is collapsed onto its own host, so the cost does not
// depend on the nesting depth.
func ResolveHost(parent Dependency, packageName string) (Dependency, string, error) {
	pkg, err := cleanPackagePath(packageName)
	if err != nil {
		return nil, "", err
	}

	var (
		host Dependency
		rel  string
	)
	switch p := parent.(type) {
	case nil:
		return nil, "", zerr.With(ErrNoHostDependency, "package", packageName)
	case *VendorDependency:
		if p == nil {
			return nil, "", zerr.With(ErrNoHostDependency, "package", packageName)
		}
		host = p.host
		rel = path.Join(p.relativePathToHost, VendorDirectory, pkg)
	default:
		host = p
		rel = path.Join(VendorDirectory, pkg)
	}

	if isNilDependency(host) {
		return nil, "", zerr.With(ErrNoHostDependency, "package", packageName)
	}
	return host, rel, nil
}

// NewVendorDependency creates the vendored package name found under parent.
// The version and exclusions are copied from the host at construction time.
func NewVendorDependency(name string, parent Dependency, updateTime time.Time) (*VendorDependency, error) {
	host, rel, err := ResolveHost(parent, name)
	if err != nil {
		return nil, err
	}

	d := &VendorDependency{
		resolved:           newResolved(name, host.Version(), updateTime),
		host:               host,
		relativePathToHost: rel,
	}
	d.exclusions = host.base().exclusions.Clone()
	return d, nil
}

// HostDependency returns the non-vendor dependency owning this package.
func (d *VendorDependency) HostDependency() Dependency {
	return d.host
}

// RelativePathToHost returns the forward-slash path from the host root to this package.
func (d *VendorDependency) RelativePathToHost() string {
	return d.relativePathToHost
}

// Installer selects the local-directory installer for packages vendored in a
// local directory, and the host's installer otherwise.
func (d *VendorDependency) Installer() (InstallerKind, error) {
	if _, ok := d.host.(*LocalDependency); ok {
		return InstallerLocalDirectory, nil
	}
	return d.host.Installer()
}

// LockNotation returns the name, the vendor path and the full notation of the host.
func (d *VendorDependency) LockNotation() Notation {
	return Notation{
		NameKey:       d.name,
		VendorPathKey: d.relativePathToHost,
		HostKey:       d.host.LockNotation().Clone(),
	}
}

// FormatVersion returns "<host>#<host version>/<vendor path>".
// The host version is read when formatting, not when the package was found.
func (d *VendorDependency) FormatVersion() string {
	return d.host.Name() + "#" + d.host.FormatVersion() + "/" + d.relativePathToHost
}

// SourceDir returns the directory holding the files of dep.
func SourceDir(dep Dependency) (string, error) {
	switch d := dep.(type) {
	case *LocalDependency:
		return d.dir, nil
	case *VCSDependency:
		return d.source.Checkout, nil
	case *VendorDependency:
		if isNilDependency(d.host) {
			return "", zerr.With(ErrNoHostDependency, "package", d.name)
		}
		root, err := SourceDir(d.host)
		if err != nil {
			return "", err
		}
		return filepath.Join(root, filepath.FromSlash(d.relativePathToHost)), nil
	default:
		return "", ErrNoHostDependency
	}
}

func cleanPackagePath(name string) (string, error) {
	p := strings.ReplaceAll(name, `\`, "/")
	if p == "" || path.IsAbs(p) || filepath.IsAbs(name) {
		return "", zerr.With(ErrInvalidVendorPath, "package", name)
	}
	p = path.Clean(p)
	if p == "." || p == ".." || strings.HasPrefix(p, "../") {
		return "", zerr.With(ErrInvalidVendorPath, "package", name)
	}
	return p, nil
}

func isNilDependency(d Dependency) bool {
	switch v := d.(type) {
	case nil:
		return true
	case *VCSDependency:
		return v == nil
	case *LocalDependency:
		return v == nil
	case *VendorDependency:
		return v == nil
	default:
		return false
	}
}
