package domain

import "go.trai.ch/zerr"

var (
	// ErrNoHostDependency is returned when a dependency chain has no non-vendor ancestor.
	// It indicates the tree walker built a child before its parent was finalized.
	ErrNoHostDependency = zerr.New("vendored dependency has no host dependency")

	// ErrInvalidVendorPath is returned when a vendored package name is absolute or escapes its host.
	ErrInvalidVendorPath = zerr.New("invalid vendored package path")

	// ErrDependenciesAlreadySet is returned when the dependency set of a dependency is assigned twice.
	ErrDependenciesAlreadySet = zerr.New("dependencies already set")

	// ErrUnsupportedInstaller is returned when no installation mechanism is registered for a dependency.
	ErrUnsupportedInstaller = zerr.New("unsupported installer")

	// ErrVendorRootUnreadable is returned when the root directory of a vendored package cannot be read.
	ErrVendorRootUnreadable = zerr.New("failed to read vendored package root")

	// ErrVendorScanFailed is returned when a vendor directory cannot be scanned.
	ErrVendorScanFailed = zerr.New("failed to scan vendor directory")

	// ErrManifestNotFound is returned when no manifest file exists in the project directory.
	ErrManifestNotFound = zerr.New("could not find vend.yaml, vend.yml or vend.toml")

	// ErrManifestReadFailed is returned when the manifest file cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read manifest file")

	// ErrManifestParseFailed is returned when the manifest file cannot be parsed.
	ErrManifestParseFailed = zerr.New("failed to parse manifest file")

	// ErrInvalidDependency is returned when a declared dependency is malformed.
	ErrInvalidDependency = zerr.New("invalid dependency")

	// ErrLockfileReadFailed is returned when the lock file cannot be read or decoded.
	ErrLockfileReadFailed = zerr.New("failed to read lock file")

	// ErrLockfileWriteFailed is returned when the lock file cannot be encoded or written.
	ErrLockfileWriteFailed = zerr.New("failed to write lock file")

	// ErrLockfileOutdated is returned when the lock file does not match the resolved dependencies.
	ErrLockfileOutdated = zerr.New("lock file is out of date")

	// ErrInstallFailed is returned when a dependency cannot be installed.
	ErrInstallFailed = zerr.New("failed to install dependency")

	// ErrResolutionFailed is returned when resolving the vendor tree of a host fails.
	ErrResolutionFailed = zerr.New("dependency resolution failed")
)
