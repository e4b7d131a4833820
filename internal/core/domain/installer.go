package domain

// InstallerKind identifies an installation mechanism.
type InstallerKind string

const (
	// InstallerLocalDirectory copies a dependency from the local filesystem.
	InstallerLocalDirectory InstallerKind = "local-directory"
	// InstallerGit checks a dependency out of a git repository.
	InstallerGit InstallerKind = "git"
	// InstallerMercurial checks a dependency out of a mercurial repository.
	InstallerMercurial InstallerKind = "hg"
)

// String returns the kind identifier.
func (k InstallerKind) String() string {
	return string(k)
}
