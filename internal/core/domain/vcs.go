package domain

import (
	"time"

	"go.trai.ch/zerr"
)

const shortCommitLen = 7

// VCSSource describes where a version-control dependency comes from.
type VCSSource struct {
	// VCS is the version control system, "git" or "hg".
	VCS string
	// URL is the repository URL.
	URL string
	// Commit pins the exact revision.
	Commit string
	// Tag is the human-readable release name, if any.
	Tag string
	// Checkout is the local directory holding the repository.
	Checkout string
}

// VCSDependency is a dependency fetched from a version control repository.
type VCSDependency struct {
	resolved
	source VCSSource
}

var _ Dependency = (*VCSDependency)(nil)

// NewVCSDependency creates a VCSDependency. Its version is the pinned commit,
// falling back to the tag when no commit is known.
func NewVCSDependency(name string, src VCSSource, updateTime time.Time) *VCSDependency {
	version := src.Commit
	if version == "" {
		version = src.Tag
	}
	return &VCSDependency{
		resolved: newResolved(name, version, updateTime),
		source:   src,
	}
}

// Source returns the repository description.
func (d *VCSDependency) Source() VCSSource {
	return d.source
}

// Checkout returns the local directory holding the repository.
func (d *VCSDependency) Checkout() string {
	return d.source.Checkout
}

// Installer selects the installer matching the VCS.
func (d *VCSDependency) Installer() (InstallerKind, error) {
	switch d.source.VCS {
	case "", string(InstallerGit):
		return InstallerGit, nil
	case string(InstallerMercurial):
		return InstallerMercurial, nil
	default:
		err := zerr.With(ErrUnsupportedInstaller, "dependency", d.name)
		return "", zerr.With(err, "vcs", d.source.VCS)
	}
}

// LockNotation returns the lock-file description of the dependency.
func (d *VCSDependency) LockNotation() Notation {
	n := Notation{
		NameKey:   d.name,
		VCSKey:    d.vcs(),
		CommitKey: d.source.Commit,
	}
	if d.source.URL != "" {
		n[URLKey] = d.source.URL
	}
	if d.source.Tag != "" {
		n[TagKey] = d.source.Tag
	}
	return n
}

// FormatVersion returns the tag when set, otherwise the abbreviated commit.
func (d *VCSDependency) FormatVersion() string {
	if d.source.Tag != "" {
		return d.source.Tag
	}
	if len(d.source.Commit) > shortCommitLen {
		return d.source.Commit[:shortCommitLen]
	}
	return d.source.Commit
}

func (d *VCSDependency) vcs() string {
	if d.source.VCS == "" {
		return string(InstallerGit)
	}
	return d.source.VCS
}
