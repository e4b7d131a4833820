// Package domain contains the core domain models for resolved Go dependencies
// and the vendored packages nested inside them.
package domain

import (
	"maps"
	"slices"
	"strings"
	"time"

	"go.trai.ch/zerr"
)

// BuildPhase selects which set of dependencies is being resolved.
type BuildPhase string

const (
	// PhaseBuild covers dependencies needed to compile the project.
	PhaseBuild BuildPhase = "build"
	// PhaseTest covers dependencies needed only to run tests.
	PhaseTest BuildPhase = "test"
)

// Phases lists every build phase in lock-file order.
var Phases = []BuildPhase{PhaseBuild, PhaseTest}

// Dependency is a resolved dependency.
//
// The set of implementations is closed: *VCSDependency, *LocalDependency and
// *VendorDependency. Code that needs per-variant behavior matches on the
// concrete type.
type Dependency interface {
	// Name returns the import path of the dependency.
	Name() string
	// Version returns the resolved version.
	Version() string
	// UpdateTime returns the last modification time of the dependency source.
	UpdateTime() time.Time
	// Exclusions returns the sorted names skipped when resolving transitive dependencies.
	Exclusions() []string
	// Excludes reports whether the named package is excluded.
	Excludes(name string) bool
	// AddExclusion adds names to the exclusion set.
	AddExclusion(names ...string)
	// Dependencies returns the dependencies of this dependency.
	Dependencies() *DependencySet
	// SetDependencies assigns the dependency set. It may only be called once.
	SetDependencies(deps *DependencySet) error
	// Installer returns the installation mechanism for this dependency.
	Installer() (InstallerKind, error)
	// LockNotation returns the reproducible lock-file description.
	LockNotation() Notation
	// FormatVersion returns a human-readable version.
	FormatVersion() string

	base() *resolved
}

// resolved holds the state shared by all dependency variants.
type resolved struct {
	name       string
	version    string
	updateTime time.Time
	exclusions ExclusionSet
	deps       *DependencySet
}

func newResolved(name, version string, updateTime time.Time) resolved {
	return resolved{
		name:       name,
		version:    version,
		updateTime: updateTime,
		exclusions: make(ExclusionSet),
	}
}

func (r *resolved) base() *resolved { return r }

// Name returns the import path of the dependency.
func (r *resolved) Name() string { return r.name }

// Version returns the resolved version.
func (r *resolved) Version() string { return r.version }

// UpdateTime returns the last modification time of the dependency source.
func (r *resolved) UpdateTime() time.Time { return r.updateTime }

// Exclusions returns the sorted names skipped when resolving transitive dependencies.
func (r *resolved) Exclusions() []string { return r.exclusions.Sorted() }

// Excludes reports whether the named package is excluded.
func (r *resolved) Excludes(name string) bool { return r.exclusions.Excludes(name) }

// AddExclusion adds names to the exclusion set.
func (r *resolved) AddExclusion(names ...string) {
	if r.exclusions == nil {
		r.exclusions = make(ExclusionSet)
	}
	for _, n := range names {
		r.exclusions[n] = struct{}{}
	}
}

// Dependencies returns the dependencies of this dependency.
// An unresolved dependency has an empty set.
func (r *resolved) Dependencies() *DependencySet {
	if r.deps == nil {
		return NewDependencySet()
	}
	return r.deps
}

// SetDependencies assigns the dependency set. It may only be called once.
func (r *resolved) SetDependencies(deps *DependencySet) error {
	if r.deps != nil {
		return zerr.With(ErrDependenciesAlreadySet, "dependency", r.name)
	}
	if deps == nil {
		deps = NewDependencySet()
	}
	r.deps = deps
	return nil
}

// ExclusionSet is a set of dependency names excluded from transitive resolution.
type ExclusionSet map[string]struct{}

// Excludes reports whether name, or a package path it lives under, is in the set.
func (s ExclusionSet) Excludes(name string) bool {
	for n := name; n != ""; {
		if _, ok := s[n]; ok {
			return true
		}
		i := strings.LastIndexByte(n, '/')
		if i < 0 {
			break
		}
		n = n[:i]
	}
	return false
}

// Sorted returns the members in lexical order.
func (s ExclusionSet) Sorted() []string {
	return slices.Sorted(maps.Keys(s))
}

// Clone returns an independent copy of the set.
func (s ExclusionSet) Clone() ExclusionSet {
	c := make(ExclusionSet, len(s))
	maps.Copy(c, s)
	return c
}
