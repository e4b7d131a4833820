package domain

import (
	"cmp"
	"slices"
)

// LockfileAPIVersion is the current lock file format version.
const LockfileAPIVersion = "1"

// Lockfile represents the complete state of resolved dependencies.
// It provides a reproducible snapshot of every dependency per build phase.
type Lockfile struct {
	// APIVersion is the lock file format version.
	// This allows for future schema migrations and backward compatibility.
	APIVersion string

	// Checksum fingerprints Dependencies. It is filled in when the lock file
	// is written or read.
	Checksum string

	// Dependencies maps each build phase to the notations of its dependencies,
	// sorted by name and vendor path.
	Dependencies map[BuildPhase][]Notation
}

// NewLockfile builds a lock file from the flattened dependencies of each phase.
func NewLockfile(deps map[BuildPhase][]Dependency) *Lockfile {
	l := &Lockfile{
		APIVersion:   LockfileAPIVersion,
		Dependencies: make(map[BuildPhase][]Notation, len(Phases)),
	}
	for _, phase := range Phases {
		notations := make([]Notation, 0, len(deps[phase]))
		for _, d := range deps[phase] {
			notations = append(notations, d.LockNotation())
		}
		slices.SortStableFunc(notations, compareNotations)
		l.Dependencies[phase] = notations
	}
	return l
}

func compareNotations(a, b Notation) int {
	return cmp.Or(
		cmp.Compare(a.Value(NameKey), b.Value(NameKey)),
		cmp.Compare(a.Value(VendorPathKey), b.Value(VendorPathKey)),
		cmp.Compare(hostName(a), hostName(b)),
	)
}

func hostName(n Notation) string {
	switch h := n[HostKey].(type) {
	case Notation:
		return h.Value(NameKey)
	case map[string]any:
		return Notation(h).Value(NameKey)
	default:
		return ""
	}
}
