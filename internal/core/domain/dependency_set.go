package domain

import (
	"iter"
	"maps"
	"slices"
)

// DependencySet is a set of dependencies keyed by name.
// Iteration is always in name order.
type DependencySet struct {
	byName map[string]Dependency
}

// NewDependencySet creates a set holding deps. Later duplicates of a name are ignored.
func NewDependencySet(deps ...Dependency) *DependencySet {
	s := &DependencySet{byName: make(map[string]Dependency, len(deps))}
	for _, d := range deps {
		s.Add(d)
	}
	return s
}

// Add inserts d and reports whether it was added.
// A dependency whose name is already present is not added.
func (s *DependencySet) Add(d Dependency) bool {
	if s.byName == nil {
		s.byName = make(map[string]Dependency)
	}
	if _, exists := s.byName[d.Name()]; exists {
		return false
	}
	s.byName[d.Name()] = d
	return true
}

// Get returns the dependency with the given name.
func (s *DependencySet) Get(name string) (Dependency, bool) {
	d, ok := s.byName[name]
	return d, ok
}

// Len returns the number of dependencies in the set.
func (s *DependencySet) Len() int {
	return len(s.byName)
}

// All returns an iterator over the dependencies in name order.
func (s *DependencySet) All() iter.Seq[Dependency] {
	return func(yield func(Dependency) bool) {
		for _, name := range slices.Sorted(maps.Keys(s.byName)) {
			if !yield(s.byName[name]) {
				return
			}
		}
	}
}

// Conflict records a dependency dropped during flattening because another
// dependency with the same name was closer to the root.
type Conflict struct {
	Kept    Dependency
	Dropped Dependency
}

// String describes the conflict with the formatted versions of both sides.
func (c Conflict) String() string {
	return c.Kept.Name() + ": using " + describe(c.Kept) + ", ignoring " + describe(c.Dropped)
}

func describe(d Dependency) string {
	if _, ok := d.(*VendorDependency); ok {
		return d.FormatVersion()
	}
	return d.Name() + "#" + d.FormatVersion()
}

// Flatten walks the dependency tree below s breadth-first and returns every
// dependency once. When a name occurs more than once, the occurrence nearest
// to the root wins and the others are reported as conflicts.
func (s *DependencySet) Flatten() ([]Dependency, []Conflict) {
	var (
		result    []Dependency
		conflicts []Conflict
		kept      = make(map[string]Dependency)
		queue     = slices.Collect(s.All())
	)

	for len(queue) > 0 {
		d := queue[0]
		queue = queue[1:]

		if k, seen := kept[d.Name()]; seen {
			if k != d {
				conflicts = append(conflicts, Conflict{Kept: k, Dropped: d})
			}
			continue
		}
		kept[d.Name()] = d
		result = append(result, d)

		for child := range d.Dependencies().All() {
			queue = append(queue, child)
		}
	}

	return result, conflicts
}
