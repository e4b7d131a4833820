package domain

// Manifest is the set of top-level dependencies declared by a project.
type Manifest struct {
	// Path is the manifest file the project was loaded from.
	Path string

	// Dir is the project directory.
	Dir string

	// Dependencies maps each build phase to its declared host dependencies.
	Dependencies map[BuildPhase][]Dependency
}

// LockfileName is the lock file written next to the manifest.
const LockfileName = "vend.lock"
