package ports

import "go.trai.ch/vend/internal/core/domain"

// LockfileStore defines the interface for persisting lock files.
//
//go:generate go run go.uber.org/mock/mockgen -source=lockfile.go -destination=mocks/mock_lockfile.go -package=mocks
type LockfileStore interface {
	// Read loads the lock file at path.
	// Returns nil, nil if the file does not exist.
	Read(path string) (*domain.Lockfile, error)

	// Write stores lock at path and fills in its checksum.
	Write(path string, lock *domain.Lockfile) error

	// Checksum fingerprints the dependencies recorded in lock.
	Checksum(lock *domain.Lockfile) (string, error)
}
