// Package lockfile implements lock file persistence.
package lockfile

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/vend/internal/core/domain"
	"go.trai.ch/vend/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.LockfileStore = (*Store)(nil)

// document is the on-disk layout of a lock file.
type document struct {
	APIVersion   string                `yaml:"apiVersion"`
	Checksum     string                `yaml:"checksum"`
	Dependencies map[string][]notation `yaml:"dependencies"`
}

type notation = map[string]any

// Store implements ports.LockfileStore using YAML files.
type Store struct {
	mu sync.Mutex
}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Read loads and verifies the lock file at path.
// Returns nil, nil if the file does not exist.
func (s *Store) Read(path string) (*domain.Lockfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(errors.Join(domain.ErrLockfileReadFailed, err), "path", path)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrLockfileReadFailed, err), "path", path)
	}

	lock := &domain.Lockfile{
		APIVersion:   doc.APIVersion,
		Checksum:     doc.Checksum,
		Dependencies: make(map[domain.BuildPhase][]domain.Notation, len(domain.Phases)),
	}
	for _, phase := range domain.Phases {
		entries := doc.Dependencies[string(phase)]
		notations := make([]domain.Notation, 0, len(entries))
		for _, n := range entries {
			notations = append(notations, domain.Notation(n))
		}
		lock.Dependencies[phase] = notations
	}

	if lock.APIVersion != domain.LockfileAPIVersion {
		return nil, zerr.With(zerr.With(domain.ErrLockfileReadFailed, "path", path), "apiVersion", lock.APIVersion)
	}

	sum, err := s.Checksum(lock)
	if err != nil {
		return nil, err
	}
	if sum != lock.Checksum {
		return nil, zerr.With(zerr.With(domain.ErrLockfileReadFailed, "path", path), "checksum", lock.Checksum)
	}

	return lock, nil
}

// Write stores lock at path, filling in its checksum.
// The file is replaced atomically.
func (s *Store) Write(path string, lock *domain.Lockfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum, err := s.Checksum(lock)
	if err != nil {
		return err
	}
	lock.Checksum = sum

	data, err := encode(&document{
		APIVersion:   lock.APIVersion,
		Checksum:     lock.Checksum,
		Dependencies: sections(lock),
	})
	if err != nil {
		return zerr.With(errors.Join(domain.ErrLockfileWriteFailed, err), "path", path)
	}

	path = filepath.Clean(path)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.With(errors.Join(domain.ErrLockfileWriteFailed, err), "path", path)
	}

	tmp, err := os.CreateTemp(dir, ".vend.lock-*")
	if err != nil {
		return zerr.With(errors.Join(domain.ErrLockfileWriteFailed, err), "path", path)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // Gone after a successful rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.With(errors.Join(domain.ErrLockfileWriteFailed, err), "path", path)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(errors.Join(domain.ErrLockfileWriteFailed, err), "path", path)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil { //nolint:gosec // Lock files are meant to be committed and shared
		return zerr.With(errors.Join(domain.ErrLockfileWriteFailed, err), "path", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return zerr.With(errors.Join(domain.ErrLockfileWriteFailed, err), "path", path)
	}
	return nil
}

// Checksum returns the XXHash of the encoded dependencies section of lock.
func (s *Store) Checksum(lock *domain.Lockfile) (string, error) {
	data, err := encode(sections(lock))
	if err != nil {
		return "", zerr.Wrap(err, "failed to encode dependencies")
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(data)), nil
}

// sections converts the dependencies of lock into their encoded form.
// Every phase is present so empty phases encode the same way after a round trip.
func sections(lock *domain.Lockfile) map[string][]notation {
	out := make(map[string][]notation, len(domain.Phases))
	for _, phase := range domain.Phases {
		entries := make([]notation, 0, len(lock.Dependencies[phase]))
		for _, n := range lock.Dependencies[phase] {
			entries = append(entries, plain(n))
		}
		out[string(phase)] = entries
	}
	return out
}

// plain strips the Notation type from nested notations so that freshly built
// and decoded lock files encode identically.
func plain(n domain.Notation) notation {
	out := make(notation, len(n))
	for k, v := range n {
		switch nested := v.(type) {
		case domain.Notation:
			out[k] = plain(nested)
		case map[string]any:
			out[k] = plain(domain.Notation(nested))
		default:
			out[k] = v
		}
	}
	return out
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
