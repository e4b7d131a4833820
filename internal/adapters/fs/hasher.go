package fs

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/vend/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.TreeHasher = (*Hasher)(nil)

// Hasher fingerprints dependency trees.
type Hasher struct {
	walker *Walker
}

// NewHasher creates a new Hasher.
func NewHasher(walker *Walker) *Hasher {
	return &Hasher{walker: walker}
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}

// HashTree computes a single hash over the relative paths, modes and contents
// of every file below root. Version control metadata is ignored.
func (h *Hasher) HashTree(root string) (string, error) {
	hasher := xxhash.New()
	var buf [8]byte

	for path := range h.walker.WalkFiles(root, nil) {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return "", zerr.With(zerr.Wrap(err, "failed to relativize path"), "path", path)
		}
		info, err := os.Lstat(path)
		if err != nil {
			return "", zerr.With(zerr.Wrap(err, "failed to stat file"), "path", path)
		}

		_, _ = hasher.WriteString(filepath.ToSlash(rel))
		_, _ = hasher.Write([]byte{0})
		binary.LittleEndian.PutUint32(buf[:4], uint32(info.Mode()))
		_, _ = hasher.Write(buf[:4])

		if info.Mode()&os.ModeSymlink != 0 {
			target, err := os.Readlink(path)
			if err != nil {
				return "", zerr.With(zerr.Wrap(err, "failed to read link"), "path", path)
			}
			_, _ = hasher.WriteString(target)
			_, _ = hasher.Write([]byte{0})
			continue
		}

		sum, err := h.ComputeFileHash(path)
		if err != nil {
			return "", err
		}
		binary.LittleEndian.PutUint64(buf[:], sum)
		_, _ = hasher.Write(buf[:])
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}
