package fs

import (
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
)

// CopyDir copies every file below src into dst, preserving relative paths,
// file modes and symbolic links. Version control metadata is not copied.
func (w *Walker) CopyDir(dst, src string) error {
	info, err := os.Stat(src)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to stat source directory"), "path", src)
	}
	if err := os.MkdirAll(dst, info.Mode().Perm()|0o700); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory"), "path", dst)
	}

	for path := range w.WalkFiles(src, nil) {
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to relativize path"), "path", path)
		}
		if err := copyEntry(filepath.Join(dst, rel), path); err != nil {
			return err
		}
	}
	return nil
}

func copyEntry(dst, src string) error {
	info, err := os.Lstat(src)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to stat file"), "path", src)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory"), "path", filepath.Dir(dst))
	}

	if info.Mode()&os.ModeSymlink != 0 {
		target, err := os.Readlink(src)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to read link"), "path", src)
		}
		if err := os.Symlink(target, dst); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to create link"), "path", dst)
		}
		return nil
	}
	if !info.Mode().IsRegular() {
		return nil
	}

	in, err := os.Open(src) //nolint:gosec // Path comes from the walked tree
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open file"), "path", src)
	}
	defer in.Close() //nolint:errcheck // Read-only file

	//nolint:gosec // Destination is inside the install directory
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create file"), "path", dst)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return zerr.With(zerr.Wrap(err, "failed to copy file"), "path", src)
	}
	if err := out.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to close file"), "path", dst)
	}
	return nil
}
