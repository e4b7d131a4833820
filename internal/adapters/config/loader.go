// Package config provides the manifest loader for vend.
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"go.trai.ch/vend/internal/core/domain"
	"go.trai.ch/vend/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/mod/module"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

const (
	// ManifestVersion is the only supported manifest schema version.
	ManifestVersion = "1"
	// DefaultCacheDir holds VCS checkouts, relative to the project directory.
	DefaultCacheDir = ".vend/cache"
)

// ManifestNames lists the manifest file names in lookup order.
var ManifestNames = []string{"vend.yaml", "vend.yml", "vend.toml"}

// Loader implements ports.ConfigLoader by reading vend.yaml or vend.toml.
type Loader struct {
	Logger ports.Logger
}

var _ ports.ConfigLoader = (*Loader)(nil)

// NewLoader creates a new configuration loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load finds the manifest in dir or the closest parent directory and
// builds the declared dependencies.
func (l *Loader) Load(dir string) (*domain.Manifest, error) {
	path, err := FindManifest(dir)
	if err != nil {
		return nil, err
	}

	vf, err := Parse(path)
	if err != nil {
		return nil, err
	}

	return l.build(path, vf)
}

// FindManifest walks up from dir until a directory holding a manifest is found.
func FindManifest(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve directory"), "dir", dir)
	}

	for current := abs; ; {
		for _, name := range ManifestNames {
			candidate := filepath.Join(current, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", zerr.With(domain.ErrManifestNotFound, "dir", abs)
		}
		current = parent
	}
}

// Parse decodes the manifest at path. The format follows the file extension.
// Unknown keys are rejected.
func Parse(path string) (*Vendfile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrManifestReadFailed, err), "path", path)
	}

	var vf Vendfile
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		md, err := toml.Decode(string(data), &vf)
		if err != nil {
			return nil, zerr.With(errors.Join(domain.ErrManifestParseFailed, err), "path", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, zerr.With(zerr.With(domain.ErrManifestParseFailed, "path", path),
				"unknown_key", undecoded[0].String())
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&vf); err != nil && !errors.Is(err, io.EOF) {
			return nil, zerr.With(errors.Join(domain.ErrManifestParseFailed, err), "path", path)
		}
	}

	if vf.Version != "" && vf.Version != ManifestVersion {
		return nil, zerr.With(zerr.With(domain.ErrManifestParseFailed, "path", path), "version", vf.Version)
	}
	for phase := range vf.Dependencies {
		if !knownPhase(phase) {
			return nil, zerr.With(zerr.With(domain.ErrManifestParseFailed, "path", path), "phase", phase)
		}
	}

	return &vf, nil
}

func knownPhase(phase string) bool {
	for _, p := range domain.Phases {
		if string(p) == phase {
			return true
		}
	}
	return false
}

func (l *Loader) build(path string, vf *Vendfile) (*domain.Manifest, error) {
	root := filepath.Dir(path)
	cacheDir := resolveDir(root, vf.CacheDir)
	if vf.CacheDir == "" {
		cacheDir = filepath.Join(root, filepath.FromSlash(DefaultCacheDir))
	}

	m := &domain.Manifest{
		Path:         path,
		Dir:          root,
		Dependencies: make(map[domain.BuildPhase][]domain.Dependency, len(domain.Phases)),
	}

	for _, phase := range domain.Phases {
		seen := make(map[string]struct{})
		deps := make([]domain.Dependency, 0, len(vf.Dependencies[string(phase)]))

		for _, dto := range vf.Dependencies[string(phase)] {
			if err := validate(dto); err != nil {
				return nil, zerr.With(err, "phase", string(phase))
			}
			if _, dup := seen[dto.Name]; dup {
				return nil, invalid(dto.Name, "duplicate dependency")
			}
			seen[dto.Name] = struct{}{}

			dep := l.newDependency(root, cacheDir, dto)
			dep.AddExclusion(dto.Exclude...)
			deps = append(deps, dep)
		}
		m.Dependencies[phase] = deps
	}

	return m, nil
}

func (l *Loader) newDependency(root, cacheDir string, dto DependencyDTO) domain.Dependency {
	if dto.isLocal() {
		dir := resolveDir(root, dto.Dir)
		return domain.NewLocalDependency(dto.Name, dir, l.updateTime(dto.Name, dir)).
			WithLockDir(lockDir(dto.Dir))
	}

	checkout := filepath.Join(cacheDir, filepath.FromSlash(dto.Name))
	if dto.Dir != "" {
		checkout = resolveDir(root, dto.Dir)
	}
	return domain.NewVCSDependency(dto.Name, domain.VCSSource{
		VCS:      dto.VCS,
		URL:      dto.URL,
		Commit:   dto.Commit,
		Tag:      dto.Tag,
		Checkout: checkout,
	}, l.updateTime(dto.Name, checkout))
}

// updateTime returns the modification time of the source directory of a
// dependency, or the zero time when it is missing.
func (l *Loader) updateTime(name, dir string) time.Time {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && l.Logger != nil {
			l.Logger.Warn("source of " + name + " not found at " + dir)
		}
		return time.Time{}
	}
	return info.ModTime()
}

func validate(dto DependencyDTO) error {
	if err := module.CheckImportPath(dto.Name); err != nil {
		return zerr.With(invalid(dto.Name, "invalid import path"), "detail", err.Error())
	}
	for _, ex := range dto.Exclude {
		if err := module.CheckImportPath(ex); err != nil {
			return zerr.With(invalid(dto.Name, "invalid exclusion"), "exclude", ex)
		}
	}
	if dto.isLocal() {
		return nil
	}

	switch dto.VCS {
	case "", "git", "hg":
	default:
		return zerr.With(invalid(dto.Name, "unsupported vcs"), "vcs", dto.VCS)
	}
	if dto.Commit == "" && dto.Tag == "" {
		return invalid(dto.Name, "missing commit or tag")
	}
	if strings.HasPrefix(dto.Tag, "v") && !semver.IsValid(dto.Tag) {
		return zerr.With(invalid(dto.Name, "invalid semantic version tag"), "tag", dto.Tag)
	}
	return nil
}

func invalid(name, reason string) error {
	return zerr.With(zerr.With(domain.ErrInvalidDependency, "name", name), "reason", reason)
}

// lockDir returns the directory of a local dependency as declared in the
// manifest. A relative path stays relative to the manifest directory.
func lockDir(dir string) string {
	if dir == "" {
		return "."
	}
	return dir
}

func resolveDir(root, dir string) string {
	if dir == "" {
		return root
	}
	dir = filepath.FromSlash(dir)
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(root, dir)
}
