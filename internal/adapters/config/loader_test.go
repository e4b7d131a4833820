package config_test

import (
	"cmp"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/vend/internal/adapters/config"
	"go.trai.ch/vend/internal/adapters/lockfile"
	"go.trai.ch/vend/internal/core/domain"
	"go.trai.ch/vend/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func writeManifest(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func quietLoader(t *testing.T) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	return config.NewLoader(log)
}

func TestLoad_YAML(t *testing.T) {
	tmpDir := t.TempDir()
	localDir := filepath.Join(tmpDir, "libs", "local")
	require.NoError(t, os.MkdirAll(localDir, 0o750))

	writeManifest(t, tmpDir, "vend.yaml", `
version: "1"
cacheDir: .cache
dependencies:
  build:
    - name: github.com/x/y
      url: https://github.com/x/y.git
      commit: 0123456789abcdef
      tag: v1.2.3
      exclude: [github.com/a/b]
    - name: example.com/local
      dir: libs/local
  test:
    - name: bitbucket.org/t/t
      vcs: hg
      tag: release-1
      dir: /opt/checkouts/t
`)

	m, err := quietLoader(t).Load(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(tmpDir, "vend.yaml"), m.Path)
	assert.Equal(t, tmpDir, m.Dir)

	build := m.Dependencies[domain.PhaseBuild]
	require.Len(t, build, 2)

	vcs, ok := build[0].(*domain.VCSDependency)
	require.True(t, ok)
	assert.Equal(t, "github.com/x/y", vcs.Name())
	assert.Equal(t, "0123456789abcdef", vcs.Version())
	assert.Equal(t, filepath.Join(tmpDir, ".cache", "github.com", "x", "y"), vcs.Checkout())
	assert.True(t, vcs.Excludes("github.com/a/b/c"))
	assert.True(t, vcs.UpdateTime().IsZero())

	local, ok := build[1].(*domain.LocalDependency)
	require.True(t, ok)
	assert.Equal(t, localDir, local.Dir())
	assert.False(t, local.UpdateTime().IsZero())

	test := m.Dependencies[domain.PhaseTest]
	require.Len(t, test, 1)
	hg, ok := test[0].(*domain.VCSDependency)
	require.True(t, ok)
	assert.Equal(t, "/opt/checkouts/t", hg.Checkout())
	kind, err := hg.Installer()
	require.NoError(t, err)
	assert.Equal(t, domain.InstallerMercurial, kind)
}

func TestLoad_LocalDirIsCheckoutIndependent(t *testing.T) {
	const manifest = `
version: "1"
dependencies:
  build:
    - name: example.com/local
      dir: ./libs/local/
    - name: example.com/root
      dir: .
`
	store := lockfile.NewStore()
	checksums := make([]string, 0, 2)

	for range 2 {
		tmpDir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "libs", "local"), 0o750))
		writeManifest(t, tmpDir, "vend.yaml", manifest)

		m, err := quietLoader(t).Load(tmpDir)
		require.NoError(t, err)

		build := m.Dependencies[domain.PhaseBuild]
		require.Len(t, build, 2)
		local, ok := build[0].(*domain.LocalDependency)
		require.True(t, ok)
		assert.Equal(t, filepath.Join(tmpDir, "libs", "local"), local.Dir())
		assert.Equal(t, "libs/local", local.FormatVersion())
		assert.Equal(t, "libs/local", local.LockNotation().Value(domain.DirKey))
		assert.Equal(t, ".", build[1].LockNotation().Value(domain.DirKey))

		sum, err := store.Checksum(domain.NewLockfile(m.Dependencies))
		require.NoError(t, err)
		checksums = append(checksums, sum)
	}

	assert.Equal(t, checksums[0], checksums[1])
}

func TestLoad_TOML(t *testing.T) {
	tmpDir := t.TempDir()
	writeManifest(t, tmpDir, "vend.toml", `
version = "1"

[[dependencies.build]]
name = "github.com/x/y"
commit = "abcdef0"

[[dependencies.test]]
name = "example.com/local"
dir = "../local"
`)

	m, err := quietLoader(t).Load(tmpDir)
	require.NoError(t, err)

	require.Len(t, m.Dependencies[domain.PhaseBuild], 1)
	vcs := m.Dependencies[domain.PhaseBuild][0].(*domain.VCSDependency)
	assert.Equal(t, filepath.Join(tmpDir, ".vend", "cache", "github.com", "x", "y"), vcs.Checkout())

	require.Len(t, m.Dependencies[domain.PhaseTest], 1)
	local := m.Dependencies[domain.PhaseTest][0].(*domain.LocalDependency)
	assert.Equal(t, filepath.Join(filepath.Dir(tmpDir), "local"), local.Dir())
}

func TestLoad_DiscoversManifestInParent(t *testing.T) {
	tmpDir := t.TempDir()
	writeManifest(t, tmpDir, "vend.yml", "version: \"1\"\n")
	deep := filepath.Join(tmpDir, "cmd", "tool")
	require.NoError(t, os.MkdirAll(deep, 0o750))

	m, err := quietLoader(t).Load(deep)
	require.NoError(t, err)
	assert.Equal(t, tmpDir, m.Dir)
	assert.Empty(t, m.Dependencies[domain.PhaseBuild])
	assert.NotNil(t, m.Dependencies[domain.PhaseTest])
}

func TestLoad_PrefersYAMLOverTOML(t *testing.T) {
	tmpDir := t.TempDir()
	writeManifest(t, tmpDir, "vend.yaml", "version: \"1\"\n")
	writeManifest(t, tmpDir, "vend.toml", "version = \"2\"\n")

	m, err := quietLoader(t).Load(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, "vend.yaml"), m.Path)
}

func TestLoad_WarnsAboutMissingSource(t *testing.T) {
	tmpDir := t.TempDir()
	writeManifest(t, tmpDir, "vend.yaml", `
dependencies:
  build:
    - name: github.com/x/y
      commit: abc
`)

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Cond(func(msg string) bool {
		return strings.HasPrefix(msg, "source of github.com/x/y not found at ")
	})).Times(1)

	_, err := config.NewLoader(log).Load(tmpDir)
	require.NoError(t, err)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		_, err := quietLoader(t).Load(t.TempDir())
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrManifestNotFound.Error())
	})

	t.Run("invalid yaml", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeManifest(t, tmpDir, "vend.yaml", "dependencies:\n  build: [unclosed\n")
		_, err := quietLoader(t).Load(tmpDir)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrManifestParseFailed)
	})

	t.Run("unknown yaml key", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeManifest(t, tmpDir, "vend.yaml", "dependencies:\n  build:\n    - name: a.b/c\n      comit: abc\n")
		_, err := quietLoader(t).Load(tmpDir)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrManifestParseFailed)
	})

	t.Run("unknown toml key", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeManifest(t, tmpDir, "vend.toml", "cache_dir = \"x\"\n")
		_, err := quietLoader(t).Load(tmpDir)
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrManifestParseFailed.Error())
	})

	t.Run("unsupported version", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeManifest(t, tmpDir, "vend.yaml", "version: \"2\"\n")
		_, err := quietLoader(t).Load(tmpDir)
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrManifestParseFailed.Error())
	})

	t.Run("unknown phase", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeManifest(t, tmpDir, "vend.yaml", "dependencies:\n  runtime: []\n")
		_, err := quietLoader(t).Load(tmpDir)
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrManifestParseFailed.Error())
	})
}

func TestLoad_InvalidDependencies(t *testing.T) {
	cases := map[string]struct {
		entry  string
		name   string
		reason string
	}{
		"bad import path": {
			entry:  "- name: \"../escape\"\n  commit: abc",
			name:   "../escape",
			reason: "invalid import path",
		},
		"missing pin": {
			entry:  "- name: github.com/x/y\n  url: https://github.com/x/y.git",
			reason: "missing commit or tag",
		},
		"bad semver tag": {
			entry:  "- name: github.com/x/y\n  tag: v1.2.x",
			reason: "invalid semantic version tag",
		},
		"unsupported vcs": {
			entry:  "- name: github.com/x/y\n  vcs: svn\n  commit: abc",
			reason: "unsupported vcs",
		},
		"bad exclusion": {
			entry:  "- name: github.com/x/y\n  commit: abc\n  exclude: [\"/abs\"]",
			reason: "invalid exclusion",
		},
		"duplicate": {
			entry:  "- name: github.com/x/y\n  commit: abc\n- name: github.com/x/y\n  commit: def",
			reason: "duplicate dependency",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			tmpDir := t.TempDir()
			content := "dependencies:\n  build:\n"
			for _, line := range strings.Split(tc.entry, "\n") {
				content += "    " + line + "\n"
			}
			writeManifest(t, tmpDir, "vend.yaml", content)

			_, err := quietLoader(t).Load(tmpDir)
			require.Error(t, err)
			assert.ErrorContains(t, err, domain.ErrInvalidDependency.Error())

			zErr, ok := err.(*zerr.Error)
			require.True(t, ok, "expected *zerr.Error, got %T", err)
			assert.Equal(t, tc.reason, zErr.Metadata()["reason"])
			assert.Equal(t, cmp.Or(tc.name, "github.com/x/y"), zErr.Metadata()["name"])
		})
	}
}
