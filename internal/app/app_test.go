package app_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/vend/internal/adapters/fs"
	"go.trai.ch/vend/internal/adapters/installer"
	"go.trai.ch/vend/internal/adapters/telemetry"
	"go.trai.ch/vend/internal/app"
	"go.trai.ch/vend/internal/core/domain"
	"go.trai.ch/vend/internal/core/ports/mocks"
	"go.trai.ch/vend/internal/engine/resolver"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	loader     *mocks.MockConfigLoader
	lockfiles  *mocks.MockLockfileStore
	installers *mocks.MockInstallerRegistry
	hasher     *mocks.MockTreeHasher
	logger     *mocks.MockLogger
	app        *app.App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		loader:     mocks.NewMockConfigLoader(ctrl),
		lockfiles:  mocks.NewMockLockfileStore(ctrl),
		installers: mocks.NewMockInstallerRegistry(ctrl),
		hasher:     mocks.NewMockTreeHasher(ctrl),
		logger:     mocks.NewMockLogger(ctrl),
	}
	tel := telemetry.NewNoOp()
	f.app = app.New(
		f.loader,
		resolver.New(fs.NewScanner(), tel),
		f.lockfiles,
		f.installers,
		f.hasher,
		f.logger,
		tel,
	)
	return f
}

func metadata(t *testing.T, err error) map[string]any {
	t.Helper()
	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	return zErr.Metadata()
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// project lays out a manifest directory with one build host that vendors
// github.com/a/b and one test host without a vendor directory.
type project struct {
	dir      string
	hostDir  string
	testDir  string
	manifest func() *domain.Manifest
}

func newProject(t *testing.T) *project {
	t.Helper()
	dir := t.TempDir()
	p := &project{
		dir:     dir,
		hostDir: filepath.Join(dir, "src", "y"),
		testDir: filepath.Join(dir, "src", "t"),
	}
	writeFile(t, filepath.Join(p.hostDir, "y.go"), "package y")
	writeFile(t, filepath.Join(p.hostDir, "vendor", "github.com", "a", "b", "b.go"), "package b")
	writeFile(t, filepath.Join(p.testDir, "t.go"), "package t")

	// Resolution attaches dependency sets once, so each load builds fresh hosts.
	p.manifest = func() *domain.Manifest {
		return &domain.Manifest{
			Path: filepath.Join(dir, "vend.yaml"),
			Dir:  dir,
			Dependencies: map[domain.BuildPhase][]domain.Dependency{
				domain.PhaseBuild: {domain.NewLocalDependency("github.com/x/y", p.hostDir, time.Time{})},
				domain.PhaseTest:  {domain.NewLocalDependency("github.com/t/t", p.testDir, time.Time{})},
			},
		}
	}
	return p
}

func (f *fixture) expectLoad(p *project) {
	f.loader.EXPECT().Load(p.dir).DoAndReturn(func(string) (*domain.Manifest, error) {
		return p.manifest(), nil
	})
}

func TestApp_Lock(t *testing.T) {
	f := newFixture(t)
	p := newProject(t)
	f.expectLoad(p)

	f.lockfiles.EXPECT().
		Write(filepath.Join(p.dir, domain.LockfileName), gomock.Any()).
		DoAndReturn(func(_ string, lock *domain.Lockfile) error {
			build := lock.Dependencies[domain.PhaseBuild]
			require.Len(t, build, 2)
			assert.Equal(t, "github.com/a/b", build[0].Value(domain.NameKey))
			assert.Equal(t, "vendor/github.com/a/b", build[0].Value(domain.VendorPathKey))
			assert.Equal(t, "github.com/x/y", build[1].Value(domain.NameKey))

			test := lock.Dependencies[domain.PhaseTest]
			require.Len(t, test, 1)
			assert.Equal(t, "github.com/t/t", test[0].Value(domain.NameKey))
			return nil
		})
	f.logger.EXPECT().Info(gomock.Cond(func(msg string) bool {
		return strings.HasPrefix(msg, "wrote ")
	}))

	require.NoError(t, f.app.Lock(context.Background(), app.LockOptions{Dir: p.dir}))
}

func TestApp_LockCheck(t *testing.T) {
	tests := []struct {
		name     string
		existing *domain.Lockfile
		wantErr  string
	}{
		{name: "up to date", existing: &domain.Lockfile{Checksum: "abc"}},
		{name: "drifted", existing: &domain.Lockfile{Checksum: "old"}, wantErr: "checksum mismatch"},
		{name: "missing", existing: nil, wantErr: "missing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			p := newProject(t)
			f.expectLoad(p)

			path := filepath.Join(p.dir, domain.LockfileName)
			f.lockfiles.EXPECT().Read(path).Return(tt.existing, nil)
			if tt.existing != nil {
				f.lockfiles.EXPECT().Checksum(gomock.Any()).Return("abc", nil)
			}
			if tt.wantErr == "" {
				f.logger.EXPECT().Info(gomock.Cond(func(msg string) bool {
					return strings.HasSuffix(msg, "is up to date")
				}))
			}

			err := f.app.Lock(context.Background(), app.LockOptions{Dir: p.dir, Check: true})
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorContains(t, err, domain.ErrLockfileOutdated.Error())
			assert.Equal(t, tt.wantErr, metadata(t, err)["reason"])
		})
	}
}

func TestApp_LockReportsConflicts(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()
	one := filepath.Join(dir, "one")
	two := filepath.Join(dir, "two")
	writeFile(t, filepath.Join(one, "vendor", "github.com", "shared", "lib", "lib.go"), "package lib")
	writeFile(t, filepath.Join(two, "vendor", "github.com", "shared", "lib", "lib.go"), "package lib")

	f.loader.EXPECT().Load(dir).Return(&domain.Manifest{
		Dir: dir,
		Dependencies: map[domain.BuildPhase][]domain.Dependency{
			domain.PhaseBuild: {
				domain.NewLocalDependency("github.com/x/one", one, time.Time{}),
				domain.NewLocalDependency("github.com/x/two", two, time.Time{}),
			},
		},
	}, nil)

	f.logger.EXPECT().Warn(gomock.Cond(func(msg string) bool {
		return strings.HasPrefix(msg, "github.com/shared/lib: using github.com/x/one#")
	}))
	f.lockfiles.EXPECT().Write(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ string, lock *domain.Lockfile) error {
			assert.Len(t, lock.Dependencies[domain.PhaseBuild], 3)
			return nil
		})
	f.logger.EXPECT().Info(gomock.Any())

	require.NoError(t, f.app.Lock(context.Background(), app.LockOptions{Dir: dir}))
}

func TestApp_LockLoadFails(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load("missing").Return(nil, domain.ErrManifestNotFound)

	err := f.app.Lock(context.Background(), app.LockOptions{Dir: "missing"})
	require.ErrorIs(t, err, domain.ErrManifestNotFound)
	assert.ErrorContains(t, err, "failed to load manifest")
}

func TestApp_Dependencies(t *testing.T) {
	f := newFixture(t)
	p := newProject(t)
	f.expectLoad(p)

	var out bytes.Buffer
	require.NoError(t, f.app.Dependencies(context.Background(), app.DepsOptions{Dir: p.dir}, &out))

	assert.Equal(t,
		"github.com/x/y "+p.hostDir+"\n"+
			"  github.com/a/b github.com/x/y#"+p.hostDir+"/vendor/github.com/a/b\n",
		out.String())
}

func TestApp_DependenciesTestPhase(t *testing.T) {
	f := newFixture(t)
	p := newProject(t)
	f.expectLoad(p)

	var out bytes.Buffer
	require.NoError(t, f.app.Dependencies(context.Background(),
		app.DepsOptions{Dir: p.dir, Phase: domain.PhaseTest}, &out))

	assert.Equal(t, "github.com/t/t "+p.testDir+"\n", out.String())
}

func TestApp_Install(t *testing.T) {
	f := newFixture(t)
	p := newProject(t)
	f.expectLoad(p)

	ctrl := gomock.NewController(t)
	installer := mocks.NewMockInstaller(ctrl)
	dest := filepath.Join(p.dir, "out")

	f.installers.EXPECT().Lookup(domain.InstallerLocalDirectory).Return(installer, nil).Times(2)
	installer.EXPECT().Install(gomock.Any(), gomock.Any(), filepath.Join(dest, "github.com", "x", "y"))
	installer.EXPECT().Install(gomock.Any(), gomock.Any(), filepath.Join(dest, "github.com", "a", "b"))
	f.logger.EXPECT().Info(gomock.Any()).Times(2)

	require.NoError(t, f.app.Install(context.Background(), app.InstallOptions{Dir: p.dir, Dest: "out"}))
}

func TestApp_InstallSkipsUnchangedLocalTree(t *testing.T) {
	f := newFixture(t)
	p := newProject(t)
	f.expectLoad(p)

	dest := t.TempDir()
	installed := filepath.Join(dest, "github.com", "x", "y")
	require.NoError(t, os.MkdirAll(installed, 0o750))

	ctrl := gomock.NewController(t)
	installer := mocks.NewMockInstaller(ctrl)

	f.hasher.EXPECT().HashTree(p.hostDir).Return("same", nil)
	f.hasher.EXPECT().HashTree(installed).Return("same", nil)
	f.installers.EXPECT().Lookup(domain.InstallerLocalDirectory).Return(installer, nil)
	installer.EXPECT().Install(gomock.Any(), gomock.Any(), filepath.Join(dest, "github.com", "a", "b"))
	f.logger.EXPECT().Info(gomock.Any())

	require.NoError(t, f.app.Install(context.Background(), app.InstallOptions{Dir: p.dir, Dest: dest}))
}

func TestApp_InstallKeepsTargetsBelowParentPath(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()
	hostDir := filepath.Join(dir, "src", "v2")
	vendored := filepath.Join(hostDir, "vendor", "github.com", "a", "b")
	writeFile(t, filepath.Join(hostDir, "v2.go"), "package b")
	writeFile(t, filepath.Join(vendored, "b.go"), "package b")

	f.loader.EXPECT().Load(dir).DoAndReturn(func(string) (*domain.Manifest, error) {
		return &domain.Manifest{
			Dir: dir,
			Dependencies: map[domain.BuildPhase][]domain.Dependency{
				domain.PhaseBuild: {domain.NewLocalDependency("github.com/a/b/v2", hostDir, time.Time{})},
			},
		}, nil
	}).Times(2)

	dest := filepath.Join(dir, "out")
	parent := filepath.Join(dest, "github.com", "a", "b")
	local := installer.NewLocalDirectoryInstaller(fs.NewWalker())
	f.installers.EXPECT().Lookup(domain.InstallerLocalDirectory).Return(local, nil).Times(4)
	f.logger.EXPECT().Info(gomock.Any()).Times(4)

	// First run installs into an empty directory.
	require.NoError(t, f.app.Install(context.Background(), app.InstallOptions{Dir: dir, Dest: "out"}))
	assert.FileExists(t, filepath.Join(parent, "b.go"))
	assert.FileExists(t, filepath.Join(parent, "v2", "v2.go"))

	// A changed parent is replaced, and the host below it is installed again.
	f.hasher.EXPECT().HashTree(vendored).Return("current", nil)
	f.hasher.EXPECT().HashTree(parent).Return("stale", nil)

	require.NoError(t, f.app.Install(context.Background(), app.InstallOptions{Dir: dir, Dest: "out"}))
	assert.FileExists(t, filepath.Join(parent, "b.go"))
	assert.FileExists(t, filepath.Join(parent, "v2", "v2.go"))
}

func TestApp_InstallFails(t *testing.T) {
	f := newFixture(t)
	p := newProject(t)
	f.expectLoad(p)

	ctrl := gomock.NewController(t)
	installer := mocks.NewMockInstaller(ctrl)

	f.installers.EXPECT().Lookup(domain.InstallerLocalDirectory).Return(installer, nil)
	installer.EXPECT().Install(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	err := f.app.Install(context.Background(), app.InstallOptions{Dir: p.dir, Dest: t.TempDir()})
	require.Error(t, err)
	assert.ErrorContains(t, err, "disk full")
}

func TestApp_InstallUnsupportedVCS(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()
	f.loader.EXPECT().Load(dir).Return(&domain.Manifest{
		Dir: dir,
		Dependencies: map[domain.BuildPhase][]domain.Dependency{
			domain.PhaseBuild: {
				domain.NewVCSDependency("example.com/h", domain.VCSSource{VCS: "svn", Commit: "abc", Checkout: dir}, time.Time{}),
			},
		},
	}, nil)

	err := f.app.Install(context.Background(), app.InstallOptions{Dir: dir, Dest: t.TempDir()})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrUnsupportedInstaller.Error())
	assert.Equal(t, "example.com/h", metadata(t, err)["dependency"])
}
