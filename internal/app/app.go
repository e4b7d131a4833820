// Package app implements the application layer for vend.
package app

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/vend/internal/core/domain"
	"go.trai.ch/vend/internal/core/ports"
	"go.trai.ch/vend/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	resolver     *resolver.Resolver
	lockfiles    ports.LockfileStore
	installers   ports.InstallerRegistry
	hasher       ports.TreeHasher
	logger       ports.Logger
	telemetry    ports.Telemetry
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	res *resolver.Resolver,
	lockfiles ports.LockfileStore,
	installers ports.InstallerRegistry,
	hasher ports.TreeHasher,
	logger ports.Logger,
	telemetry ports.Telemetry,
) *App {
	return &App{
		configLoader: loader,
		resolver:     res,
		lockfiles:    lockfiles,
		installers:   installers,
		hasher:       hasher,
		logger:       logger,
		telemetry:    telemetry,
	}
}

// LockOptions configures a Lock run.
type LockOptions struct {
	// Dir is the directory the manifest is searched from.
	Dir string
	// Check compares the existing lock file instead of writing a new one.
	Check bool
}

// Lock resolves every build phase and writes the lock file next to the
// manifest. In check mode it returns ErrLockfileOutdated when the lock file
// on disk does not match.
func (a *App) Lock(ctx context.Context, opts LockOptions) error {
	manifest, err := a.configLoader.Load(opts.Dir)
	if err != nil {
		return zerr.Wrap(err, "failed to load manifest")
	}

	deps := make(map[domain.BuildPhase][]domain.Dependency, len(domain.Phases))
	for _, phase := range domain.Phases {
		flat, err := a.resolve(ctx, manifest, phase)
		if err != nil {
			return err
		}
		deps[phase] = flat
	}

	lock := domain.NewLockfile(deps)
	path := filepath.Join(manifest.Dir, domain.LockfileName)

	if opts.Check {
		return a.checkLockfile(path, lock)
	}

	if err := a.lockfiles.Write(path, lock); err != nil {
		return err
	}
	a.logger.Info(fmt.Sprintf("wrote %s (%d build, %d test)", path,
		len(lock.Dependencies[domain.PhaseBuild]), len(lock.Dependencies[domain.PhaseTest])))
	return nil
}

func (a *App) checkLockfile(path string, lock *domain.Lockfile) error {
	existing, err := a.lockfiles.Read(path)
	if err != nil {
		return err
	}
	if existing == nil {
		return zerr.With(zerr.With(domain.ErrLockfileOutdated, "path", path), "reason", "missing")
	}

	want, err := a.lockfiles.Checksum(lock)
	if err != nil {
		return err
	}
	if existing.Checksum != want {
		return zerr.With(zerr.With(domain.ErrLockfileOutdated, "path", path), "reason", "checksum mismatch")
	}

	a.logger.Info(path + " is up to date")
	return nil
}

// DepsOptions configures a Dependencies run.
type DepsOptions struct {
	// Dir is the directory the manifest is searched from.
	Dir string
	// Phase selects the dependencies to print.
	Phase domain.BuildPhase
}

// Dependencies writes the resolved dependency tree of a phase to w, one
// dependency per line, indented by depth.
func (a *App) Dependencies(ctx context.Context, opts DepsOptions, w io.Writer) error {
	manifest, err := a.configLoader.Load(opts.Dir)
	if err != nil {
		return zerr.Wrap(err, "failed to load manifest")
	}

	phase := phaseOrDefault(opts.Phase)
	hosts, err := a.resolver.Resolve(ctx, manifest.Dependencies[phase], phase)
	if err != nil {
		return err
	}

	for _, host := range hosts {
		if err := printTree(w, host, 0); err != nil {
			return err
		}
	}
	return nil
}

func printTree(w io.Writer, dep domain.Dependency, depth int) error {
	if _, err := fmt.Fprintf(w, "%s%s %s\n", strings.Repeat("  ", depth), dep.Name(), dep.FormatVersion()); err != nil {
		return err
	}
	for child := range dep.Dependencies().All() {
		if err := printTree(w, child, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// InstallOptions configures an Install run.
type InstallOptions struct {
	// Dir is the directory the manifest is searched from.
	Dir string
	// Dest is the install directory. A relative path is taken from the
	// manifest directory.
	Dest string
	// Phase selects the dependencies to install.
	Phase domain.BuildPhase
}

// Install resolves a phase and installs every dependency into
// <dest>/<name>.
//
// Installing a dependency replaces its whole target directory, which may
// hold the targets of dependencies nested below its name. Dependencies are
// therefore installed in name order, so a parent path comes before the
// paths below it, and anything below a reinstalled target is reinstalled
// too.
func (a *App) Install(ctx context.Context, opts InstallOptions) error {
	manifest, err := a.configLoader.Load(opts.Dir)
	if err != nil {
		return zerr.Wrap(err, "failed to load manifest")
	}

	deps, err := a.resolve(ctx, manifest, phaseOrDefault(opts.Phase))
	if err != nil {
		return err
	}

	dest := opts.Dest
	if !filepath.IsAbs(dest) {
		dest = filepath.Join(manifest.Dir, dest)
	}

	slices.SortFunc(deps, func(x, y domain.Dependency) int {
		return cmp.Compare(x.Name(), y.Name())
	})

	var replaced []string
	for _, dep := range deps {
		force := slices.ContainsFunc(replaced, func(parent string) bool {
			return strings.HasPrefix(dep.Name(), parent+"/")
		})

		installed, err := a.install(ctx, dep, filepath.Join(dest, filepath.FromSlash(dep.Name())), force)
		if err != nil {
			return err
		}
		if installed {
			replaced = append(replaced, dep.Name())
		}
	}
	return nil
}

// install places dep into target and reports whether target was replaced.
// Unless force is set, a local-directory dependency whose target already
// matches its source is left alone.
func (a *App) install(ctx context.Context, dep domain.Dependency, target string, force bool) (installed bool, err error) {
	ctx, vertex := a.telemetry.Record(ctx, "install "+dep.Name())
	defer func() {
		vertex.Complete(err)
	}()

	kind, err := dep.Installer()
	if err != nil {
		return false, zerr.With(err, "dependency", dep.Name())
	}

	if !force && kind == domain.InstallerLocalDirectory && a.upToDate(dep, target) {
		vertex.Cached()
		return false, nil
	}

	installer, err := a.installers.Lookup(kind)
	if err != nil {
		return false, err
	}
	if err := installer.Install(ctx, dep, target); err != nil {
		return false, err
	}

	a.logger.Info(fmt.Sprintf("installed %s %s", dep.Name(), dep.FormatVersion()))
	return true, nil
}

// upToDate reports whether target already holds the same tree as the
// source of dep.
func (a *App) upToDate(dep domain.Dependency, target string) bool {
	if _, err := os.Stat(target); err != nil {
		return false
	}
	src, err := domain.SourceDir(dep)
	if err != nil {
		return false
	}

	want, err := a.hasher.HashTree(src)
	if err != nil {
		return false
	}
	got, err := a.hasher.HashTree(target)
	if err != nil {
		return false
	}
	return want == got
}

// resolve resolves the hosts declared for phase and flattens the result.
// Conflicting versions of a package are reported as warnings.
func (a *App) resolve(ctx context.Context, manifest *domain.Manifest, phase domain.BuildPhase) ([]domain.Dependency, error) {
	hosts, err := a.resolver.Resolve(ctx, manifest.Dependencies[phase], phase)
	if err != nil {
		return nil, err
	}

	flat, conflicts := domain.NewDependencySet(hosts...).Flatten()
	for _, c := range conflicts {
		a.logger.Warn(c.String())
	}
	return flat, nil
}

func phaseOrDefault(phase domain.BuildPhase) domain.BuildPhase {
	if phase == "" {
		return domain.PhaseBuild
	}
	return phase
}
