package installer

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"go.trai.ch/vend/internal/adapters/fs"
	"go.trai.ch/vend/internal/core/domain"
	"go.trai.ch/vend/internal/core/ports"
	"go.trai.ch/zerr"
)

// vcsCommands describes how a version control tool clones a local
// repository and checks out a revision.
type vcsCommands struct {
	bin      string
	clone    func(src, dst string) []string
	checkout func(rev string) []string
}

var (
	gitCommands = vcsCommands{
		bin: "git",
		clone: func(src, dst string) []string {
			return []string{"clone", "--quiet", "--shared", "--no-checkout", src, dst}
		},
		checkout: func(rev string) []string {
			return []string{"checkout", "--quiet", "--detach", rev}
		},
	}
	hgCommands = vcsCommands{
		bin: "hg",
		clone: func(src, dst string) []string {
			return []string{"clone", "--quiet", "--noupdate", src, dst}
		},
		checkout: func(rev string) []string {
			return []string{"update", "--quiet", "--rev", rev}
		},
	}
)

// VCSInstaller installs dependencies from the local checkout of their host
// repository at the pinned revision. It never fetches from the network.
type VCSInstaller struct {
	cmds   vcsCommands
	runner ports.CommandRunner
	walker *fs.Walker
}

var _ ports.Installer = (*VCSInstaller)(nil)

// NewGitInstaller creates an installer for git hosted dependencies.
func NewGitInstaller(runner ports.CommandRunner, walker *fs.Walker) *VCSInstaller {
	return &VCSInstaller{cmds: gitCommands, runner: runner, walker: walker}
}

// NewMercurialInstaller creates an installer for mercurial hosted dependencies.
func NewMercurialInstaller(runner ports.CommandRunner, walker *fs.Walker) *VCSInstaller {
	return &VCSInstaller{cmds: hgCommands, runner: runner, walker: walker}
}

// Install clones the host repository of dep into a scratch directory, checks
// out the pinned revision and copies the subtree of dep into dest.
func (i *VCSInstaller) Install(ctx context.Context, dep domain.Dependency, dest string) error {
	host, rel, err := vcsHost(dep)
	if err != nil {
		return err
	}

	src := host.Source()
	rev := src.Commit
	if rev == "" {
		rev = src.Tag
	}

	scratch, err := os.MkdirTemp("", "vend-"+i.cmds.bin+"-*")
	if err != nil {
		return zerr.With(errors.Join(domain.ErrInstallFailed, err), "dependency", dep.Name())
	}
	defer os.RemoveAll(scratch) //nolint:errcheck // Best effort cleanup of scratch checkout

	repo := filepath.Join(scratch, "repo")
	if err := i.runner.Run(ctx, scratch, i.cmds.bin, i.cmds.clone(src.Checkout, repo)...); err != nil {
		return zerr.With(errors.Join(domain.ErrInstallFailed, err), "dependency", dep.Name())
	}
	if err := i.runner.Run(ctx, repo, i.cmds.bin, i.cmds.checkout(rev)...); err != nil {
		return zerr.With(zerr.With(errors.Join(domain.ErrInstallFailed, err), "dependency", dep.Name()), "revision", rev)
	}

	subtree := filepath.Join(repo, filepath.FromSlash(rel))
	if info, err := os.Stat(subtree); err != nil || !info.IsDir() {
		return zerr.With(zerr.With(domain.ErrInstallFailed, "dependency", dep.Name()), "path", rel)
	}
	return replaceDir(i.walker, dest, subtree, dep.Name())
}

// vcsHost returns the repository owning dep and the forward-slash path of
// dep inside it.
func vcsHost(dep domain.Dependency) (*domain.VCSDependency, string, error) {
	switch d := dep.(type) {
	case *domain.VCSDependency:
		return d, ".", nil
	case *domain.VendorDependency:
		if h, ok := d.HostDependency().(*domain.VCSDependency); ok {
			return h, d.RelativePathToHost(), nil
		}
	}
	return nil, "", zerr.With(zerr.With(domain.ErrUnsupportedInstaller, "dependency", dep.Name()), "reason", "no repository host")
}
