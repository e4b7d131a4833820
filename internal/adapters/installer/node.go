package installer

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/vend/internal/adapters/fs"
	"go.trai.ch/vend/internal/adapters/shell"
	"go.trai.ch/vend/internal/core/domain"
	"go.trai.ch/vend/internal/core/ports"
)

// NodeID is the unique identifier for the installer registry Graft node.
const NodeID graft.ID = "adapter.installer_registry"

func init() {
	graft.Register(graft.Node[ports.InstallerRegistry]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.WalkerNodeID, shell.NodeID},
		Run: func(ctx context.Context) (ports.InstallerRegistry, error) {
			walker, err := graft.Dep[*fs.Walker](ctx)
			if err != nil {
				return nil, err
			}
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}
			return NewRegistry(map[domain.InstallerKind]ports.Installer{
				domain.InstallerLocalDirectory: NewLocalDirectoryInstaller(walker),
				domain.InstallerGit:            NewGitInstaller(runner, walker),
				domain.InstallerMercurial:      NewMercurialInstaller(runner, walker),
			}), nil
		},
	})
}
