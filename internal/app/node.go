package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/vend/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/vend/internal/adapters/fs"                 //nolint:depguard // Wired in app layer
	"go.trai.ch/vend/internal/adapters/installer"          //nolint:depguard // Wired in app layer
	"go.trai.ch/vend/internal/adapters/lockfile"           //nolint:depguard // Wired in app layer
	"go.trai.ch/vend/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/vend/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/vend/internal/core/ports"
	"go.trai.ch/vend/internal/engine/resolver"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			resolver.NodeID,
			lockfile.NodeID,
			installer.NodeID,
			fs.HasherNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	res, err := graft.Dep[*resolver.Resolver](ctx)
	if err != nil {
		return nil, err
	}

	lockfiles, err := graft.Dep[ports.LockfileStore](ctx)
	if err != nil {
		return nil, err
	}

	installers, err := graft.Dep[ports.InstallerRegistry](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.TreeHasher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, res, lockfiles, installers, hasher, log, telemetry), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(app, log, telemetry), nil
}
