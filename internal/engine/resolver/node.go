package resolver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/vend/internal/adapters/fs"                 //nolint:depguard // Wired in engine wiring
	"go.trai.ch/vend/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/vend/internal/core/ports"
)

// NodeID is the unique identifier for the resolver Graft node.
const NodeID graft.ID = "engine.resolver"

func init() {
	graft.Register(graft.Node[*Resolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.ScannerNodeID,
			progrock.NodeID,
		},
		Run: func(ctx context.Context) (*Resolver, error) {
			scanner, err := graft.Dep[ports.VendorScanner](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			return New(scanner, telemetry), nil
		},
	})
}
