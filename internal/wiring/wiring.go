// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/vend/internal/adapters/config"
	_ "go.trai.ch/vend/internal/adapters/fs"
	_ "go.trai.ch/vend/internal/adapters/installer"
	_ "go.trai.ch/vend/internal/adapters/lockfile"
	_ "go.trai.ch/vend/internal/adapters/logger"
	_ "go.trai.ch/vend/internal/adapters/shell"
	_ "go.trai.ch/vend/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/vend/internal/app"
	_ "go.trai.ch/vend/internal/engine/resolver"
)
