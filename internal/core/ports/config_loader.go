// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/vend/internal/core/domain"

// ConfigLoader defines the interface for loading the project manifest.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the manifest from the given project directory and returns the
	// declared host dependencies per build phase.
	Load(dir string) (*domain.Manifest, error)
}
