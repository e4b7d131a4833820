package installer

import (
	"go.trai.ch/vend/internal/core/domain"
	"go.trai.ch/vend/internal/core/ports"
	"go.trai.ch/zerr"
)

// Registry implements ports.InstallerRegistry.
type Registry struct {
	installers map[domain.InstallerKind]ports.Installer
}

var _ ports.InstallerRegistry = (*Registry)(nil)

// NewRegistry creates a registry holding the given installers.
func NewRegistry(installers map[domain.InstallerKind]ports.Installer) *Registry {
	r := &Registry{installers: make(map[domain.InstallerKind]ports.Installer, len(installers))}
	for kind, inst := range installers {
		r.installers[kind] = inst
	}
	return r
}

// Lookup returns the installer registered for kind.
func (r *Registry) Lookup(kind domain.InstallerKind) (ports.Installer, error) {
	inst, ok := r.installers[kind]
	if !ok {
		return nil, zerr.With(domain.ErrUnsupportedInstaller, "kind", kind.String())
	}
	return inst, nil
}
