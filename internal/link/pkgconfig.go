package link

import (
	"context"
	"fmt"

	"github.com/vk/buildplan/internal/model"
)

// PkgConfig resolves a system-module target to the external linker flags its
// library requires. Lookups are fallible; a failure is reported as a
// diagnostic and the module simply contributes no flags.
type PkgConfig interface {
	LibraryFlags(ctx context.Context, module *model.Target) ([]string, error)
}

// StaticPkgConfig answers lookups from the flags declared on the system
// module itself in the graph description, keeping plan computation free of
// system state.
type StaticPkgConfig struct{}

// LibraryFlags implements PkgConfig.
func (StaticPkgConfig) LibraryFlags(_ context.Context, module *model.Target) ([]string, error) {
	payload := module.SystemModule
	if payload == nil {
		return nil, fmt.Errorf("target %q is not a system module", module.Name)
	}
	if len(payload.LinkFlags) == 0 && payload.PkgConfigName != "" {
		return nil, fmt.Errorf("no link flags declared for package-config module %q", payload.PkgConfigName)
	}
	return payload.LinkFlags, nil
}
