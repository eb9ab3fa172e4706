// Package plugin attaches andromeda to a project: it prints the banner,
// registers the "andromeda" extension and exposes the rename pipeline and
// property resolver through it.
package plugin

import (
	"fmt"
	"sync"

	"github.com/Norgate-AV/andromeda/internal/outputcraft"
	"github.com/Norgate-AV/andromeda/internal/project"
	"github.com/Norgate-AV/andromeda/internal/registry"
	"github.com/Norgate-AV/andromeda/internal/resolver"
	"github.com/Norgate-AV/andromeda/internal/version"
)

// ExtensionName is the name the extension is registered under
const ExtensionName = "andromeda"

// Extension is the per-project entry point
type Extension struct {
	project  *project.Project
	log      outputcraft.Logger
	recorder outputcraft.Recorder
	resolver *resolver.Resolver

	mu            sync.Mutex
	pipeline      *outputcraft.Pipeline
	registrations []outputcraft.Registration
}

// Apply registers the extension on p, or returns the one already there.
// recorder may be nil.
func Apply(p *project.Project, log outputcraft.Logger, recorder outputcraft.Recorder) (*Extension, error) {
	ext, err := registry.GetOrCreate(p.Extensions(), ExtensionName, func() *Extension {
		log.Lifecycle(log.Theme().Banner(version.Version, version.BuildTime))

		return &Extension{
			project:  p,
			log:      log,
			recorder: recorder,
			resolver: resolver.New(p.Store(), p.Root(), p),
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to apply plugin: %w", err)
	}

	return ext, nil
}

// OutputCraft configures renaming for the project's variants. It can be
// configured once per project.
func (e *Extension) OutputCraft(opts outputcraft.Options) ([]outputcraft.Registration, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.pipeline != nil {
		return nil, fmt.Errorf("outputCraft is already configured")
	}

	pipeline := outputcraft.New(e.project, opts, e.log, e.recorder)

	regs, err := pipeline.Register()
	if err != nil {
		return nil, err
	}

	e.pipeline = pipeline
	e.registrations = regs

	return regs, nil
}

// Registrations returns the rename tasks added by OutputCraft
func (e *Extension) Registrations() []outputcraft.Registration {
	e.mu.Lock()
	defer e.mu.Unlock()

	return append([]outputcraft.Registration(nil), e.registrations...)
}

// Properties returns the project's property resolver
func (e *Extension) Properties() *resolver.Resolver {
	return e.resolver
}
