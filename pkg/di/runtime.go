// Package di wires helm-cleaner's collaborators with samber/do.
//
// A [Runtime] holds the module list; every [Runtime.Invoke] builds a fresh injector,
// so each command run owns exactly one cluster client.
package di

import (
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

// Injector is the dependency container handed to handlers.
type Injector = do.Injector

// Module registers providers on an injector.
type Module func(Injector) error

// ModuleFactory builds a per-command module from the invoked command, e.g. to provide
// configuration read from its flags.
type ModuleFactory func(cmd *cobra.Command) (Module, error)

// Runtime holds the modules applied to every injector it creates.
type Runtime struct {
	modules []Module
}

// New creates a runtime from the given modules. Nil modules are skipped.
func New(modules ...Module) *Runtime {
	return &Runtime{modules: modules}
}

// Invoke creates an injector, applies the runtime modules followed by extra, runs the
// handler and shuts the injector down.
func (r *Runtime) Invoke(handler func(Injector) error, extra ...Module) error {
	injector := do.New()
	defer func() { _ = injector.Shutdown() }()

	for _, module := range append(append([]Module{}, r.modules...), extra...) {
		if module == nil {
			continue
		}

		err := module(injector)
		if err != nil {
			return err
		}
	}

	return handler(injector)
}

// RunEWithRuntime adapts a handler to cobra's RunE. Factories run before the injector
// is created, in order, and their modules are applied after the runtime's own.
func RunEWithRuntime(
	runtime *Runtime,
	handler func(cmd *cobra.Command, injector Injector) error,
	factories ...ModuleFactory,
) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		extra := make([]Module, 0, len(factories))

		for _, factory := range factories {
			module, err := factory(cmd)
			if err != nil {
				return err
			}

			extra = append(extra, module)
		}

		return runtime.Invoke(func(injector Injector) error {
			return handler(cmd, injector)
		}, extra...)
	}
}
