package di_test

import (
	"errors"
	"testing"

	"github.com/devantler-tech/helm-cleaner/pkg/di"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errHandler = errors.New("handler error")
	errModule  = errors.New("module error")
	errFactory = errors.New("factory error")
)

func TestRuntime_Invoke_HandlerError(t *testing.T) {
	t.Parallel()

	err := di.New().Invoke(func(di.Injector) error {
		return errHandler
	})

	require.Error(t, err)
	assert.Equal(t, errHandler, err)
}

func TestRuntime_Invoke_ModuleErrorSkipsHandler(t *testing.T) {
	t.Parallel()

	runtime := di.New(func(di.Injector) error { return errModule })

	err := runtime.Invoke(func(di.Injector) error {
		t.Fatal("handler should not be called when a module fails")

		return nil
	})

	require.Error(t, err)
	assert.Equal(t, errModule, err)
}

func TestRuntime_Invoke_ModuleOrder(t *testing.T) {
	t.Parallel()

	var order []string

	record := func(name string) di.Module {
		return func(di.Injector) error {
			order = append(order, name)

			return nil
		}
	}

	runtime := di.New(record("base"), nil)

	err := runtime.Invoke(func(di.Injector) error {
		order = append(order, "handler")

		return nil
	}, record("extra-1"), nil, record("extra-2"))

	require.NoError(t, err)
	assert.Equal(t, []string{"base", "extra-1", "extra-2", "handler"}, order)
}

func TestRuntime_Invoke_FreshInjectorPerCall(t *testing.T) {
	t.Parallel()

	type counter struct{ n int }

	builds := 0
	runtime := di.New(func(i di.Injector) error {
		do.Provide(i, func(di.Injector) (*counter, error) {
			builds++

			return &counter{}, nil
		})

		return nil
	})

	for range 2 {
		err := runtime.Invoke(func(i di.Injector) error {
			first, err := do.Invoke[*counter](i)
			if err != nil {
				return err
			}

			second, err := do.Invoke[*counter](i)
			if err != nil {
				return err
			}

			first.n++
			assert.Same(t, first, second)
			assert.Equal(t, 1, second.n)

			return nil
		})
		require.NoError(t, err)
	}

	assert.Equal(t, 2, builds, "each invocation should build its own singleton")
}

func TestRunEWithRuntime_PassesCommand(t *testing.T) {
	t.Parallel()

	var received *cobra.Command

	runE := di.RunEWithRuntime(di.New(), func(cmd *cobra.Command, _ di.Injector) error {
		received = cmd

		return nil
	})

	cmd := &cobra.Command{Use: "test"}

	require.NoError(t, runE(cmd, nil))
	assert.Same(t, cmd, received)
}

func TestRunEWithRuntime_FactoryModules(t *testing.T) {
	t.Parallel()

	type flagValue struct{ value string }

	factory := func(cmd *cobra.Command) (di.Module, error) {
		value, err := cmd.Flags().GetString("name")
		if err != nil {
			return nil, err
		}

		return func(i di.Injector) error {
			do.ProvideValue(i, &flagValue{value: value})

			return nil
		}, nil
	}

	var resolved *flagValue

	runE := di.RunEWithRuntime(di.New(), func(_ *cobra.Command, injector di.Injector) error {
		var err error

		resolved, err = do.Invoke[*flagValue](injector)

		return err
	}, factory)

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("name", "", "")
	require.NoError(t, cmd.Flags().Set("name", "demo"))

	require.NoError(t, runE(cmd, nil))
	require.NotNil(t, resolved)
	assert.Equal(t, "demo", resolved.value)
}

func TestRunEWithRuntime_FactoryError(t *testing.T) {
	t.Parallel()

	runE := di.RunEWithRuntime(di.New(), func(*cobra.Command, di.Injector) error {
		t.Fatal("handler should not be called when a factory fails")

		return nil
	}, func(*cobra.Command) (di.Module, error) {
		return nil, errFactory
	})

	err := runE(&cobra.Command{Use: "test"}, nil)

	require.ErrorIs(t, err, errFactory)
}
