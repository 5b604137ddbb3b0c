package module

import (
	"context"
	"errors"
	"testing"
)

// ContractTest defines a standard test suite that all modules must pass
type ContractTest struct {
	// CreateModule creates a new, unconfigured instance of the module to test
	CreateModule func(t *testing.T) Module

	// Configure applies a configuration that makes Load succeed
	Configure func(t *testing.T, m Module)

	// Expected is the value a configured Load must write
	Expected string
}

// RunContractTests runs the standard module contract test suite
func RunContractTests(t *testing.T, contract ContractTest) {
	t.Run("Contract", func(t *testing.T) {
		t.Run("Type", func(t *testing.T) {
			testModuleType(t, contract)
		})

		t.Run("UnknownKey", func(t *testing.T) {
			testModuleUnknownKey(t, contract)
		})

		t.Run("LoadUnconfigured", func(t *testing.T) {
			testModuleLoadUnconfigured(t, contract)
		})

		if contract.Configure != nil {
			t.Run("Load", func(t *testing.T) {
				testModuleLoad(t, contract)
			})
		}
	})
}

func testModuleType(t *testing.T, contract ContractTest) {
	m := contract.CreateModule(t)

	name := m.Type()
	if name == "" {
		t.Error("Module.Type() returned empty string")
	}
	if name2 := m.Type(); name != name2 {
		t.Errorf("Module.Type() not consistent: %q != %q", name, name2)
	}
}

func testModuleUnknownKey(t *testing.T, contract ContractTest) {
	m := contract.CreateModule(t)

	err := m.Configure("definitely-not-a-key", "value")
	if !errors.Is(err, ErrUnknownKey) {
		t.Errorf("Configure(unknown) error = %v, want ErrUnknownKey", err)
	}
}

func testModuleLoadUnconfigured(t *testing.T, contract ContractTest) {
	m := contract.CreateModule(t)

	var state State
	err := m.Load(context.Background(), &state)
	if KindOf(err) != KindMissingConfiguration {
		t.Errorf("Load() on unconfigured module: kind = %q (err %v), want %q", KindOf(err), err, KindMissingConfiguration)
	}
	if _, ok := state.Value(); ok {
		t.Error("failed Load() wrote to state")
	}
}

func testModuleLoad(t *testing.T, contract ContractTest) {
	m := contract.CreateModule(t)
	contract.Configure(t, m)

	var state State
	if err := m.Load(context.Background(), &state); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	got, ok := state.Value()
	if !ok {
		t.Fatal("Load() succeeded without writing state")
	}
	if got != contract.Expected {
		t.Errorf("Load() state = %q, want %q", got, contract.Expected)
	}
}
