package module

import (
	"context"
	"io"
	"sync"
)

// Module is the contract implemented by every state source.
type Module interface {
	// Type returns the registry type name of the module, e.g. "grep".
	Type() string

	// Configure assigns a single configuration key. It performs no validation of
	// the value; unknown keys are rejected with InvalidConfigurationError.
	Configure(key, value string) error

	// Load fetches the state and writes it into state. On failure state is left
	// untouched.
	Load(ctx context.Context, state *State) error
}

// State holds the single value produced by a module load.
type State struct {
	mu    sync.Mutex
	value string
	set   bool
}

// Set stores value, replacing anything written by a previous load.
func (s *State) Set(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = value
	s.set = true
}

// Value returns the stored value and whether a load has written one.
func (s *State) Value() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.set
}

// Reset clears the container.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = ""
	s.set = false
}

// Load runs m against a fresh State and returns the value it wrote.
func Load(ctx context.Context, m Module) (string, error) {
	var state State
	if err := m.Load(ctx, &state); err != nil {
		return "", err
	}
	value, _ := state.Value()
	return value, nil
}

// Close releases whatever m holds between loads, such as a cached API token.
// Modules that hold nothing need not implement io.Closer.
func Close(m Module) error {
	if c, ok := m.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
