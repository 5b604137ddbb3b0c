package modules

import (
	"context"

	"github.com/systmms/prospectus/pkg/module"
)

// StaticType is the registry name of the static module.
const StaticType = "static"

// StaticModule provides a literal value as state.
// It doesn't fetch from anywhere, but allows testing expectations and wiring
type StaticModule struct {
	value string
	set   bool
}

// NewStaticModule creates an unconfigured static module
func NewStaticModule() *StaticModule {
	return &StaticModule{}
}

// Type returns the module type
func (m *StaticModule) Type() string {
	return StaticType
}

// Configure assigns a configuration key
func (m *StaticModule) Configure(key, value string) error {
	if key != "value" {
		return unknownKey(StaticType, key, value)
	}
	m.value = value
	m.set = true
	return nil
}

// Load writes the configured value into state
func (m *StaticModule) Load(ctx context.Context, state *module.State) error {
	if !m.set {
		return module.MissingConfigurationError{Module: StaticType, Key: "value"}
	}
	state.Set(m.value)
	return nil
}

var _ module.Module = (*StaticModule)(nil)
