package modules

import (
	"context"

	"github.com/systmms/prospectus/internal/extract"
	"github.com/systmms/prospectus/pkg/module"
)

// GrepType is the registry name of the grep module.
const GrepType = "grep"

// GrepModule reads state from the first line of a local file that matches a
// pattern.
//
// Configuration keys:
//   - file: path of the file to scan (required)
//   - pattern: regular expression a line must contain (default ".*")
type GrepModule struct {
	file    string
	pattern string

	extractor *extract.Extractor
}

// NewGrepModule creates an unconfigured grep module
func NewGrepModule() *GrepModule {
	return &GrepModule{extractor: extract.New(GrepType)}
}

// Type returns the module type
func (m *GrepModule) Type() string {
	return GrepType
}

// SetFile sets the file to scan
func (m *GrepModule) SetFile(path string) {
	m.file = path
}

// SetPattern sets the line pattern
func (m *GrepModule) SetPattern(pattern string) {
	m.pattern = pattern
}

// Configure assigns a configuration key
func (m *GrepModule) Configure(key, value string) error {
	switch key {
	case "file":
		m.SetFile(value)
	case "pattern":
		m.SetPattern(value)
	default:
		return unknownKey(GrepType, key, value)
	}
	return nil
}

// Load writes the first matching line of the configured file into state
func (m *GrepModule) Load(ctx context.Context, state *module.State) error {
	if m.file == "" {
		return module.MissingConfigurationError{Module: GrepType, Key: "file"}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	pattern := m.pattern
	if pattern == "" {
		pattern = extract.MatchAll
	}

	line, err := m.extractor.Extract(m.file, pattern)
	if err != nil {
		return err
	}
	state.Set(line)
	return nil
}

func unknownKey(moduleType, key, value string) error {
	return module.InvalidConfigurationError{
		Module: moduleType,
		Key:    key,
		Value:  value,
		Err:    module.ErrUnknownKey,
	}
}

var _ module.Module = (*GrepModule)(nil)
