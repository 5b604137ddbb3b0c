// Package modules holds the built-in state modules and the registry that
// creates them by type name.
package modules

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/systmms/prospectus/internal/logging"
	"github.com/systmms/prospectus/internal/metrics"
	"github.com/systmms/prospectus/internal/secretstore"
	"github.com/systmms/prospectus/pkg/module"
)

// Options carries the collaborators shared by every module a registry creates.
type Options struct {
	Logger      *logging.Logger
	Metrics     *metrics.Recorder
	SecretStore secretstore.Store

	// TokenFile overrides the GitLab token file path.
	TokenFile string
}

func (o Options) logger() *logging.Logger {
	if o.Logger == nil {
		return logging.Nop()
	}
	return o.Logger
}

// Factory creates an unconfigured module.
type Factory func(opts Options) (module.Module, error)

// Registry manages module creation and registration
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates a new module registry with built-in modules
func NewRegistry() *Registry {
	registry := &Registry{
		factories: make(map[string]Factory),
	}

	// Register built-in modules
	registry.RegisterFactory(GrepType, NewGrepModuleFactory)
	registry.RegisterFactory(GitLabTagType, NewGitLabTagModuleFactory)
	registry.RegisterFactory(StaticType, NewStaticModuleFactory)

	return registry
}

// RegisterFactory registers a module factory for a given type
func (r *Registry) RegisterFactory(moduleType string, factory Factory) {
	r.factories[moduleType] = factory
}

// Create builds a module of moduleType. Loads of the returned module are
// logged and recorded in opts.Metrics.
func (r *Registry) Create(moduleType string, opts Options) (module.Module, error) {
	factory, exists := r.factories[moduleType]
	if !exists {
		return nil, fmt.Errorf("unknown module type: %s", moduleType)
	}

	m, err := factory(opts)
	if err != nil {
		return nil, err
	}
	return &instrumented{Module: m, logger: opts.logger().Named(moduleType), metrics: opts.Metrics}, nil
}

// SupportedTypes returns the registered module types in sorted order
func (r *Registry) SupportedTypes() []string {
	types := make([]string, 0, len(r.factories))
	for moduleType := range r.factories {
		types = append(types, moduleType)
	}
	sort.Strings(types)
	return types
}

// IsSupported checks if a module type is supported
func (r *Registry) IsSupported(moduleType string) bool {
	_, exists := r.factories[moduleType]
	return exists
}

// instrumented times each Load and records its outcome.
type instrumented struct {
	module.Module
	logger  *logging.Logger
	metrics *metrics.Recorder
}

// Close closes the wrapped module if it holds resources.
func (i *instrumented) Close() error {
	return module.Close(i.Module)
}

func (i *instrumented) Load(ctx context.Context, state *module.State) error {
	start := time.Now()
	err := i.Module.Load(ctx, state)
	elapsed := time.Since(start)

	status := metrics.StatusSuccess
	if err != nil {
		status = string(module.KindOf(err))
		i.logger.Debug("load failed after %s (%s): %v", elapsed, status, err)
	} else {
		i.logger.Debug("load completed in %s", elapsed)
	}
	i.metrics.RecordLoad(i.Type(), status, elapsed)
	return err
}

// Factory functions for built-in modules

// NewGrepModuleFactory creates a grep module
func NewGrepModuleFactory(opts Options) (module.Module, error) {
	return NewGrepModule(), nil
}

// NewGitLabTagModuleFactory creates a gitlab_tag module
func NewGitLabTagModuleFactory(opts Options) (module.Module, error) {
	return NewGitLabTagModule(opts), nil
}

// NewStaticModuleFactory creates a static module
func NewStaticModuleFactory(opts Options) (module.Module, error) {
	return NewStaticModule(), nil
}

// Description summarizes a module type for listings.
type Description struct {
	Summary string
	Keys    []string
	Details []string
}

var descriptions = map[string]Description{
	GrepType: {
		Summary: "First line of a local file matching a pattern",
		Keys:    []string{"file", "pattern"},
		Details: []string{
			"file is required",
			"pattern is a regular expression, default .*",
			"returns the matching line without its terminator",
		},
	},
	GitLabTagType: {
		Summary: "Most recently updated tag of a GitLab project",
		Keys:    []string{"endpoint", "repo"},
		Details: []string{
			"repo is required, as group/project",
			"endpoint defaults to https://gitlab.com",
			"token read from ~/.gitlab_api, then the OS keyring (account prospectus)",
		},
	},
	StaticType: {
		Summary: "Literal configured value",
		Keys:    []string{"value"},
		Details: []string{"value is required and returned unchanged"},
	},
}

// Describe returns the listing description of moduleType. Types registered
// without a description get a placeholder.
func (r *Registry) Describe(moduleType string) Description {
	if d, ok := descriptions[moduleType]; ok {
		return d
	}
	return Description{
		Summary: "No description available",
		Details: []string{"No details available"},
	}
}
