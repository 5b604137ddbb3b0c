// Package module defines the contract shared by every prospectus state module.
//
// A state module knows how to fetch exactly one scalar piece of state from an
// external source (a GitLab project, a local file, a literal value) and write it
// into a State container owned by the caller.
//
// # Module Lifecycle
//
// Modules move through three phases:
//
//  1. Unconfigured: the module was created by a registry factory
//  2. Configured: Configure has been called for each key the caller knows about
//  3. Loaded or failed: Load has run to completion
//
// Configure is a plain assignment. Values are only checked when Load runs, so a
// module that is configured but never loaded costs nothing.
//
// Example:
//
//	m := modules.NewGrepModule()
//	_ = m.Configure("file", "VERSION")
//	_ = m.Configure("pattern", `^v\d+`)
//
//	var state module.State
//	if err := m.Load(ctx, &state); err != nil {
//	    return err
//	}
//	value, _ := state.Value()
//
// # Error Handling
//
// Load failures are typed so callers can tell configuration bugs apart from an
// expected absence of state:
//   - MissingConfigurationError when a required key was never configured
//   - InvalidConfigurationError when a configured value cannot be used
//   - NoMatchError when the source was read but held no matching state
//   - MissingCredentialError when no token could be found for a remote source
//
// Any other error comes from the remote source and is passed through untouched.
// KindOf classifies an error into one of these kinds.
//
// # Threading and Concurrency
//
// State is safe for concurrent use. Module implementations in this repository
// guard their caches with a mutex, but a single module instance is meant to be
// driven by one caller at a time.
package module
