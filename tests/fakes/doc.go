// Package fakes provides test doubles for prospectus collaborator interfaces.
//
// This package contains fake implementations of external client interfaces
// that allow unit testing of modules without a real keyring or terminal.
// Fakes are manually implemented (not generated) to provide precise control
// over test behavior.
//
// Usage:
//
//	store := fakes.NewFakeSecretStore().WithSecret("https://gitlab.com", "prospectus", "glpat-123")
//	resolver := credentials.NewResolver("https://gitlab.com", credentials.WithSecretStore(store))
//	// Test resolver methods...
//	assert.Equal(t, 1, store.Calls())
package fakes
