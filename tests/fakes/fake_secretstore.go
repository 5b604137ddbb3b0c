package fakes

import (
	"context"
	"sync"

	"github.com/systmms/prospectus/internal/secretstore"
)

// FakeSecretStore is an in-memory secretstore.Store that records every request.
type FakeSecretStore struct {
	mu       sync.Mutex
	secrets  map[string]string // server + "\x00" + account -> secret
	failWith error
	requests []secretstore.Request
}

// NewFakeSecretStore creates an empty fake store
func NewFakeSecretStore() *FakeSecretStore {
	return &FakeSecretStore{secrets: make(map[string]string)}
}

// WithSecret adds a secret for server and account
func (f *FakeSecretStore) WithSecret(server, account, secret string) *FakeSecretStore {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.secrets[server+"\x00"+account] = secret
	return f
}

// WithError makes every Get fail with err
func (f *FakeSecretStore) WithError(err error) *FakeSecretStore {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failWith = err
	return f
}

// Get returns the stored secret or secretstore.ErrNotFound
func (f *FakeSecretStore) Get(ctx context.Context, req secretstore.Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, req)
	if f.failWith != nil {
		return "", f.failWith
	}
	secret, ok := f.secrets[req.Server+"\x00"+req.Account]
	if !ok {
		return "", secretstore.ErrNotFound
	}
	return secret, nil
}

// Calls returns how many times Get was called
func (f *FakeSecretStore) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

// Requests returns a copy of every request received
func (f *FakeSecretStore) Requests() []secretstore.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]secretstore.Request, len(f.requests))
	copy(out, f.requests)
	return out
}

var _ secretstore.Store = (*FakeSecretStore)(nil)
