package fakes

import (
	"sync"

	"github.com/systmms/prospectus/internal/secretstore"
)

// FakeKeyringClient is a test double for secretstore.KeyringClient
type FakeKeyringClient struct {
	mu sync.Mutex

	// Secrets is a map of service -> account -> value
	Secrets map[string]map[string]string

	// GetErr is returned by Get() if set (overrides Secrets lookup)
	GetErr error

	// SetErr is returned by Set() if set
	SetErr error
}

// NewFakeKeyringClient creates an empty fake keyring
func NewFakeKeyringClient() *FakeKeyringClient {
	return &FakeKeyringClient{
		Secrets: make(map[string]map[string]string),
	}
}

// SetSecret adds a secret to the fake keyring
func (f *FakeKeyringClient) SetSecret(service, account, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.put(service, account, value)
}

func (f *FakeKeyringClient) put(service, account, value string) {
	if f.Secrets == nil {
		f.Secrets = make(map[string]map[string]string)
	}
	if f.Secrets[service] == nil {
		f.Secrets[service] = make(map[string]string)
	}
	f.Secrets[service][account] = value
}

// Get retrieves a secret from the fake keyring
func (f *FakeKeyringClient) Get(service, account string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.GetErr != nil {
		return "", f.GetErr
	}
	if accounts, ok := f.Secrets[service]; ok {
		if value, ok := accounts[account]; ok {
			return value, nil
		}
	}
	return "", secretstore.ErrNotFound
}

// Set stores a secret in the fake keyring
func (f *FakeKeyringClient) Set(service, account, secret string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.SetErr != nil {
		return f.SetErr
	}
	f.put(service, account, secret)
	return nil
}

// FakePrompter answers prompts with a fixed reply
type FakePrompter struct {
	Reply string
	Err   error

	// Prompts records every message shown
	Prompts []string
}

// Prompt records message and returns the configured reply
func (p *FakePrompter) Prompt(message string) (string, error) {
	p.Prompts = append(p.Prompts, message)
	return p.Reply, p.Err
}

// Ensure fakes implement their interfaces
var (
	_ secretstore.KeyringClient = (*FakeKeyringClient)(nil)
	_ secretstore.Prompter      = (*FakePrompter)(nil)
)
