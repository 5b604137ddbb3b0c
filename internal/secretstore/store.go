package secretstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/systmms/prospectus/internal/logging"
)

// ErrNotFound is returned when the keyring holds no secret for a request and
// none could be obtained by prompting.
var ErrNotFound = errors.New("secret not found in keyring")

// Request identifies a secret.
type Request struct {
	Server  string
	Account string
	// Prompt is shown to the user if the secret has to be entered by hand.
	Prompt string
}

// Store returns the secret for a request.
type Store interface {
	Get(ctx context.Context, req Request) (string, error)
}

// KeyringClient abstracts OS keyring operations for testing
type KeyringClient interface {
	// Get retrieves a secret; it returns ErrNotFound for a missing item
	Get(service, account string) (string, error)

	// Set stores a secret
	Set(service, account, secret string) error
}

// Prompter asks the user for a secret.
type Prompter interface {
	Prompt(message string) (string, error)
}

// KeyringError wraps OS keyring errors with context
type KeyringError struct {
	Op      string // Operation: "get", "set", "prompt"
	Service string
	Account string
	Err     error
}

func (e *KeyringError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("keyring %s error for %s/%s: %v", e.Op, e.Service, e.Account, e.Err)
	}
	return fmt.Sprintf("keyring %s error for %s/%s", e.Op, e.Service, e.Account)
}

func (e *KeyringError) Unwrap() error {
	return e.Err
}

// KeyringStore implements Store on top of a KeyringClient.
type KeyringStore struct {
	client   KeyringClient
	prompter Prompter
	logger   *logging.Logger
}

// Option configures a KeyringStore.
type Option func(*KeyringStore)

// WithPrompter enables asking the user for missing secrets.
func WithPrompter(p Prompter) Option {
	return func(s *KeyringStore) { s.prompter = p }
}

// WithLogger sets the logger used for keyring diagnostics.
func WithLogger(l *logging.Logger) Option {
	return func(s *KeyringStore) { s.logger = l }
}

// NewKeyringStore returns a store backed by the platform keyring.
func NewKeyringStore(opts ...Option) *KeyringStore {
	return NewKeyringStoreWithClient(newPlatformKeyringClient(), opts...)
}

// NewKeyringStoreWithClient returns a store backed by client.
// This is primarily for testing, allowing the keyring to be faked.
func NewKeyringStoreWithClient(client KeyringClient, opts ...Option) *KeyringStore {
	s := &KeyringStore{
		client: client,
		logger: logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the secret stored for req.Server and req.Account. A missing secret
// is prompted for when a Prompter is configured, then saved to the keyring.
func (s *KeyringStore) Get(ctx context.Context, req Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	secret, err := s.client.Get(req.Server, req.Account)
	if err == nil {
		s.logger.Debug("found keyring secret for %s/%s", req.Server, req.Account)
		return secret, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return "", &KeyringError{Op: "get", Service: req.Server, Account: req.Account, Err: err}
	}

	if s.prompter == nil {
		return "", &KeyringError{Op: "get", Service: req.Server, Account: req.Account, Err: ErrNotFound}
	}

	secret, err = s.prompter.Prompt(req.Prompt)
	if err != nil {
		return "", &KeyringError{Op: "prompt", Service: req.Server, Account: req.Account, Err: err}
	}
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return "", &KeyringError{Op: "prompt", Service: req.Server, Account: req.Account, Err: ErrNotFound}
	}

	if err := s.client.Set(req.Server, req.Account, secret); err != nil {
		s.logger.Warn("could not save secret for %s/%s to keyring: %v", req.Server, req.Account, err)
	}
	return secret, nil
}

var _ Store = (*KeyringStore)(nil)
