// Package credentials resolves the API token used to talk to a GitLab endpoint.
//
// A token is taken from the first source that yields one:
//
//  1. the token file (~/.gitlab_api by default), whitespace-trimmed
//  2. the secret store, addressed by endpoint and the "prospectus" account
//
// The resolved token is cached on the Resolver for its whole lifetime and is
// never refreshed.
package credentials

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/systmms/prospectus/internal/logging"
	"github.com/systmms/prospectus/internal/metrics"
	"github.com/systmms/prospectus/internal/secretstore"
	"github.com/systmms/prospectus/internal/secure"
	"github.com/systmms/prospectus/pkg/module"
)

const (
	// DefaultEndpoint is used when a module has no endpoint configured.
	DefaultEndpoint = "https://gitlab.com"

	// DefaultTokenFile holds a raw API token.
	DefaultTokenFile = "~/.gitlab_api"

	// Account is the secret store account tokens are filed under.
	Account = "prospectus"
)

// Origin records which source produced a token.
type Origin string

const (
	OriginFile        Origin = "file"
	OriginSecretStore Origin = "secret-store"
)

// Credential is a resolved API token.
type Credential struct {
	Token  string
	Origin Origin
}

// Resolver resolves and memoizes the token for one endpoint.
type Resolver struct {
	endpoint  string
	tokenFile string
	store     secretstore.Store
	logger    *logging.Logger
	metrics   *metrics.Recorder

	mu     sync.Mutex
	done   bool
	sealed *secure.Token
	origin Origin
	err    error
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithTokenFile overrides the token file path. A leading "~/" is expanded.
func WithTokenFile(path string) Option {
	return func(r *Resolver) { r.tokenFile = ExpandHome(path) }
}

// WithSecretStore sets the fallback secret store.
func WithSecretStore(store secretstore.Store) Option {
	return func(r *Resolver) { r.store = store }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(r *Resolver) { r.logger = l }
}

// WithMetrics records each resolution.
func WithMetrics(m *metrics.Recorder) Option {
	return func(r *Resolver) { r.metrics = m }
}

// NewResolver returns a Resolver for endpoint, or DefaultEndpoint if empty.
func NewResolver(endpoint string, opts ...Option) *Resolver {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	r := &Resolver{
		endpoint:  endpoint,
		tokenFile: ExpandHome(DefaultTokenFile),
		logger:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Endpoint returns the endpoint tokens are resolved for.
func (r *Resolver) Endpoint() string {
	return r.endpoint
}

// TokenFile returns the expanded token file path.
func (r *Resolver) TokenFile() string {
	return r.tokenFile
}

// Token returns the resolved token.
func (r *Resolver) Token(ctx context.Context) (string, error) {
	cred, err := r.Resolve(ctx)
	if err != nil {
		return "", err
	}
	return cred.Token, nil
}

// Resolve returns the cached outcome, resolving it on first use. A failure is
// cached too, so the token file and the secret store are consulted at most
// once. Context errors are not cached.
func (r *Resolver) Resolve(ctx context.Context) (Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.done {
		if r.err != nil {
			return Credential{}, r.err
		}
		token, err := r.sealed.Reveal()
		if err != nil {
			return Credential{}, err
		}
		return Credential{Token: token, Origin: r.origin}, nil
	}

	origin := OriginFile
	token, err := r.fromFile()
	if err == nil && token == "" {
		origin = OriginSecretStore
		token, err = r.fromStore(ctx)
	}
	if err != nil {
		if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			r.done = true
			r.err = err
		}
		return Credential{}, err
	}

	sealed, err := secure.Seal(token)
	if err != nil {
		return Credential{}, err
	}
	r.done = true
	r.sealed = sealed
	r.origin = origin

	r.logger.Debug("resolved API token %s for %s from %s", logging.Secret(token), r.endpoint, origin)
	r.metrics.RecordCredential(string(origin))

	return Credential{Token: token, Origin: origin}, nil
}

// Close destroys the cached token. Later calls to Resolve fail with
// secure.ErrDestroyed.
func (r *Resolver) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed != nil {
		r.sealed.Destroy()
	}
	return nil
}

// fromFile returns the trimmed token file content, or "" if the file does not
// exist. The same expanded path is used for the existence check and the read.
func (r *Resolver) fromFile() (string, error) {
	if _, err := os.Stat(r.tokenFile); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			r.logger.Debug("token file %s not found", r.tokenFile)
			return "", nil
		}
		return "", module.FileError{Op: "check token file", Path: r.tokenFile, Err: err}
	}

	data, err := os.ReadFile(r.tokenFile)
	if err != nil {
		return "", module.FileError{Op: "read token file", Path: r.tokenFile, Err: err}
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		r.logger.Warn("token file %s is empty, falling back to keyring", r.tokenFile)
	}
	return token, nil
}

func (r *Resolver) fromStore(ctx context.Context) (string, error) {
	missing := module.MissingCredentialError{Endpoint: r.endpoint, Account: Account}
	if r.store == nil {
		return "", missing
	}

	token, err := r.store.Get(ctx, secretstore.Request{
		Server:  r.endpoint,
		Account: Account,
		Prompt:  Prompt(r.endpoint),
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		missing.Err = err
		return "", missing
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", missing
	}
	return token, nil
}

// Prompt is the message shown when a token has to be typed in for endpoint.
func Prompt(endpoint string) string {
	return fmt.Sprintf("GitLab API token (%s/profile/account)", endpoint)
}

// ExpandHome expands a leading "~" to the current user's home directory. The
// path is returned unchanged if the home directory cannot be determined.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
