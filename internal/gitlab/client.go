// Package gitlab builds authenticated GitLab API clients on demand.
package gitlab

import (
	"context"
	"fmt"
	"strings"
	"sync"

	gogitlab "github.com/xanzy/go-gitlab"
)

// APIVersionPath is appended to an endpoint to form the API base URL.
const APIVersionPath = "/api/v4"

// TokenSource supplies the API token for an endpoint.
type TokenSource interface {
	Endpoint() string
	Token(ctx context.Context) (string, error)
}

// ClientFactory lazily constructs one client per factory. Nothing is resolved
// or dialed until Client is first called.
type ClientFactory struct {
	tokens TokenSource
	opts   []gogitlab.ClientOptionFunc

	mu     sync.Mutex
	client *gogitlab.Client
}

// NewClientFactory returns a factory that authenticates with tokens. Extra
// client options are applied after the base URL.
func NewClientFactory(tokens TokenSource, opts ...gogitlab.ClientOptionFunc) *ClientFactory {
	return &ClientFactory{tokens: tokens, opts: opts}
}

// BaseURL returns the API base URL for endpoint.
func BaseURL(endpoint string) string {
	return strings.TrimRight(endpoint, "/") + APIVersionPath
}

// Client returns the memoized client, building it on first use. Construction
// failures are returned and not cached. The client is not probed; a bad token
// or unreachable host only shows up on the first request.
func (f *ClientFactory) Client(ctx context.Context) (*gogitlab.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.client != nil {
		return f.client, nil
	}

	token, err := f.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := f.tokens.Endpoint()
	opts := append([]gogitlab.ClientOptionFunc{
		gogitlab.WithBaseURL(BaseURL(endpoint)),
		gogitlab.WithoutRetries(),
	}, f.opts...)

	client, err := gogitlab.NewClient(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitLab client for %s: %w", endpoint, err)
	}
	f.client = client
	return client, nil
}
