package modules

import (
	"context"
	"fmt"
	"strings"
	"sync"

	gogitlab "github.com/xanzy/go-gitlab"

	"github.com/systmms/prospectus/internal/credentials"
	"github.com/systmms/prospectus/internal/gitlab"
	"github.com/systmms/prospectus/pkg/module"
)

// GitLabTagType is the registry name of the gitlab_tag module.
const GitLabTagType = "gitlab_tag"

// NoTagsError is returned when a GitLab project has no tags.
type NoTagsError struct {
	Endpoint string
	Repo     string
}

func (e NoTagsError) Error() string {
	return fmt.Sprintf("no tags found for %s on %s", e.Repo, e.Endpoint)
}

// Kind reports NoTagsError as an expected absence of state.
func (e NoTagsError) Kind() module.ErrorKind { return module.KindNoMatch }

// GitLabTagModule reads the most recently updated tag of a GitLab project.
//
// Configuration keys:
//   - endpoint: GitLab base URL (default https://gitlab.com)
//   - repo: project path, e.g. "group/project" (required)
//
// The endpoint is fixed the first time Load needs a client. Changing it later
// has no effect on the cached token or client.
type GitLabTagModule struct {
	endpoint string
	repo     string
	opts     Options

	mu       sync.Mutex
	bound    string
	resolver *credentials.Resolver
	factory  *gitlab.ClientFactory
}

// NewGitLabTagModule creates an unconfigured gitlab_tag module
func NewGitLabTagModule(opts Options) *GitLabTagModule {
	return &GitLabTagModule{opts: opts}
}

// Type returns the module type
func (m *GitLabTagModule) Type() string {
	return GitLabTagType
}

// SetEndpoint sets the GitLab base URL
func (m *GitLabTagModule) SetEndpoint(endpoint string) {
	m.endpoint = endpoint
}

// SetRepo sets the project path
func (m *GitLabTagModule) SetRepo(repo string) {
	m.repo = repo
}

// Endpoint returns the configured endpoint or the default.
func (m *GitLabTagModule) Endpoint() string {
	if m.endpoint == "" {
		return credentials.DefaultEndpoint
	}
	return strings.TrimRight(m.endpoint, "/")
}

// Configure assigns a configuration key
func (m *GitLabTagModule) Configure(key, value string) error {
	switch key {
	case "endpoint":
		m.SetEndpoint(value)
	case "repo":
		m.SetRepo(value)
	default:
		return unknownKey(GitLabTagType, key, value)
	}
	return nil
}

// clientFactory builds the resolver and client factory on first use.
func (m *GitLabTagModule) clientFactory() *gitlab.ClientFactory {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.factory != nil {
		return m.factory
	}

	resolverOpts := []credentials.Option{
		credentials.WithLogger(m.opts.logger().Named("credentials")),
		credentials.WithMetrics(m.opts.Metrics),
	}
	if m.opts.SecretStore != nil {
		resolverOpts = append(resolverOpts, credentials.WithSecretStore(m.opts.SecretStore))
	}
	if m.opts.TokenFile != "" {
		resolverOpts = append(resolverOpts, credentials.WithTokenFile(m.opts.TokenFile))
	}

	m.bound = m.Endpoint()
	m.resolver = credentials.NewResolver(m.bound, resolverOpts...)
	m.factory = gitlab.NewClientFactory(m.resolver)
	return m.factory
}

// Close destroys the cached API token. The module should not be loaded again.
func (m *GitLabTagModule) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.resolver == nil {
		return nil
	}
	return m.resolver.Close()
}

// Load writes the name of the project's most recently updated tag into state.
// Credential and API errors are returned as is.
func (m *GitLabTagModule) Load(ctx context.Context, state *module.State) error {
	if m.repo == "" {
		return module.MissingConfigurationError{Module: GitLabTagType, Key: "repo"}
	}

	factory := m.clientFactory()
	client, err := factory.Client(ctx)
	if err != nil {
		return err
	}

	tags, _, err := client.Tags.ListTags(m.repo, &gogitlab.ListTagsOptions{
		ListOptions: gogitlab.ListOptions{PerPage: 1},
		OrderBy:     gogitlab.String("updated"),
		Sort:        gogitlab.String("desc"),
	}, gogitlab.WithContext(ctx))
	if err != nil {
		return err
	}
	if len(tags) == 0 {
		return NoTagsError{Endpoint: m.bound, Repo: m.repo}
	}

	state.Set(tags[0].Name)
	return nil
}

var _ module.Module = (*GitLabTagModule)(nil)
