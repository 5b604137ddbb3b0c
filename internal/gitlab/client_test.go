package gitlab_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gogitlab "github.com/xanzy/go-gitlab"

	"github.com/systmms/prospectus/internal/gitlab"
	"github.com/systmms/prospectus/tests/testutil"
)

type countingTokens struct {
	endpoint string
	token    string
	err      error
	calls    int
}

func (c *countingTokens) Endpoint() string { return c.endpoint }

func (c *countingTokens) Token(ctx context.Context) (string, error) {
	c.calls++
	return c.token, c.err
}

func TestBaseURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://gitlab.com/api/v4", gitlab.BaseURL("https://gitlab.com"))
	assert.Equal(t, "https://gitlab.com/api/v4", gitlab.BaseURL("https://gitlab.com/"))
}

func TestClientFactoryMemoizes(t *testing.T) {
	t.Parallel()

	srv := testutil.NewGitLabServer(t, "glpat-test")
	tokens := &countingTokens{endpoint: srv.URL, token: "glpat-test"}
	f := gitlab.NewClientFactory(tokens)

	first, err := f.Client(context.Background())
	require.NoError(t, err)
	second, err := f.Client(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, tokens.calls)
	assert.Equal(t, srv.URL+"/api/v4/", first.BaseURL().String())
	assert.Equal(t, 0, srv.Requests(), "building a client must not contact the server")
}

func TestClientFactoryTokenError(t *testing.T) {
	t.Parallel()

	boom := errors.New("no token")
	tokens := &countingTokens{endpoint: "https://gitlab.com", err: boom}
	f := gitlab.NewClientFactory(tokens)

	_, err := f.Client(context.Background())
	assert.ErrorIs(t, err, boom)

	tokens.err = nil
	tokens.token = "glpat-later"
	client, err := f.Client(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, client)
	assert.Equal(t, 2, tokens.calls, "failed construction must not be cached")
}

func TestClientFactoryInvalidEndpoint(t *testing.T) {
	t.Parallel()

	f := gitlab.NewClientFactory(&countingTokens{endpoint: "://not a url", token: "t"})
	_, err := f.Client(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create GitLab client")
}

func TestClientAuthenticatesRequests(t *testing.T) {
	t.Parallel()

	srv := testutil.NewGitLabServer(t, "glpat-test").WithTags("group/project", "v2.0.0")
	f := gitlab.NewClientFactory(&countingTokens{endpoint: srv.URL, token: "glpat-test"})

	client, err := f.Client(context.Background())
	require.NoError(t, err)

	tags, _, err := client.Tags.ListTags("group/project", &gogitlab.ListTagsOptions{})
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "v2.0.0", tags[0].Name)
}
