package secretstore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/systmms/prospectus/internal/secretstore"
	"github.com/systmms/prospectus/tests/fakes"
)

var gitlabRequest = secretstore.Request{
	Server:  "https://gitlab.com",
	Account: "prospectus",
	Prompt:  "GitLab API token (https://gitlab.com/profile/account)",
}

func TestKeyringStoreGet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		setupFake func(*fakes.FakeKeyringClient)
		prompter  *fakes.FakePrompter
		want      string
		wantErr   error
		wantSaved string
	}{
		{
			name: "stored_secret",
			setupFake: func(f *fakes.FakeKeyringClient) {
				f.SetSecret("https://gitlab.com", "prospectus", "glpat-stored")
			},
			want: "glpat-stored",
		},
		{
			name:    "missing_without_prompter",
			wantErr: secretstore.ErrNotFound,
		},
		{
			name:      "missing_prompted_and_saved",
			prompter:  &fakes.FakePrompter{Reply: "  glpat-typed\n"},
			want:      "glpat-typed",
			wantSaved: "glpat-typed",
		},
		{
			name:     "empty_prompt_answer",
			prompter: &fakes.FakePrompter{Reply: "   "},
			wantErr:  secretstore.ErrNotFound,
		},
		{
			name:     "prompt_failure",
			prompter: &fakes.FakePrompter{Err: secretstore.ErrNotTerminal},
			wantErr:  secretstore.ErrNotTerminal,
		},
		{
			name: "keyring_failure",
			setupFake: func(f *fakes.FakeKeyringClient) {
				f.GetErr = errors.New("dbus: connection refused")
			},
			prompter: &fakes.FakePrompter{Reply: "never-used"},
			wantErr:  errors.New("dbus: connection refused"),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := fakes.NewFakeKeyringClient()
			if tt.setupFake != nil {
				tt.setupFake(client)
			}
			var opts []secretstore.Option
			if tt.prompter != nil {
				opts = append(opts, secretstore.WithPrompter(tt.prompter))
			}
			store := secretstore.NewKeyringStoreWithClient(client, opts...)

			got, err := store.Get(context.Background(), gitlabRequest)
			if tt.wantErr != nil {
				require.Error(t, err)
				var kerr *secretstore.KeyringError
				require.True(t, errors.As(err, &kerr))
				assert.Equal(t, "https://gitlab.com", kerr.Service)
				assert.Equal(t, "prospectus", kerr.Account)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			if tt.wantSaved != "" {
				saved, err := client.Get("https://gitlab.com", "prospectus")
				require.NoError(t, err)
				assert.Equal(t, tt.wantSaved, saved)
				assert.Equal(t, []string{gitlabRequest.Prompt}, tt.prompter.Prompts)
			}
		})
	}
}

func TestKeyringStoreSaveFailureStillReturnsSecret(t *testing.T) {
	t.Parallel()

	client := fakes.NewFakeKeyringClient()
	client.SetErr = errors.New("keyring is read-only")
	store := secretstore.NewKeyringStoreWithClient(client, secretstore.WithPrompter(&fakes.FakePrompter{Reply: "glpat-typed"}))

	got, err := store.Get(context.Background(), gitlabRequest)
	require.NoError(t, err)
	assert.Equal(t, "glpat-typed", got)
}

func TestKeyringStoreCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := secretstore.NewKeyringStoreWithClient(fakes.NewFakeKeyringClient())
	_, err := store.Get(ctx, gitlabRequest)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestKeyringErrorFormatting(t *testing.T) {
	t.Parallel()

	err := &secretstore.KeyringError{Op: "get", Service: "https://gitlab.com", Account: "prospectus", Err: secretstore.ErrNotFound}
	assert.Equal(t, "keyring get error for https://gitlab.com/prospectus: secret not found in keyring", err.Error())
	assert.ErrorIs(t, err, secretstore.ErrNotFound)

	bare := &secretstore.KeyringError{Op: "set", Service: "s", Account: "a"}
	assert.Equal(t, "keyring set error for s/a", bare.Error())
}
