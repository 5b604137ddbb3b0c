package module_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/systmms/prospectus/pkg/module"
)

type stubModule struct {
	value string
	err   error
}

func (s *stubModule) Type() string { return "stub" }

func (s *stubModule) Configure(key, value string) error { return nil }

func (s *stubModule) Load(ctx context.Context, state *module.State) error {
	if s.err != nil {
		return s.err
	}
	state.Set(s.value)
	return nil
}

func TestState(t *testing.T) {
	t.Parallel()

	var s module.State
	_, ok := s.Value()
	assert.False(t, ok, "new state must be empty")

	s.Set("v1")
	got, ok := s.Value()
	assert.True(t, ok)
	assert.Equal(t, "v1", got)

	s.Reset()
	_, ok = s.Value()
	assert.False(t, ok)
}

func TestLoadHelper(t *testing.T) {
	t.Parallel()

	got, err := module.Load(context.Background(), &stubModule{value: "ready"})
	require.NoError(t, err)
	assert.Equal(t, "ready", got)

	_, err = module.Load(context.Background(), &stubModule{err: module.NoMatchError{File: "f", Pattern: "p"}})
	assert.Equal(t, module.KindNoMatch, module.KindOf(err))
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want module.ErrorKind
	}{
		{name: "nil", err: nil, want: module.KindNone},
		{name: "missing_configuration", err: module.MissingConfigurationError{Module: "grep", Key: "file"}, want: module.KindMissingConfiguration},
		{name: "invalid_configuration", err: module.InvalidConfigurationError{Module: "grep", Key: "pattern", Value: "("}, want: module.KindInvalidConfiguration},
		{name: "no_match", err: module.NoMatchError{File: "a", Pattern: "b"}, want: module.KindNoMatch},
		{name: "missing_credential", err: module.MissingCredentialError{Endpoint: "https://gitlab.com", Account: "prospectus"}, want: module.KindMissingCredential},
		{name: "file", err: module.FileError{Op: "open", Path: "/tmp/state", Err: os.ErrNotExist}, want: module.KindFile},
		{name: "wrapped", err: fmt.Errorf("load: %w", module.NoMatchError{}), want: module.KindNoMatch},
		{name: "remote", err: errors.New("500 Internal Server Error"), want: module.KindRemote},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, module.KindOf(tt.err))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "grep: no file specified", module.MissingConfigurationError{Module: "grep", Key: "file"}.Error())
	assert.Equal(t, `no lines in /tmp/state matched state-\d+`, module.NoMatchError{File: "/tmp/state", Pattern: `state-\d+`}.Error())

	err := module.InvalidConfigurationError{Module: "grep", Key: "colour", Value: "red", Err: module.ErrUnknownKey}
	assert.ErrorIs(t, err, module.ErrUnknownKey)
	assert.Contains(t, err.Error(), "colour")

	fileErr := module.FileError{Op: "open", Path: "/tmp/state", Err: os.ErrNotExist}
	assert.Equal(t, "failed to open /tmp/state: file does not exist", fileErr.Error())
	assert.ErrorIs(t, fileErr, os.ErrNotExist)

	cred := module.MissingCredentialError{Endpoint: "https://gitlab.example.com", Account: "prospectus"}
	assert.Contains(t, cred.Error(), "https://gitlab.example.com")
	assert.Contains(t, cred.Error(), "prospectus")
}

type closingModule struct {
	stubModule
	closed int
}

func (c *closingModule) Close() error {
	c.closed++
	return nil
}

func TestClose(t *testing.T) {
	t.Parallel()

	c := &closingModule{}
	require.NoError(t, module.Close(c))
	assert.Equal(t, 1, c.closed)

	assert.NoError(t, module.Close(&stubModule{}))
}
