package modules_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/systmms/prospectus/internal/modules"
	"github.com/systmms/prospectus/pkg/module"
	"github.com/systmms/prospectus/tests/testutil"
)

func TestGrepModuleContract(t *testing.T) {
	module.RunContractTests(t, module.ContractTest{
		CreateModule: func(t *testing.T) module.Module { return modules.NewGrepModule() },
		Configure: func(t *testing.T, m module.Module) {
			require.NoError(t, m.Configure("file", testutil.WriteFile(t, "VERSION", "v1.2.3\n")))
		},
		Expected: "v1.2.3",
	})
}

func TestGrepModuleLoad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		pattern  string
		want     string
		wantKind module.ErrorKind
	}{
		{
			name:    "pattern_selects_line",
			content: "foo\nbar-state-1\nbaz\n",
			pattern: `state-\d+`,
			want:    "bar-state-1",
		},
		{
			name:     "empty_file",
			content:  "",
			pattern:  `state-\d+`,
			wantKind: module.KindNoMatch,
		},
		{
			name:     "empty_file_default_pattern",
			content:  "",
			wantKind: module.KindNoMatch,
		},
		{
			name:    "default_pattern_first_line",
			content: "ready\nlater\n",
			want:    "ready",
		},
		{
			name:     "bad_pattern",
			content:  "ready\n",
			pattern:  "[",
			wantKind: module.KindInvalidConfiguration,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := modules.NewGrepModule()
			require.NoError(t, m.Configure("file", testutil.WriteFile(t, "state", tt.content)))
			if tt.pattern != "" {
				require.NoError(t, m.Configure("pattern", tt.pattern))
			}

			var state module.State
			err := m.Load(context.Background(), &state)
			if tt.wantKind != module.KindNone {
				assert.Equal(t, tt.wantKind, module.KindOf(err))
				_, written := state.Value()
				assert.False(t, written, "failed load must not write state")
				return
			}

			require.NoError(t, err)
			got, _ := state.Value()
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGrepModuleMissingFileConfig(t *testing.T) {
	t.Parallel()

	m := modules.NewGrepModule()
	m.SetPattern("anything")

	// A canceled context proves the check happens before any other work.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var state module.State
	err := m.Load(ctx, &state)

	var missing module.MissingConfigurationError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "grep", missing.Module)
	assert.Equal(t, "file", missing.Key)
}

func TestGrepModuleReloadUsesCurrentConfig(t *testing.T) {
	t.Parallel()

	m := modules.NewGrepModule()
	m.SetFile(testutil.WriteFile(t, "state", "alpha\nbeta\n"))

	first, err := module.Load(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, "alpha", first)

	m.SetPattern("^b")
	second, err := module.Load(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, "beta", second)
}

func TestGrepModuleMissingFileIsFileKind(t *testing.T) {
	t.Parallel()

	m := modules.NewGrepModule()
	m.SetFile(testutil.MissingFile(t, "state"))

	var state module.State
	err := m.Load(context.Background(), &state)
	require.Error(t, err)
	assert.Equal(t, module.KindFile, module.KindOf(err))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, written := state.Value()
	assert.False(t, written)
}
