package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/systmms/prospectus/internal/config"
	"github.com/systmms/prospectus/internal/credentials"
	"github.com/systmms/prospectus/internal/metrics"
	"github.com/systmms/prospectus/tests/fakes"
)

func TestGetLoggerDefaults(t *testing.T) {
	t.Parallel()

	var nilCfg *config.Config
	assert.NotNil(t, nilCfg.GetLogger())
	assert.NotNil(t, (&config.Config{}).GetLogger())
}

func TestTokenFilePath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, credentials.DefaultTokenFile, (&config.Config{}).TokenFilePath())
	assert.Equal(t, "/etc/token", (&config.Config{TokenFile: "/etc/token"}).TokenFilePath())
}

func TestPromptingDisabledWhenNonInteractive(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{NonInteractive: true}
	assert.False(t, cfg.PromptingEnabled())
}

func TestModuleOptions(t *testing.T) {
	t.Parallel()

	store := fakes.NewFakeSecretStore()
	rec := metrics.NewRecorder()
	cfg := &config.Config{TokenFile: "/tmp/token"}

	opts := cfg.ModuleOptions(store, rec)
	assert.Same(t, store, opts.SecretStore)
	assert.Same(t, rec, opts.Metrics)
	assert.Equal(t, "/tmp/token", opts.TokenFile)
	assert.NotNil(t, opts.Logger)
}

func TestSecretStoreBuilds(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{NonInteractive: true}
	assert.NotNil(t, cfg.SecretStore())
}

func TestSecretStoreOverride(t *testing.T) {
	t.Parallel()

	store := fakes.NewFakeSecretStore()
	cfg := &config.Config{Store: store}
	assert.Same(t, store, cfg.SecretStore())
}
