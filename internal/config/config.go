package config

import (
	"github.com/systmms/prospectus/internal/credentials"
	"github.com/systmms/prospectus/internal/logging"
	"github.com/systmms/prospectus/internal/metrics"
	"github.com/systmms/prospectus/internal/modules"
	"github.com/systmms/prospectus/internal/secretstore"
)

// Config holds the runtime configuration
type Config struct {
	Logger         *logging.Logger
	Debug          bool
	NonInteractive bool

	// TokenFile overrides the GitLab token file, default ~/.gitlab_api
	TokenFile string

	// MetricsFile, when set, receives a textfile export of load metrics
	MetricsFile string

	// Store replaces the OS keyring when set
	Store secretstore.Store
}

// GetLogger returns the configured logger or a discarding one
func (c *Config) GetLogger() *logging.Logger {
	if c == nil || c.Logger == nil {
		return logging.Nop()
	}
	return c.Logger
}

// PromptingEnabled reports whether the secret store may ask for a missing token
func (c *Config) PromptingEnabled() bool {
	return !c.NonInteractive && !secretstore.IsHeadless()
}

// TokenFilePath returns the token file to read, applying the default
func (c *Config) TokenFilePath() string {
	if c.TokenFile == "" {
		return credentials.DefaultTokenFile
	}
	return c.TokenFile
}

// SecretStore returns Store if set. Otherwise it builds the OS keyring store,
// with a terminal prompter when prompting is enabled
func (c *Config) SecretStore() secretstore.Store {
	if c.Store != nil {
		return c.Store
	}
	opts := []secretstore.Option{secretstore.WithLogger(c.GetLogger().Named("secretstore"))}
	if c.PromptingEnabled() {
		opts = append(opts, secretstore.WithPrompter(secretstore.NewTerminalPrompter()))
	}
	return secretstore.NewKeyringStore(opts...)
}

// ModuleOptions returns the collaborators shared by modules created for one
// command run
func (c *Config) ModuleOptions(store secretstore.Store, recorder *metrics.Recorder) modules.Options {
	return modules.Options{
		Logger:      c.GetLogger(),
		Metrics:     recorder,
		SecretStore: store,
		TokenFile:   c.TokenFilePath(),
	}
}
