package errors

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	gogitlab "github.com/xanzy/go-gitlab"

	"github.com/systmms/prospectus/pkg/module"
)

// UserError represents an error that should be shown to the user with helpful context
type UserError struct {
	Message    string
	Suggestion string
	Details    string
	Err        error
}

func (e UserError) Error() string {
	var parts []string

	if e.Message != "" {
		parts = append(parts, e.Message)
	} else if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	if e.Details != "" {
		parts = append(parts, "\n  Details: "+e.Details)
	}

	if e.Suggestion != "" {
		parts = append(parts, "\n  💡 Try: "+e.Suggestion)
	}

	return strings.Join(parts, "")
}

func (e UserError) Unwrap() error {
	return e.Err
}

// ConfigError represents a configuration error with helpful context
type ConfigError struct {
	Field      string
	Value      interface{}
	Message    string
	Suggestion string
}

func (e ConfigError) Error() string {
	msg := "Configuration error"
	if e.Field != "" {
		msg += fmt.Sprintf(" in field '%s'", e.Field)
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	msg += ": " + e.Message

	if e.Suggestion != "" {
		msg += "\n  💡 " + e.Suggestion
	}

	return msg
}

// ModuleError enhances module load errors with context. The module error is
// kept as Details and remains reachable through Unwrap.
func ModuleError(moduleType string, operation string, err error) error {
	if err == nil {
		return nil
	}

	return UserError{
		Message:    fmt.Sprintf("%s module error during %s", moduleType, operation),
		Details:    err.Error(),
		Suggestion: getModuleSuggestion(moduleType, err),
		Err:        err,
	}
}

// getModuleSuggestion returns helpful suggestions based on module and error
func getModuleSuggestion(moduleType string, err error) string {
	var missingCred module.MissingCredentialError
	if errors.As(err, &missingCred) {
		return fmt.Sprintf("Write a GitLab API token to ~/.gitlab_api, or store one in the OS keyring for %s (account %s)",
			missingCred.Endpoint, missingCred.Account)
	}

	var missingCfg module.MissingConfigurationError
	if errors.As(err, &missingCfg) {
		return fmt.Sprintf("Pass --set %s=<value>", missingCfg.Key)
	}

	var invalidCfg module.InvalidConfigurationError
	if errors.As(err, &invalidCfg) {
		if errors.Is(err, module.ErrUnknownKey) {
			return fmt.Sprintf("Run 'prospectus modules' to see the keys %s accepts", moduleType)
		}
		if invalidCfg.Key == "pattern" {
			return "Check the pattern is a valid regular expression"
		}
	}

	var noMatch module.NoMatchError
	if errors.As(err, &noMatch) {
		return "Check the pattern against the file contents"
	}

	if errors.Is(err, gogitlab.ErrNotFound) {
		return "Verify the repo path (group/project) and the endpoint"
	}

	var apiErr *gogitlab.ErrorResponse
	if errors.As(err, &apiErr) && apiErr.Response != nil {
		switch apiErr.Response.StatusCode {
		case http.StatusUnauthorized:
			return "The GitLab token was rejected. Check ~/.gitlab_api or the keyring entry"
		case http.StatusForbidden:
			return "The GitLab token lacks read_api access to this project"
		}
	}

	if errors.Is(err, os.ErrNotExist) {
		return "Verify the file path exists and is spelled correctly"
	}

	errStr := err.Error()
	if strings.Contains(errStr, "timeout") {
		return "The operation timed out. Check your network connection and try again"
	}
	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "no such host") {
		return "Unable to connect. Check your network and the endpoint setting"
	}

	return ""
}

// SimplifyError simplifies complex error messages for users
func SimplifyError(err error) error {
	if err == nil {
		return nil
	}

	// Already a user-friendly error
	if _, ok := err.(UserError); ok {
		return err
	}
	if _, ok := err.(ConfigError); ok {
		return err
	}

	// Unwrap to get the root cause
	rootErr := err
	for {
		unwrapped := errors.Unwrap(rootErr)
		if unwrapped == nil {
			break
		}
		rootErr = unwrapped
	}

	errStr := rootErr.Error()

	if strings.Contains(errStr, "permission denied") {
		return UserError{
			Message:    "Permission denied",
			Suggestion: "Check file permissions or run with appropriate privileges",
			Err:        err,
		}
	}

	if strings.Contains(errStr, "no such file or directory") {
		return UserError{
			Message:    "File or directory not found",
			Suggestion: "Verify the path exists and is spelled correctly",
			Err:        err,
		}
	}

	// Return original error if we can't simplify it
	return err
}
