package module

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a Load failure.
type ErrorKind string

const (
	KindNone                 ErrorKind = ""
	KindMissingConfiguration ErrorKind = "missing_configuration"
	KindInvalidConfiguration ErrorKind = "invalid_configuration"
	KindNoMatch              ErrorKind = "no_match"
	KindMissingCredential    ErrorKind = "missing_credential"
	KindFile                 ErrorKind = "file"
	// KindRemote covers every error not produced by this package, most often a
	// failure returned by a remote API client.
	KindRemote ErrorKind = "remote"
)

// MissingConfigurationError is returned when Load runs without a required key.
type MissingConfigurationError struct {
	Module string
	Key    string
}

func (e MissingConfigurationError) Error() string {
	return fmt.Sprintf("%s: no %s specified", e.Module, e.Key)
}

// Kind implements kinded.
func (e MissingConfigurationError) Kind() ErrorKind { return KindMissingConfiguration }

// InvalidConfigurationError is returned when a configured value cannot be used,
// or when Configure is called with a key the module does not know.
type InvalidConfigurationError struct {
	Module string
	Key    string
	Value  string
	Err    error
}

func (e InvalidConfigurationError) Error() string {
	msg := fmt.Sprintf("%s: invalid %s %q", e.Module, e.Key, e.Value)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e InvalidConfigurationError) Unwrap() error { return e.Err }

// Kind implements kinded.
func (e InvalidConfigurationError) Kind() ErrorKind { return KindInvalidConfiguration }

// ErrUnknownKey is wrapped by InvalidConfigurationError for unknown keys.
var ErrUnknownKey = errors.New("unknown configuration key")

// NoMatchError is returned when a file was read successfully but no line
// satisfied the pattern.
type NoMatchError struct {
	File    string
	Pattern string
}

func (e NoMatchError) Error() string {
	return fmt.Sprintf("no lines in %s matched %s", e.File, e.Pattern)
}

// Kind implements kinded.
func (e NoMatchError) Kind() ErrorKind { return KindNoMatch }

// MissingCredentialError is returned when neither the token file nor the secret
// store produced a token.
type MissingCredentialError struct {
	Endpoint string
	Account  string
	Err      error
}

func (e MissingCredentialError) Error() string {
	msg := fmt.Sprintf("no API token found for %s (account %s)", e.Endpoint, e.Account)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e MissingCredentialError) Unwrap() error { return e.Err }

// Kind implements kinded.
func (e MissingCredentialError) Kind() ErrorKind { return KindMissingCredential }

// FileError is returned when a local file could not be opened or read.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e FileError) Unwrap() error { return e.Err }

// Kind implements kinded.
func (e FileError) Kind() ErrorKind { return KindFile }

type kinded interface {
	Kind() ErrorKind
}

// KindOf returns the kind of the first typed error in err's chain. A nil error
// is KindNone; an error without a kind is KindRemote.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	var k kinded
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindRemote
}
