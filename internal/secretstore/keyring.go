package secretstore

import (
	"errors"

	"github.com/zalando/go-keyring"
)

// systemKeyringClient implements KeyringClient with go-keyring, which talks to
// the macOS Keychain, the Linux Secret Service or the Windows credential store.
type systemKeyringClient struct{}

func newPlatformKeyringClient() KeyringClient {
	if !platformSupported() {
		return unsupportedKeyringClient{}
	}
	return systemKeyringClient{}
}

// Get retrieves a secret from the OS keyring
func (systemKeyringClient) Get(service, account string) (string, error) {
	secret, err := keyring.Get(service, account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return secret, nil
}

// Set stores a secret in the OS keyring
func (systemKeyringClient) Set(service, account, secret string) error {
	return keyring.Set(service, account, secret)
}

// ErrUnsupportedPlatform is returned by the keyring on platforms without one.
var ErrUnsupportedPlatform = errors.New("keyring not supported on this platform")

type unsupportedKeyringClient struct{}

func (unsupportedKeyringClient) Get(service, account string) (string, error) {
	return "", ErrUnsupportedPlatform
}

func (unsupportedKeyringClient) Set(service, account, secret string) error {
	return ErrUnsupportedPlatform
}
