package secure

import (
	"errors"
	"sync"

	"github.com/awnumar/memguard"
)

// ErrEmptyToken is returned by Seal for an empty token.
var ErrEmptyToken = errors.New("cannot seal an empty token")

// ErrDestroyed is returned by Reveal after Destroy.
var ErrDestroyed = errors.New("sealed token has been destroyed")

// Token is an API token held in an encrypted memguard enclave.
type Token struct {
	mu      sync.RWMutex
	enclave *memguard.Enclave
}

// Seal copies token into a new enclave. memguard wipes the intermediate byte
// slice; the caller's string is left as is.
func Seal(token string) (*Token, error) {
	if token == "" {
		return nil, ErrEmptyToken
	}
	return &Token{enclave: memguard.NewEnclave([]byte(token))}, nil
}

// Reveal decrypts the token and returns a copy of the plaintext.
func (t *Token) Reveal() (string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.enclave == nil {
		return "", ErrDestroyed
	}

	locked, err := t.enclave.Open()
	if err != nil {
		return "", err
	}
	defer locked.Destroy()

	// string() copies; locked.String() would alias memory wiped by Destroy.
	return string(locked.Bytes()), nil
}

// Destroy drops the enclave. Calling it more than once is safe.
func (t *Token) Destroy() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.enclave = nil
}
