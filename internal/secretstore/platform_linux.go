//go:build linux

package secretstore

import "os"

// platformSupported always reports true on Linux; a missing Secret Service
// daemon surfaces as a keyring error on first use.
func platformSupported() bool {
	return true
}

// IsHeadless returns true if no user can answer a prompt
func IsHeadless() bool {
	// Check for SSH session
	if os.Getenv("SSH_TTY") != "" {
		return true
	}
	// Check if no display is available
	if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
		return true
	}
	// Check for CI environments
	if os.Getenv("CI") != "" {
		return true
	}
	return false
}
