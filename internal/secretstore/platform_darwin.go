//go:build darwin

package secretstore

import "os"

func platformSupported() bool {
	return true
}

// IsHeadless returns true if no user can answer a prompt
func IsHeadless() bool {
	// Check for SSH session
	if os.Getenv("SSH_TTY") != "" {
		return true
	}
	// Check for CI environments
	if os.Getenv("CI") != "" {
		return true
	}
	return false
}
