//go:build windows

package secretstore

import "os"

func platformSupported() bool {
	return true
}

// IsHeadless returns true if no user can answer a prompt
func IsHeadless() bool {
	return os.Getenv("CI") != ""
}
