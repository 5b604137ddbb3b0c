//go:build !darwin && !linux && !windows

package secretstore

func platformSupported() bool {
	return false
}

// IsHeadless returns true; there is no keyring to save a prompted secret to.
func IsHeadless() bool {
	return true
}
