// Package secure keeps API tokens encrypted while they sit in memory.
//
// Tokens resolved for a remote endpoint are cached for the lifetime of a
// module instance. Rather than holding the plaintext in an ordinary string
// field, the cache seals it into a memguard enclave:
//
//   - Encrypted at rest in memory (XSalsa20Poly1305)
//   - Protected from swapping via mlock where the platform allows it
//
// # Usage
//
//	tok, err := secure.Seal("glpat-...")
//	if err != nil {
//	    return err
//	}
//	defer tok.Destroy()
//
//	plaintext, err := tok.Reveal()
//
// Reveal returns a fresh string copy each time. The copy is ordinary Go memory;
// callers should hand it straight to the client that needs it and not log it.
//
// It does NOT protect against attackers with access to the running process.
package secure
