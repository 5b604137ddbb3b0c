// Package secretstore looks up API tokens in the operating system keyring.
//
// Secrets are addressed by a server (the API endpoint URL) and an account name.
// When a secret is missing and an interactive prompt is available, the user is
// asked for it once and the answer is saved back to the keyring so later runs
// find it without asking.
package secretstore
