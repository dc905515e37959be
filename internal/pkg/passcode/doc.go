// Package passcode generates short-lived numeric one-time passcodes.
//
// Codes are uniform random 6-digit numbers drawn from crypto/rand. The
// generator is intentionally tiny: expiry, storage, and verification are the
// caller's concern.
package passcode
