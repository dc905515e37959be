package hash

// Hash hashes and verifies secrets.
//
// Implementations decide the output encoding; callers treat the hashed value
// as opaque bytes.
type Hash interface {
	// Hash returns the hashed representation of plaintext.
	Hash(plaintext string) ([]byte, error)
	// Verify reports whether plaintext matches the hashed value.
	Verify(hashed, plaintext string) bool
}
