// Package signer provides key-holding signers behind a small interface, used
// to abstract the signature algorithm from the usage.
package signer

// I is a signer holding one key. A signer initialised with only a public key
// can verify but not sign.
type I interface {
	// Generate creates a fresh key pair from system entropy.
	Generate() error
	// InitSec initialises the secret key from raw bytes and derives the
	// public key.
	InitSec(sec []byte) error
	// InitPub initialises a verify-only signer from a public key.
	InitPub(pub []byte) error
	// Sec returns the secret key bytes, or nil.
	Sec() []byte
	// Pub returns the public key bytes, or nil.
	Pub() []byte
	// Sign signs msg with the secret key.
	Sign(msg []byte) (sig []byte, err error)
	// Verify checks sig over msg against the public key.
	Verify(msg, sig []byte) (valid bool, err error)
	// Zero wipes the secret key.
	Zero()
}

// Gen generates keys for vanity or parity matching. It works on compressed
// keys so the caller can see and flip the y parity.
type Gen interface {
	// Generate draws a new key and returns its 33 byte compressed public
	// key.
	Generate() (pubBytes []byte, err error)
	// Negate flips the key, and with it the public key's y parity.
	Negate()
	// KeyPairBytes returns the secret key and the 32 byte x-only public key.
	KeyPairBytes() (secBytes, cmprPubBytes []byte)
}
