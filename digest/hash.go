// Package digest supplies the hash capabilities the signers are built on: a
// pluggable hash constructor, tagged hashes for domain separation and an
// RFC 6979 deterministic nonce generator.
package digest

import (
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"hash"
	"sort"
	"strings"

	sha256simd "github.com/minio/sha256-simd"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// Func constructs a fresh hash state. It is the update/digest capability the
// generalized signer is parameterized over.
type Func func() hash.Hash

// ErrUnknownHash is returned by ByName for unregistered names.
var ErrUnknownHash = errors.New("unknown hash function")

// SHA256 is the default hash, backed by the SIMD accelerated implementation.
var SHA256 Func = sha256simd.New

func blake2b256() hash.Hash {
	h, _ := blake2b.New256(nil)
	return h
}

func blake2b512() hash.Hash {
	h, _ := blake2b.New512(nil)
	return h
}

var registry = map[string]Func{
	"sha256":      SHA256,
	"sha224":      sha256.New224,
	"sha384":      sha512.New384,
	"sha512":      sha512.New,
	"sha3-256":    sha3.New256,
	"sha3-512":    sha3.New512,
	"keccak256":   sha3.NewLegacyKeccak256,
	"blake2b-256": blake2b256,
	"blake2b-512": blake2b512,
}

// ByName returns a registered hash constructor, case insensitively.
func ByName(name string) (Func, error) {
	if f, ok := registry[strings.ToLower(name)]; ok {
		return f, nil
	}
	return nil, ErrUnknownHash
}

// Names lists the registered hash names in sorted order.
func Names() (names []string) {
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// Sum hashes the concatenation of parts with h.
func Sum(h Func, parts ...[]byte) []byte {
	d := h()
	for _, p := range parts {
		d.Write(p)
	}
	return d.Sum(nil)
}
