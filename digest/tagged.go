package digest

import (
	"sync"

	sha256simd "github.com/minio/sha256-simd"
)

// Tags used by the BIP-schnorr draft for nonce and challenge derivation.
const (
	TagBIPSchnorrDerive = "BIPSchnorrDerive"
	TagBIPSchnorr       = "BIPSchnorr"
)

// Precomputed SHA256(tag) prefixes for the BIP tags.
var (
	deriveTagHash    [32]byte
	challengeTagHash [32]byte
	tagPrefixOnce    sync.Once
)

func initTagPrefixes() {
	deriveTagHash = sha256simd.Sum256([]byte(TagBIPSchnorrDerive))
	challengeTagHash = sha256simd.Sum256([]byte(TagBIPSchnorr))
}

func tagPrefix(tag string) [32]byte {
	tagPrefixOnce.Do(initTagPrefixes)
	switch tag {
	case TagBIPSchnorrDerive:
		return deriveTagHash
	case TagBIPSchnorr:
		return challengeTagHash
	}
	return sha256simd.Sum256([]byte(tag))
}

// Tagged computes SHA256(SHA256(tag) ‖ SHA256(tag) ‖ msg), msg being the
// concatenation of parts.
func Tagged(tag string, parts ...[]byte) (out [32]byte) {
	prefix := tagPrefix(tag)
	h := sha256simd.New()
	h.Write(prefix[:])
	h.Write(prefix[:])
	for _, p := range parts {
		h.Write(p)
	}
	copy(out[:], h.Sum(nil))
	return
}

// TaggedWith is Tagged over an arbitrary hash function:
// H(H(tag) ‖ H(tag) ‖ msg).
func TaggedWith(h Func, tag string, parts ...[]byte) []byte {
	prefix := Sum(h, []byte(tag))
	all := make([][]byte, 0, len(parts)+2)
	all = append(all, prefix, prefix)
	all = append(all, parts...)
	return Sum(h, all...)
}
