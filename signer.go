package ecschnorr

import (
	"errors"
	"fmt"
	"math/big"

	"lol.mleku.dev/log"

	"ecschnorr.mleku.dev/curve"
	"ecschnorr.mleku.dev/digest"
	"ecschnorr.mleku.dev/nonce"
	"ecschnorr.mleku.dev/sigfmt"
)

// DefaultMaxAttempts bounds the nonces a single signing call may consume.
const DefaultMaxAttempts = 10

// Signer signs and verifies with one hash, variant and signature format. It
// holds no key material and no mutable state, so a single Signer may be
// shared between goroutines.
type Signer struct {
	hash        digest.Func
	variant     Variant
	format      sigfmt.Format
	scheme      scheme
	maxAttempts int
	nonces      nonce.Source
	curve       *curve.Curve
}

// Option configures a Signer.
type Option func(*Signer)

// WithMaxAttempts sets how many nonces a signing call may try before it
// reports ErrSigningFailed. Values below one are ignored.
func WithMaxAttempts(n int) Option {
	return func(s *Signer) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithNonceSource replaces the uniform random source used by Sign.
func WithNonceSource(src nonce.Source) Option {
	return func(s *Signer) {
		if src != nil {
			s.nonces = src
		}
	}
}

// WithCurve restricts the signer to keys of c. Signing with a key of another
// curve fails with ErrCurveMismatch and verification with one is rejected.
func WithCurve(c *curve.Curve) Option {
	return func(s *Signer) { s.curve = c }
}

// New creates a Signer. h must not be nil and v and f must be known values.
func New(h digest.Func, v Variant, f sigfmt.Format, opts ...Option) (*Signer, error) {
	if h == nil {
		return nil, Error{Err: digest.ErrUnknownHash, Description: "signer needs a hash function"}
	}
	sch, err := schemeFor(v)
	if err != nil {
		return nil, err
	}
	if !f.Valid() {
		return nil, sigfmt.Error{Err: sigfmt.ErrUnknownFormat,
			Description: fmt.Sprintf("unknown signature format %s", f)}
	}
	s := &Signer{
		hash:        h,
		variant:     v,
		format:      f,
		scheme:      sch,
		maxAttempts: DefaultMaxAttempts,
		nonces:      nonce.Random{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Variant returns the signer's variant.
func (s *Signer) Variant() Variant { return s.variant }

// Format returns the signer's signature format.
func (s *Signer) Format() sigfmt.Format { return s.format }

// MaxAttempts returns the bound on nonces per signing call.
func (s *Signer) MaxAttempts() int { return s.maxAttempts }

// Sign signs msg with nonces from the signer's source, uniform random unless
// WithNonceSource was given. A degenerate attempt draws a fresh nonce.
func (s *Signer) Sign(msg []byte, priv *PrivateKey) (sigfmt.Encoded, error) {
	return s.SignWith(msg, priv, s.nonces)
}

// SignK signs msg with the caller's nonce k in a single attempt.
func (s *Signer) SignK(msg []byte, priv *PrivateKey, k *big.Int) (sigfmt.Encoded, error) {
	if k == nil {
		return nil, signError(ErrInvalidNonce, "nonce is nil")
	}
	return s.SignWith(msg, priv, nonce.Fixed{K: k})
}

// SignRFC6979 signs msg with nonces derived from the key and msg by the
// HMAC-DRBG of RFC 6979 over the signer's hash. The same key and message
// always produce the same signature.
func (s *Signer) SignRFC6979(msg []byte, priv *PrivateKey) (sigfmt.Encoded, error) {
	return s.SignWith(msg, priv, nonce.RFC6979{Hash: s.hash})
}

// SignBIP signs msg with the bip-schnorr nonce k = H(d ‖ msg ‖ algo16[:16]).
// It requires the BIP variant and a secp256k1 key.
func (s *Signer) SignBIP(msg []byte, priv *PrivateKey, algo16 []byte) (sigfmt.Encoded, error) {
	if s.variant != BIP {
		return nil, signError(ErrUnsupportedVariant,
			fmt.Sprintf("bip nonce derivation needs the BIP variant, not %s", s.variant))
	}
	if priv == nil || priv.Curve == nil || priv.Curve.Name != curve.Secp256k1.Name {
		return nil, signError(ErrUnsupportedCurve, "bip nonce derivation is defined on secp256k1 only")
	}
	return s.SignWith(msg, priv, nonce.BIP{Hash: s.hash, Suffix: algo16})
}

// SignWith signs msg drawing nonces from src. At most MaxAttempts nonces
// are tried, and only one for the BIP variant.
func (s *Signer) SignWith(msg []byte, priv *PrivateKey, src nonce.Source) (sig sigfmt.Encoded, err error) {
	if err = priv.validate(); err != nil {
		return
	}
	c := priv.Curve
	if s.curve != nil && s.curve != c {
		return nil, signError(ErrCurveMismatch,
			fmt.Sprintf("signer is bound to %s, key is on %s", s.curve.Name, c.Name))
	}
	var gen nonce.Generator
	if gen, err = src.Generator(c, priv.D, msg); err != nil {
		return nil, nonceError(err)
	}
	attempts := s.maxAttempts
	if !s.scheme.retry() {
		attempts = 1
	}
	w := c.ScalarBaseMult(priv.D)
	for i := 0; i < attempts; i++ {
		var k *big.Int
		if k, err = gen.Next(); err != nil {
			if errors.Is(err, nonce.ErrExhausted) {
				break
			}
			return nil, nonceError(err)
		}
		if k.Sign() <= 0 || k.Cmp(c.N) >= 0 {
			return nil, signError(ErrInvalidNonce, "nonce is outside [1, n-1]")
		}
		var r, sv *big.Int
		r, sv, err = s.scheme.sign(c, s.hash, priv.D, w, k, msg)
		if errors.Is(err, errDegenerate) {
			log.T.F("%s attempt %d on %s produced a degenerate signature", s.variant, i+1, c.Name)
			continue
		}
		if err != nil {
			return
		}
		return sigfmt.Encode(r, sv, s.format, c.Size())
	}
	return nil, signError(ErrSigningFailed,
		fmt.Sprintf("%s signing gave up after %d attempts", s.variant, attempts))
}

func nonceError(err error) error {
	if errors.Is(err, nonce.ErrZeroNonce) {
		return Error{Err: ErrSigningFailed, Description: err.Error()}
	}
	return Error{Err: ErrInvalidNonce, Description: err.Error()}
}

// Verify reports whether sig is a valid signature of msg under pub. Every
// malformed input, including undecodable signatures and out of range
// values, is a rejection rather than an error.
func (s *Signer) Verify(msg []byte, sig sigfmt.Encoded, pub *PublicKey) bool {
	if err := pub.validate(); err != nil {
		log.D.F("verify: %v", err)
		return false
	}
	c := pub.Curve
	if s.curve != nil && s.curve != c {
		log.D.F("verify: key is on %s, signer is bound to %s", c.Name, s.curve.Name)
		return false
	}
	r, sv, err := sigfmt.Decode(sig, s.format)
	if err != nil {
		log.T.F("verify: %v", err)
		return false
	}
	if r.BitLen() > 8*c.Size() || sv.Sign() == 0 || sv.Cmp(c.N) >= 0 {
		log.T.F("verify: r or s out of range for %s", c.Name)
		return false
	}
	return s.scheme.verify(c, s.hash, pub.W, r, sv, msg)
}
