// Package nonce provides the nonce sources a signer draws its per-signature
// scalar k from. A Source produces one Generator per signing call; the
// generator owns whatever state is threaded across that call's retries and
// is discarded afterwards.
package nonce

import (
	"errors"
	"math/big"

	"lukechampine.com/frand"

	"ecschnorr.mleku.dev/curve"
	"ecschnorr.mleku.dev/digest"
)

var (
	// ErrExhausted is returned by Next once a single-shot or finite
	// generator has nothing left to offer.
	ErrExhausted = errors.New("nonce source exhausted")
	// ErrZeroNonce is returned when a hash-derived nonce reduces to zero.
	ErrZeroNonce = errors.New("derived nonce is zero")
)

// Generator yields the candidate nonces for one signing call.
type Generator interface {
	Next() (k *big.Int, err error)
}

// Source creates the Generator for signing msg with secret d on curve c.
type Source interface {
	Generator(c *curve.Curve, d *big.Int, msg []byte) (Generator, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func() (*big.Int, error)

// Next calls f.
func (f GeneratorFunc) Next() (*big.Int, error) { return f() }

// Random draws k uniformly from [1, n-1] on every call, using frand's
// ChaCha based generator, which is safe for concurrent use.
type Random struct{}

// Generator implements Source.
func (Random) Generator(c *curve.Curve, _ *big.Int, _ []byte) (Generator, error) {
	bound := new(big.Int).Sub(c.N, big.NewInt(1))
	return GeneratorFunc(func() (*big.Int, error) {
		k := frand.BigIntn(bound)
		return k.Add(k, big.NewInt(1)), nil
	}), nil
}

// RFC6979 derives deterministic nonces from the secret and the message with
// the HMAC-DRBG of RFC 6979 over Hash. Retries advance the generator's V
// state rather than drawing fresh randomness.
type RFC6979 struct {
	Hash digest.Func
}

// Generator implements Source.
func (s RFC6979) Generator(c *curve.Curve, d *big.Int, msg []byte) (Generator, error) {
	g := digest.NewRFC6979(s.Hash, c.N, d, msg)
	return GeneratorFunc(func() (*big.Int, error) { return g.Next(), nil }), nil
}

// Fixed offers a single caller supplied nonce.
type Fixed struct {
	K *big.Int
}

// Generator implements Source.
func (s Fixed) Generator(*curve.Curve, *big.Int, []byte) (Generator, error) {
	return Sequence{s.K}.Generator(nil, nil, nil)
}

// Sequence offers its nonces in order, one per attempt, then reports
// ErrExhausted. Each generator starts from the beginning.
type Sequence []*big.Int

// Generator implements Source.
func (s Sequence) Generator(*curve.Curve, *big.Int, []byte) (Generator, error) {
	i := 0
	return GeneratorFunc(func() (*big.Int, error) {
		if i >= len(s) {
			return nil, ErrExhausted
		}
		k := new(big.Int).Set(s[i])
		i++
		return k, nil
	}), nil
}

// BIP derives a single nonce k = H(d ‖ msg ‖ suffix) mod n, d written at the
// curve's byte length and suffix truncated to 16 bytes.
type BIP struct {
	Hash   digest.Func
	Suffix []byte
}

// Generator implements Source. A derived nonce of zero is reported as
// ErrZeroNonce; there is no second attempt.
func (s BIP) Generator(c *curve.Curve, d *big.Int, msg []byte) (Generator, error) {
	suffix := s.Suffix
	if len(suffix) > 16 {
		suffix = suffix[:16]
	}
	k := new(big.Int).SetBytes(digest.Sum(s.Hash, c.FieldBytes(d), msg, suffix))
	k.Mod(k, c.N)
	if k.Sign() == 0 {
		return nil, ErrZeroNonce
	}
	return Fixed{K: k}.Generator(c, d, msg)
}
