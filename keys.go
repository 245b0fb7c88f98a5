package ecschnorr

import (
	"fmt"
	"math/big"

	"lukechampine.com/frand"

	"ecschnorr.mleku.dev/curve"
)

// PrivateKey is a secret scalar D in [1, n-1] on Curve.
type PrivateKey struct {
	D     *big.Int
	Curve *curve.Curve
}

// PublicKey is the point W = D·G of a private key.
type PublicKey struct {
	W     curve.Point
	Curve *curve.Curve
}

// NewPrivateKey validates d against the order of c.
func NewPrivateKey(c *curve.Curve, d *big.Int) (*PrivateKey, error) {
	k := &PrivateKey{D: d, Curve: c}
	if err := k.validate(); err != nil {
		return nil, err
	}
	k.D = new(big.Int).Set(d)
	return k, nil
}

// PrivateKeyFromBytes reads a big-endian scalar that must be exactly the
// curve's byte length.
func PrivateKeyFromBytes(c *curve.Curve, b []byte) (*PrivateKey, error) {
	if len(b) != c.Size() {
		return nil, signError(ErrInvalidPrivateKey,
			fmt.Sprintf("private key must be %d bytes, got %d", c.Size(), len(b)))
	}
	return NewPrivateKey(c, new(big.Int).SetBytes(b))
}

// GeneratePrivateKey draws a uniform scalar in [1, n-1].
func GeneratePrivateKey(c *curve.Curve) (*PrivateKey, error) {
	d := frand.BigIntn(new(big.Int).Sub(c.N, big.NewInt(1)))
	return NewPrivateKey(c, d.Add(d, big.NewInt(1)))
}

func (k *PrivateKey) validate() error {
	switch {
	case k == nil || k.Curve == nil || k.D == nil:
		return signError(ErrInvalidPrivateKey, "private key has no curve or scalar")
	case k.D.Sign() <= 0 || k.D.Cmp(k.Curve.N) >= 0:
		return signError(ErrInvalidPrivateKey,
			fmt.Sprintf("private scalar is outside [1, n-1] of %s", k.Curve.Name))
	}
	return nil
}

// PublicKey derives W = D·G.
func (k *PrivateKey) PublicKey() *PublicKey {
	return &PublicKey{W: k.Curve.ScalarBaseMult(k.D), Curve: k.Curve}
}

// Bytes returns D big-endian at the curve's byte length.
func (k *PrivateKey) Bytes() []byte {
	return k.D.FillBytes(make([]byte, k.Curve.Size()))
}

// Zero clears the scalar.
func (k *PrivateKey) Zero() {
	if k.D != nil {
		k.D.SetInt64(0)
	}
}

// NewPublicKey checks that w is a point of c other than the identity.
func NewPublicKey(c *curve.Curve, w curve.Point) (*PublicKey, error) {
	p := &PublicKey{W: w, Curve: c}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// ParsePublicKey decodes a compressed (02|03) or uncompressed (04) point.
func ParsePublicKey(c *curve.Curve, b []byte) (*PublicKey, error) {
	w, err := c.DecodePoint(b)
	if err != nil {
		return nil, Error{Err: ErrInvalidPublicKey,
			Description: fmt.Sprintf("cannot decode public key: %v", err)}
	}
	return NewPublicKey(c, w)
}

func (p *PublicKey) validate() error {
	switch {
	case p == nil || p.Curve == nil:
		return signError(ErrInvalidPublicKey, "public key has no curve")
	case p.W.IsInfinity():
		return signError(ErrInvalidPublicKey, "public key is the point at infinity")
	case !p.Curve.IsOnCurve(p.W):
		return signError(ErrInvalidPublicKey,
			fmt.Sprintf("public key is not on %s", p.Curve.Name))
	}
	return nil
}

// SerializeCompressed encodes W as 02|03 ‖ x.
func (p *PublicKey) SerializeCompressed() []byte {
	return p.Curve.EncodePoint(p.W, true)
}

// SerializeUncompressed encodes W as 04 ‖ x ‖ y.
func (p *PublicKey) SerializeUncompressed() []byte {
	return p.Curve.EncodePoint(p.W, false)
}

// IsEqual reports whether both keys hold the same point of the same curve.
func (p *PublicKey) IsEqual(o *PublicKey) bool {
	return p.Curve == o.Curve && p.W.Equal(o.W)
}
