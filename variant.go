package ecschnorr

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"ecschnorr.mleku.dev/curve"
	"ecschnorr.mleku.dev/digest"
)

// Variant selects the hash input ordering and sign convention of a Schnorr
// signature.
type Variant int

const (
	// ISO is ISO/IEC 14888-3: r = H(Qx ‖ Qy ‖ m), s = k + r·d.
	ISO Variant = iota
	// ISOx is ISO with the x-coordinate only: r = H(Qx ‖ m), s = k + r·d.
	ISOx
	// BSI is BSI TR-03111: r = H(m ‖ Qx), s = k − r·d.
	BSI
	// BIP is the bip-schnorr draft: r = Qx mod n with k negated unless Qy is
	// a quadratic residue, e = H(Qx ‖ comp(W) ‖ m), s = k + e·d.
	BIP
	// Z is the Zilliqa scheme: r = H(comp(Q) ‖ comp(W) ‖ m) mod n,
	// s = k − r·d.
	Z
	// LibSecp is the libsecp256k1 experimental module: Q forced to even y,
	// r = Qx mod n, h = H(r ‖ m), s = k − h·d.
	LibSecp
)

var variantNames = [...]string{"ISO", "ISOx", "BSI", "BIP", "Z", "LIBSECP"}

func (v Variant) String() string {
	if v < 0 || int(v) >= len(variantNames) {
		return fmt.Sprintf("Variant(%d)", int(v))
	}
	return variantNames[v]
}

// ParseVariant maps a variant name to its Variant, case insensitively.
func ParseVariant(name string) (Variant, error) {
	for i, n := range variantNames {
		if strings.EqualFold(n, name) {
			return Variant(i), nil
		}
	}
	return 0, signError(ErrUnsupportedVariant,
		fmt.Sprintf("unknown Schnorr variant %q", name))
}

// errDegenerate marks an attempt whose r or s is zero; the signer draws a
// new nonce when its source allows it.
var errDegenerate = errors.New("degenerate signature")

// scheme is the per-variant part of signing and verification. The signer
// resolves its scheme once, at construction.
type scheme interface {
	sign(c *curve.Curve, h digest.Func, d *big.Int, w curve.Point, k *big.Int,
		msg []byte) (r, s *big.Int, err error)
	verify(c *curve.Curve, h digest.Func, w curve.Point, r, s *big.Int,
		msg []byte) bool
	// retry reports whether a degenerate attempt is retried with a new
	// nonce rather than returned.
	retry() bool
}

func schemeFor(v Variant) (scheme, error) {
	switch v {
	case ISO:
		return isoScheme{}, nil
	case ISOx:
		return isoScheme{xOnly: true}, nil
	case BSI:
		return bsiScheme{}, nil
	case BIP:
		return bipScheme{}, nil
	case Z:
		return zScheme{}, nil
	case LibSecp:
		return libsecpScheme{}, nil
	}
	return nil, signError(ErrUnsupportedVariant, fmt.Sprintf("unknown Schnorr variant %s", v))
}

func hashInt(h digest.Func, parts ...[]byte) *big.Int {
	return new(big.Int).SetBytes(digest.Sum(h, parts...))
}

// digestR hashes parts into an r that must fit the curve's byte length.
func digestR(c *curve.Curve, h digest.Func, parts ...[]byte) (*big.Int, error) {
	r := hashInt(h, parts...)
	if r.BitLen() > 8*c.Size() {
		return nil, signError(ErrDigestTooWide,
			fmt.Sprintf("digest of %d bits does not fit %s", r.BitLen(), c.Name))
	}
	return r, nil
}

// scalarBytes writes v, already bounded by the curve size, at that size.
func scalarBytes(c *curve.Curve, v *big.Int) []byte {
	return v.FillBytes(make([]byte, c.Size()))
}

func mod(v, n *big.Int) *big.Int { return v.Mod(v, n) }

// plus returns (k + e·d) mod n.
func plus(k, e, d, n *big.Int) *big.Int {
	s := new(big.Int).Mul(e, d)
	return mod(s.Add(s, k), n)
}

// minus returns (k − e·d) mod n.
func minus(k, e, d, n *big.Int) *big.Int {
	s := new(big.Int).Mul(e, d)
	return mod(s.Sub(k, s), n)
}

func degenerate(r, s *big.Int) bool { return r.Sign() == 0 || s.Sign() == 0 }

type isoScheme struct{ xOnly bool }

func (i isoScheme) input(c *curve.Curve, q curve.Point, msg []byte) [][]byte {
	if i.xOnly {
		return [][]byte{c.FieldBytes(q.X()), msg}
	}
	return [][]byte{c.FieldBytes(q.X()), c.FieldBytes(q.Y()), msg}
}

func (i isoScheme) sign(c *curve.Curve, h digest.Func, d *big.Int, _ curve.Point,
	k *big.Int, msg []byte) (r, s *big.Int, err error) {

	q := c.ScalarBaseMult(k)
	if r, err = digestR(c, h, i.input(c, q, msg)...); err != nil {
		return
	}
	s = plus(k, r, d, c.N)
	if degenerate(r, s) {
		return nil, nil, errDegenerate
	}
	return
}

func (i isoScheme) verify(c *curve.Curve, h digest.Func, w curve.Point, r, s *big.Int,
	msg []byte) bool {

	q := c.Sub(c.ScalarBaseMult(s), c.ScalarMult(w, r))
	if q.IsInfinity() {
		return false
	}
	return hashInt(h, i.input(c, q, msg)...).Cmp(r) == 0
}

func (isoScheme) retry() bool { return true }

type bsiScheme struct{}

func (bsiScheme) sign(c *curve.Curve, h digest.Func, d *big.Int, _ curve.Point,
	k *big.Int, msg []byte) (r, s *big.Int, err error) {

	q := c.ScalarBaseMult(k)
	if r, err = digestR(c, h, msg, c.FieldBytes(q.X())); err != nil {
		return
	}
	s = minus(k, r, d, c.N)
	if degenerate(r, s) {
		return nil, nil, errDegenerate
	}
	return
}

func (bsiScheme) verify(c *curve.Curve, h digest.Func, w curve.Point, r, s *big.Int,
	msg []byte) bool {

	q := c.Add(c.ScalarBaseMult(s), c.ScalarMult(w, r))
	if q.IsInfinity() {
		return false
	}
	return hashInt(h, msg, c.FieldBytes(q.X())).Cmp(r) == 0
}

func (bsiScheme) retry() bool { return true }

type zScheme struct{}

func (zScheme) challenge(c *curve.Curve, h digest.Func, q, w curve.Point, msg []byte) *big.Int {
	return mod(hashInt(h, c.Compress(q), c.Compress(w), msg), c.N)
}

func (z zScheme) sign(c *curve.Curve, h digest.Func, d *big.Int, w curve.Point,
	k *big.Int, msg []byte) (r, s *big.Int, err error) {

	r = z.challenge(c, h, c.ScalarBaseMult(k), w, msg)
	s = minus(k, r, d, c.N)
	if degenerate(r, s) {
		return nil, nil, errDegenerate
	}
	return
}

func (z zScheme) verify(c *curve.Curve, h digest.Func, w curve.Point, r, s *big.Int,
	msg []byte) bool {

	q := c.Add(c.ScalarBaseMult(s), c.ScalarMult(w, r))
	if q.IsInfinity() {
		return false
	}
	return z.challenge(c, h, q, w, msg).Cmp(r) == 0
}

func (zScheme) retry() bool { return true }

type bipScheme struct{}

func (bipScheme) sign(c *curve.Curve, h digest.Func, d *big.Int, w curve.Point,
	k *big.Int, msg []byte) (r, s *big.Int, err error) {

	q := c.ScalarBaseMult(k)
	if !c.IsQuadraticResidue(q.Y()) {
		k = new(big.Int).Sub(c.N, k)
	}
	e := hashInt(h, c.FieldBytes(q.X()), c.Compress(w), msg)
	r = mod(q.X(), c.N)
	s = plus(k, e, d, c.N)
	return
}

func (bipScheme) verify(c *curve.Curve, h digest.Func, w curve.Point, r, s *big.Int,
	msg []byte) bool {

	if r.Cmp(c.P) >= 0 {
		return false
	}
	e := mod(hashInt(h, scalarBytes(c, r), c.Compress(w), msg), c.N)
	q := c.Add(c.ScalarBaseMult(s), c.ScalarMult(w, e.Sub(c.N, e)))
	if q.IsInfinity() || !c.IsQuadraticResidue(q.Y()) {
		return false
	}
	return mod(q.X(), c.N).Cmp(r) == 0
}

func (bipScheme) retry() bool { return false }

type libsecpScheme struct{}

func (libsecpScheme) sign(c *curve.Curve, h digest.Func, d *big.Int, _ curve.Point,
	k *big.Int, msg []byte) (r, s *big.Int, err error) {

	q := c.ScalarBaseMult(k)
	if q.IsOdd() {
		k = new(big.Int).Sub(c.N, k)
		q = c.Negate(q)
	}
	r = mod(q.X(), c.N)
	e := hashInt(h, scalarBytes(c, r), msg)
	s = minus(k, e, d, c.N)
	if degenerate(r, s) {
		return nil, nil, errDegenerate
	}
	return
}

func (libsecpScheme) verify(c *curve.Curve, h digest.Func, w curve.Point, r, s *big.Int,
	msg []byte) bool {

	e := hashInt(h, scalarBytes(c, r), msg)
	if e.Sign() == 0 || e.Cmp(c.N) > 0 {
		return false
	}
	q := c.Add(c.ScalarBaseMult(s), c.ScalarMult(w, e))
	if q.IsInfinity() {
		return false
	}
	return mod(q.X(), c.N).Cmp(r) == 0
}

func (libsecpScheme) retry() bool { return true }
