// Package curve provides prime-field arithmetic and the group law of
// short-Weierstrass curves y² = x³ + ax + b over big integers, along with the
// named curve parameters the signers run on.
package curve

import (
	"crypto/elliptic"
	"errors"
	"math/big"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
)

var (
	// ErrUnknownCurve is returned by ByName for unregistered names.
	ErrUnknownCurve = errors.New("unknown curve")
	// ErrPointNotOnCurve is returned when decoded coordinates do not satisfy
	// the curve equation.
	ErrPointNotOnCurve = errors.New("point is not on the curve")
	// ErrInvalidPointEncoding is returned for malformed point encodings.
	ErrInvalidPointEncoding = errors.New("invalid point encoding")
	// ErrIntTooLarge is returned when an integer does not fit the requested
	// width.
	ErrIntTooLarge = errors.New("integer too large for encoding width")
)

// Curve holds the read-only domain parameters of a short-Weierstrass curve.
// Curves are shared by every key and signer that uses them and must not be
// modified after construction.
type Curve struct {
	Name    string
	P       *big.Int // field prime
	N       *big.Int // order of G
	A, B    *big.Int // equation coefficients, reduced mod P
	G       Point
	BitSize int

	pMinus2  *big.Int
	legendre *big.Int // (p-1)/2
	sqrtExp  *big.Int // (p+1)/4, nil unless p ≡ 3 mod 4
}

// New builds a curve from its parameters. a and b are reduced mod p.
func New(name string, p, n, a, b, gx, gy *big.Int, bitSize int) *Curve {
	c := &Curve{
		Name:    name,
		P:       new(big.Int).Set(p),
		N:       new(big.Int).Set(n),
		A:       new(big.Int).Mod(a, p),
		B:       new(big.Int).Mod(b, p),
		G:       NewPoint(gx, gy),
		BitSize: bitSize,
	}
	one := big.NewInt(1)
	c.pMinus2 = new(big.Int).Sub(p, big.NewInt(2))
	c.legendre = new(big.Int).Rsh(new(big.Int).Sub(p, one), 1)
	if new(big.Int).And(p, big.NewInt(3)).Int64() == 3 {
		c.sqrtExp = new(big.Int).Rsh(new(big.Int).Add(p, one), 2)
	}
	return c
}

func fromParams(name string, params *elliptic.CurveParams, a *big.Int) *Curve {
	return New(name, params.P, params.N, a, params.B, params.Gx, params.Gy,
		params.BitSize)
}

var (
	// Secp256k1 is the Koblitz curve used by Bitcoin, a = 0, b = 7.
	Secp256k1 = fromParams("secp256k1", btcec.S256().Params(), big.NewInt(0))
	// P256 is NIST P-256 (secp256r1), a = -3.
	P256 = fromParams("secp256r1", elliptic.P256().Params(), big.NewInt(-3))
)

var registry = map[string]*Curve{
	"secp256k1":  Secp256k1,
	"secp256r1":  P256,
	"p-256":      P256,
	"p256":       P256,
	"nist-p256":  P256,
	"prime256v1": P256,
}

// ByName looks up a curve by one of its common names, case insensitively.
func ByName(name string) (*Curve, error) {
	if c, ok := registry[strings.ToLower(name)]; ok {
		return c, nil
	}
	return nil, ErrUnknownCurve
}

// Size is the byte length of a field element or scalar of the curve.
func (c *Curve) Size() int { return (c.BitSize + 7) >> 3 }

// inv computes a⁻¹ mod p as a^(p-2), p being prime.
func (c *Curve) inv(a *big.Int) *big.Int {
	return new(big.Int).Exp(a, c.pMinus2, c.P)
}

// rhs evaluates x³ + ax + b mod p.
func (c *Curve) rhs(x *big.Int) *big.Int {
	r := new(big.Int).Mul(x, x)
	r.Add(r, c.A)
	r.Mul(r, x)
	r.Add(r, c.B)
	return r.Mod(r, c.P)
}

// IsOnCurve reports whether p is the identity or satisfies the curve
// equation with coordinates in [0, p).
func (c *Curve) IsOnCurve(p Point) bool {
	if p.IsInfinity() {
		return true
	}
	if p.x.Sign() < 0 || p.x.Cmp(c.P) >= 0 || p.y.Sign() < 0 || p.y.Cmp(c.P) >= 0 {
		return false
	}
	y2 := new(big.Int).Mul(p.y, p.y)
	y2.Mod(y2, c.P)
	return y2.Cmp(c.rhs(p.x)) == 0
}

// Negate returns -p.
func (c *Curve) Negate(p Point) Point {
	if p.IsInfinity() {
		return p
	}
	y := new(big.Int).Sub(c.P, p.y)
	y.Mod(y, c.P)
	return Point{x: new(big.Int).Set(p.x), y: y}
}

// Add returns p1 + p2 under the group law.
func (c *Curve) Add(p1, p2 Point) Point {
	if p1.IsInfinity() {
		return p2
	}
	if p2.IsInfinity() {
		return p1
	}
	if p1.x.Cmp(p2.x) == 0 {
		sum := new(big.Int).Add(p1.y, p2.y)
		if sum.Mod(sum, c.P).Sign() == 0 {
			return Infinity()
		}
		return c.Double(p1)
	}
	// λ = (y2 - y1) / (x2 - x1)
	num := new(big.Int).Sub(p2.y, p1.y)
	den := new(big.Int).Sub(p2.x, p1.x)
	den.Mod(den, c.P)
	lambda := num.Mul(num, c.inv(den))
	lambda.Mod(lambda, c.P)
	return c.chord(lambda, p1, p2.x)
}

// Double returns 2p using the tangent slope (3x² + a) / 2y.
func (c *Curve) Double(p Point) Point {
	if p.IsInfinity() || p.y.Sign() == 0 {
		return Infinity()
	}
	num := new(big.Int).Mul(p.x, p.x)
	num.Mul(num, big.NewInt(3))
	num.Add(num, c.A)
	den := new(big.Int).Lsh(p.y, 1)
	den.Mod(den, c.P)
	lambda := num.Mul(num, c.inv(den))
	lambda.Mod(lambda, c.P)
	return c.chord(lambda, p, p.x)
}

// chord finishes an addition given the slope: x3 = λ² - x1 - x2,
// y3 = λ(x1 - x3) - y1.
func (c *Curve) chord(lambda *big.Int, p1 Point, x2 *big.Int) Point {
	x3 := new(big.Int).Mul(lambda, lambda)
	x3.Sub(x3, p1.x)
	x3.Sub(x3, x2)
	x3.Mod(x3, c.P)
	y3 := new(big.Int).Sub(p1.x, x3)
	y3.Mul(y3, lambda)
	y3.Sub(y3, p1.y)
	y3.Mod(y3, c.P)
	return Point{x: x3, y: y3}
}

// Sub returns p1 - p2.
func (c *Curve) Sub(p1, p2 Point) Point { return c.Add(p1, c.Negate(p2)) }

// ScalarMult returns k·p by double-and-add over the bits of k, least
// significant first. k is not reduced mod N, so multiplying a point of order
// N by N exercises the full group law and lands on the identity.
func (c *Curve) ScalarMult(p Point, k *big.Int) Point {
	if k.Sign() < 0 {
		return c.Negate(c.ScalarMult(p, new(big.Int).Neg(k)))
	}
	r := Infinity()
	for i := 0; i < k.BitLen(); i++ {
		if k.Bit(i) == 1 {
			r = c.Add(r, p)
		}
		p = c.Double(p)
	}
	return r
}

// ScalarBaseMult returns k·G.
func (c *Curve) ScalarBaseMult(k *big.Int) Point { return c.ScalarMult(c.G, k) }

// IsQuadraticResidue applies Euler's criterion, y^((p-1)/2) ≡ 1 mod p. Zero
// is not a residue under this test.
func (c *Curve) IsQuadraticResidue(y *big.Int) bool {
	return new(big.Int).Exp(y, c.legendre, c.P).Cmp(big.NewInt(1)) == 0
}

// sqrt returns a square root of a mod p, or nil when a is not a square.
func (c *Curve) sqrt(a *big.Int) *big.Int {
	if c.sqrtExp == nil {
		return new(big.Int).ModSqrt(a, c.P)
	}
	y := new(big.Int).Exp(a, c.sqrtExp, c.P)
	y2 := new(big.Int).Mul(y, y)
	if y2.Mod(y2, c.P).Cmp(a) != 0 {
		return nil
	}
	return y
}

// PointFromX recovers a point with the given x coordinate, taking the root
// y = (x³+ax+b)^((p+1)/4) as computed. ok is false when x is out of range or
// no point has that x coordinate.
func (c *Curve) PointFromX(x *big.Int) (p Point, ok bool) {
	if x.Sign() < 0 || x.Cmp(c.P) >= 0 {
		return Infinity(), false
	}
	y := c.sqrt(c.rhs(x))
	if y == nil {
		return Infinity(), false
	}
	return Point{x: new(big.Int).Set(x), y: y}, true
}

// YRecover returns the y coordinate for x with the requested parity.
func (c *Curve) YRecover(x *big.Int, odd bool) (y *big.Int, ok bool) {
	p, ok := c.PointFromX(x)
	if !ok {
		return nil, false
	}
	y = p.y
	if (y.Bit(0) == 1) != odd {
		y.Sub(c.P, y)
		y.Mod(y, c.P)
	}
	return y, true
}
