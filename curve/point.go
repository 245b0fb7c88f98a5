package curve

import (
	"math/big"
)

// Point is an immutable point of a short-Weierstrass curve. The zero value is
// the point at infinity (the group identity); any other Point carries affine
// coordinates. Coordinates are copied in and out so no caller can mutate a
// Point after construction.
type Point struct {
	x, y *big.Int
}

// Infinity returns the group identity.
func Infinity() Point { return Point{} }

// NewPoint returns the affine point (x, y). It does not check the curve
// equation, use Curve.IsOnCurve for that.
func NewPoint(x, y *big.Int) Point {
	return Point{x: new(big.Int).Set(x), y: new(big.Int).Set(y)}
}

// IsInfinity reports whether p is the identity.
func (p Point) IsInfinity() bool { return p.x == nil }

// X returns a copy of the affine x coordinate, or nil for the identity.
func (p Point) X() *big.Int {
	if p.IsInfinity() {
		return nil
	}
	return new(big.Int).Set(p.x)
}

// Y returns a copy of the affine y coordinate, or nil for the identity.
func (p Point) Y() *big.Int {
	if p.IsInfinity() {
		return nil
	}
	return new(big.Int).Set(p.y)
}

// Equal reports whether p and q are the same point.
func (p Point) Equal(q Point) bool {
	if p.IsInfinity() || q.IsInfinity() {
		return p.IsInfinity() == q.IsInfinity()
	}
	return p.x.Cmp(q.x) == 0 && p.y.Cmp(q.y) == 0
}

// IsOdd reports whether the y coordinate is odd. The identity is even.
func (p Point) IsOdd() bool {
	return !p.IsInfinity() && p.y.Bit(0) == 1
}

// String renders the point for logs and test failures.
func (p Point) String() string {
	if p.IsInfinity() {
		return "(infinity)"
	}
	return "(" + p.x.Text(16) + ", " + p.y.Text(16) + ")"
}
