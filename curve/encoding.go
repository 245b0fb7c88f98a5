package curve

import (
	"math/big"
)

// Tag bytes for encoded curve points.
const (
	TagCompressedEven = 0x02
	TagCompressedOdd  = 0x03
	TagUncompressed   = 0x04
)

// IntToBytes writes v big-endian into exactly size bytes.
func IntToBytes(v *big.Int, size int) ([]byte, error) {
	if v.Sign() < 0 || (v.BitLen()+7)>>3 > size {
		return nil, ErrIntTooLarge
	}
	return v.FillBytes(make([]byte, size)), nil
}

// BytesToInt reads b as an unsigned big-endian integer.
func BytesToInt(b []byte) *big.Int { return new(big.Int).SetBytes(b) }

// FieldBytes encodes a field element at the curve's byte length. Values in
// [0, p) always fit.
func (c *Curve) FieldBytes(v *big.Int) []byte {
	return new(big.Int).Mod(v, c.P).FillBytes(make([]byte, c.Size()))
}

// Compress encodes p as 0x02|0x03 ‖ x, the prefix selected by the low bit of
// y. The identity has no encoding and yields nil.
func (c *Curve) Compress(p Point) []byte {
	return c.EncodePoint(p, true)
}

// EncodePoint encodes p in compressed (0x02|0x03 ‖ x) or uncompressed
// (0x04 ‖ x ‖ y) form.
func (c *Curve) EncodePoint(p Point, compressed bool) []byte {
	if p.IsInfinity() {
		return nil
	}
	size := c.Size()
	if compressed {
		out := make([]byte, 1, 1+size)
		out[0] = TagCompressedEven
		if p.IsOdd() {
			out[0] = TagCompressedOdd
		}
		return append(out, c.FieldBytes(p.x)...)
	}
	out := make([]byte, 1, 1+2*size)
	out[0] = TagUncompressed
	out = append(out, c.FieldBytes(p.x)...)
	return append(out, c.FieldBytes(p.y)...)
}

// DecodePoint parses a compressed or uncompressed point encoding and checks
// the result lies on the curve.
func (c *Curve) DecodePoint(b []byte) (Point, error) {
	size := c.Size()
	if len(b) == 0 {
		return Infinity(), ErrInvalidPointEncoding
	}
	switch b[0] {
	case TagCompressedEven, TagCompressedOdd:
		if len(b) != 1+size {
			return Infinity(), ErrInvalidPointEncoding
		}
		x := BytesToInt(b[1:])
		y, ok := c.YRecover(x, b[0] == TagCompressedOdd)
		if !ok {
			return Infinity(), ErrPointNotOnCurve
		}
		return Point{x: x, y: y}, nil
	case TagUncompressed:
		if len(b) != 1+2*size {
			return Infinity(), ErrInvalidPointEncoding
		}
		p := Point{x: BytesToInt(b[1 : 1+size]), y: BytesToInt(b[1+size:])}
		if !c.IsOnCurve(p) {
			return Infinity(), ErrPointNotOnCurve
		}
		return p, nil
	}
	return Infinity(), ErrInvalidPointEncoding
}
