// Package sigfmt encodes and decodes the (r, s) pair of a signature in the
// wire formats the signers support: DER, byte and integer tuples, and
// fixed-width big and little endian concatenations.
package sigfmt

import (
	"fmt"
	"math/big"
	"strings"
)

// Format selects a signature encoding.
type Format int

const (
	// DER is 30 LEN 02 LEN(r) r 02 LEN(s) s with minimal big-endian
	// integers.
	DER Format = iota
	// BTUPLE is a pair of minimal big-endian byte strings.
	BTUPLE
	// ITUPLE is a pair of integers.
	ITUPLE
	// RAW is big-endian r ‖ s at a fixed width.
	RAW
	// EDDSA is little-endian r ‖ s at a fixed width.
	EDDSA
)

var formatNames = [...]string{"DER", "BTUPLE", "ITUPLE", "RAW", "EDDSA"}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// Valid reports whether f is a known format.
func (f Format) Valid() bool { return f >= DER && f <= EDDSA }

// FixedWidth reports whether f pads r and s to a common width.
func (f Format) FixedWidth() bool { return f == RAW || f == EDDSA }

// ParseFormat maps a format name to its Format, case insensitively.
func ParseFormat(name string) (Format, error) {
	for i, n := range formatNames {
		if strings.EqualFold(n, name) {
			return Format(i), nil
		}
	}
	return 0, formatError(ErrUnknownFormat,
		fmt.Sprintf("unknown signature format %q", name))
}

// Encoded is a serialized signature: Bytes for DER, RAW and EDDSA, ByteTuple
// for BTUPLE and IntTuple for ITUPLE.
type Encoded interface {
	encoded()
}

// Bytes is a signature serialized as a single byte string.
type Bytes []byte

// ByteTuple is the BTUPLE form, r and s as minimal big-endian byte strings.
type ByteTuple [2][]byte

// IntTuple is the ITUPLE form.
type IntTuple [2]*big.Int

func (Bytes) encoded()     {}
func (ByteTuple) encoded() {}
func (IntTuple) encoded()  {}

func minimalBytes(v *big.Int) []byte { return v.Bytes() }

func width(r, s *big.Int) int {
	bits := r.BitLen()
	if s.BitLen() > bits {
		bits = s.BitLen()
	}
	return (bits + 7) >> 3
}

func fixed(v *big.Int, size int) ([]byte, error) {
	if (v.BitLen()+7)>>3 > size {
		return nil, formatError(ErrValueTooLarge,
			fmt.Sprintf("value of %d bits does not fit %d bytes", v.BitLen(), size))
	}
	return v.FillBytes(make([]byte, size)), nil
}

func reverse(b []byte) []byte {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return b
}

// Encode serializes (r, s) in format f. size is the width of each half for
// RAW and EDDSA; zero selects the smallest width that fits both values. It is
// ignored by the other formats.
func Encode(r, s *big.Int, f Format, size int) (Encoded, error) {
	if r.Sign() < 0 || s.Sign() < 0 {
		return nil, formatError(ErrNegativeValue, "signature values must not be negative")
	}
	switch f {
	case DER:
		b, err := encodeDER(r, s)
		if err != nil {
			return nil, err
		}
		return Bytes(b), nil
	case BTUPLE:
		return ByteTuple{minimalBytes(r), minimalBytes(s)}, nil
	case ITUPLE:
		return IntTuple{new(big.Int).Set(r), new(big.Int).Set(s)}, nil
	case RAW, EDDSA:
		if size == 0 {
			size = width(r, s)
		}
		rb, err := fixed(r, size)
		if err != nil {
			return nil, err
		}
		sb, err := fixed(s, size)
		if err != nil {
			return nil, err
		}
		if f == EDDSA {
			reverse(rb)
			reverse(sb)
		}
		return Bytes(append(rb, sb...)), nil
	}
	return nil, formatError(ErrUnknownFormat, fmt.Sprintf("unknown signature format %s", f))
}

// Decode parses sig as format f. Malformed input yields an error and never
// reads past the declared or actual length of sig.
func Decode(sig Encoded, f Format) (r, s *big.Int, err error) {
	switch f {
	case DER, RAW, EDDSA:
		b, ok := sig.(Bytes)
		if !ok {
			return nil, nil, mismatch(sig, f)
		}
		if f == DER {
			return decodeDER(b)
		}
		if len(b) == 0 || len(b)%2 != 0 {
			return nil, nil, formatError(ErrSigInvalidLen,
				fmt.Sprintf("fixed-width signature has invalid length %d", len(b)))
		}
		half := len(b) / 2
		rb := append([]byte(nil), b[:half]...)
		sb := append([]byte(nil), b[half:]...)
		if f == EDDSA {
			reverse(rb)
			reverse(sb)
		}
		return new(big.Int).SetBytes(rb), new(big.Int).SetBytes(sb), nil
	case BTUPLE:
		t, ok := sig.(ByteTuple)
		if !ok {
			return nil, nil, mismatch(sig, f)
		}
		return new(big.Int).SetBytes(t[0]), new(big.Int).SetBytes(t[1]), nil
	case ITUPLE:
		t, ok := sig.(IntTuple)
		if !ok || t[0] == nil || t[1] == nil {
			return nil, nil, mismatch(sig, f)
		}
		return new(big.Int).Set(t[0]), new(big.Int).Set(t[1]), nil
	}
	return nil, nil, formatError(ErrUnknownFormat, fmt.Sprintf("unknown signature format %s", f))
}

func mismatch(sig Encoded, f Format) error {
	return formatError(ErrFormatMismatch,
		fmt.Sprintf("%T cannot be decoded as %s", sig, f))
}
