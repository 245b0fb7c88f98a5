package sigfmt

import (
	"encoding/hex"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	orderK1, _ = new(big.Int).SetString("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141", 16)
	isoR, _    = new(big.Int).SetString("fcf3f8f9f2dd1cd83b81ccd22a856d08c8de9e5907bb84e2f0af1eb3f6149990", 16)
	isoS, _    = new(big.Int).SetString("d81af402cee14d31e6c6196adb004d11a3a2a91516c125529865c54c6cdb9686", 16)
)

func unhex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestRoundTrip(t *testing.T) {
	nMinus1 := new(big.Int).Sub(orderK1, big.NewInt(1))
	pairs := [][2]*big.Int{
		{big.NewInt(1), nMinus1},
		{isoR, isoS},
		{big.NewInt(0x80), big.NewInt(0x7f)},
		{nMinus1, big.NewInt(1)},
		{big.NewInt(0), big.NewInt(5)},
	}
	for _, f := range []Format{DER, BTUPLE, ITUPLE, RAW, EDDSA} {
		for _, size := range []int{0, 32} {
			for _, p := range pairs {
				enc, err := Encode(p[0], p[1], f, size)
				require.NoError(t, err, "%s encode", f)
				r, s, err := Decode(enc, f)
				require.NoError(t, err, "%s decode", f)
				assert.Equal(t, 0, r.Cmp(p[0]), "%s r: %x != %x", f, r, p[0])
				assert.Equal(t, 0, s.Cmp(p[1]), "%s s: %x != %x", f, s, p[1])
			}
		}
	}
}

func TestDERLayout(t *testing.T) {
	enc, err := Encode(isoR, isoS, DER, 0)
	require.NoError(t, err)
	assert.Equal(t,
		"3046022100fcf3f8f9f2dd1cd83b81ccd22a856d08c8de9e5907bb84e2f0af1eb3f6149990"+
			"022100d81af402cee14d31e6c6196adb004d11a3a2a91516c125529865c54c6cdb9686",
		hex.EncodeToString(enc.(Bytes)))

	enc, err = Encode(big.NewInt(1), new(big.Int).Sub(orderK1, big.NewInt(1)), DER, 0)
	require.NoError(t, err)
	assert.Equal(t,
		"3026020101022100fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364140",
		hex.EncodeToString(enc.(Bytes)))

	enc, err = Encode(big.NewInt(0x80), big.NewInt(0x7f), DER, 0)
	require.NoError(t, err)
	assert.Equal(t, "30070202008002017f", hex.EncodeToString(enc.(Bytes)))
}

func TestFixedWidthLayout(t *testing.T) {
	r, s := big.NewInt(0x0102), big.NewInt(0x03)
	enc, err := Encode(r, s, RAW, 0)
	require.NoError(t, err)
	assert.Equal(t, Bytes{0x01, 0x02, 0x00, 0x03}, enc)

	enc, err = Encode(r, s, EDDSA, 0)
	require.NoError(t, err)
	assert.Equal(t, Bytes{0x02, 0x01, 0x03, 0x00}, enc)

	enc, err = Encode(r, s, RAW, 4)
	require.NoError(t, err)
	assert.Len(t, enc, 8)

	_, err = Encode(r, s, RAW, 1)
	assert.True(t, errors.Is(err, ErrValueTooLarge))

	enc, err = Encode(r, s, BTUPLE, 0)
	require.NoError(t, err)
	assert.Equal(t, ByteTuple{{0x01, 0x02}, {0x03}}, enc)
}

func TestEncodeRejects(t *testing.T) {
	_, err := Encode(big.NewInt(-1), big.NewInt(1), DER, 0)
	assert.True(t, errors.Is(err, ErrNegativeValue))
	_, err = Encode(big.NewInt(1), big.NewInt(1), Format(42), 0)
	assert.True(t, errors.Is(err, ErrUnknownFormat))
	huge := new(big.Int).Lsh(big.NewInt(1), 8*200)
	_, err = Encode(huge, huge, DER, 0)
	assert.True(t, errors.Is(err, ErrValueTooLarge))
}

func TestDERDecodeMalformed(t *testing.T) {
	good := unhex(t, "30070202008002017f")
	testCases := []struct {
		name string
		sig  []byte
		kind ErrorKind
	}{
		{"empty", nil, ErrSigTooShort},
		{"header_only", good[:5], ErrSigTooShort},
		{"truncated", good[:len(good)-1], ErrSigInvalidDataLen},
		{"over_length", append(append([]byte(nil), good...), 0x00), ErrSigInvalidDataLen},
		{"wrong_seq", unhex(t, "31070202008002017f"), ErrSigInvalidSeqID},
		{"wrong_r_tag", unhex(t, "30070302008002017f"), ErrSigInvalidRIntID},
		{"r_len_past_end", unhex(t, "30070240008002017f"), ErrSigInvalidRLen},
		{"wrong_s_tag", unhex(t, "30070202008003017f"), ErrSigInvalidSIntID},
		{"s_len_short", unhex(t, "30070202008002007f"), ErrSigInvalidSLen},
		{"s_len_past_end", unhex(t, "30070202008002ff7f"), ErrSigInvalidSLen},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, s, err := Decode(Bytes(tc.sig), DER)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.kind), "got %v", err)
			assert.Nil(t, r)
			assert.Nil(t, s)
		})
	}
}

// Every prefix and every single-byte extension of a valid DER signature must
// be rejected without panicking.
func TestDERDecodeFuzz(t *testing.T) {
	enc, err := Encode(isoR, isoS, DER, 0)
	require.NoError(t, err)
	good := []byte(enc.(Bytes))
	for i := 0; i < len(good); i++ {
		_, _, err := Decode(Bytes(good[:i]), DER)
		assert.Error(t, err, "prefix %d accepted", i)
	}
	for b := 0; b < 256; b++ {
		_, _, err := Decode(Bytes(append(append([]byte(nil), good...), byte(b))), DER)
		assert.Error(t, err, "extension %#x accepted", b)
	}
	for i := range good {
		for _, v := range []byte{0x00, 0x01, 0x7f, 0x80, 0xff} {
			mutated := append([]byte(nil), good...)
			mutated[i] = v
			assert.NotPanics(t, func() { _, _, _ = Decode(Bytes(mutated), DER) })
		}
	}
}

func TestDecodeMismatch(t *testing.T) {
	_, _, err := Decode(IntTuple{big.NewInt(1), big.NewInt(2)}, DER)
	assert.True(t, errors.Is(err, ErrFormatMismatch))
	_, _, err = Decode(Bytes{1, 2}, ITUPLE)
	assert.True(t, errors.Is(err, ErrFormatMismatch))
	_, _, err = Decode(IntTuple{nil, big.NewInt(2)}, ITUPLE)
	assert.True(t, errors.Is(err, ErrFormatMismatch))
	_, _, err = Decode(Bytes{1, 2, 3}, RAW)
	assert.True(t, errors.Is(err, ErrSigInvalidLen))
	_, _, err = Decode(Bytes{}, EDDSA)
	assert.True(t, errors.Is(err, ErrSigInvalidLen))
}

func TestParseFormat(t *testing.T) {
	for _, f := range []Format{DER, BTUPLE, ITUPLE, RAW, EDDSA} {
		got, err := ParseFormat(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
	got, err := ParseFormat("raw")
	require.NoError(t, err)
	assert.Equal(t, RAW, got)
	_, err = ParseFormat("PEM")
	assert.True(t, errors.Is(err, ErrUnknownFormat))
	assert.Equal(t, "Format(9)", Format(9).String())
	assert.True(t, EDDSA.FixedWidth())
	assert.False(t, DER.FixedWidth())
}

func TestErrorKind(t *testing.T) {
	err := formatError(ErrSigTooShort, "short")
	assert.Equal(t, "short", err.Error())
	assert.Equal(t, "ErrSigTooShort", ErrSigTooShort.Error())
	var e Error
	assert.True(t, errors.As(err, &e))
	assert.Equal(t, ErrSigTooShort, e.Err)
}
