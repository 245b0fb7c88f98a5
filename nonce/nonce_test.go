package nonce

import (
	"errors"
	"hash"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecschnorr.mleku.dev/curve"
	"ecschnorr.mleku.dev/digest"
)

// zeroHash digests everything to 32 zero bytes.
type zeroHash struct{}

func (zeroHash) Write(p []byte) (int, error) { return len(p), nil }
func (zeroHash) Sum(b []byte) []byte         { return append(b, make([]byte, 32)...) }
func (zeroHash) Reset()                      {}
func (zeroHash) Size() int                   { return 32 }
func (zeroHash) BlockSize() int              { return 64 }

func newZeroHash() hash.Hash { return zeroHash{} }

func TestRandomRange(t *testing.T) {
	c := curve.Secp256k1
	g, err := Random{}.Generator(c, big.NewInt(1), nil)
	require.NoError(t, err)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		k, err := g.Next()
		require.NoError(t, err)
		assert.True(t, k.Sign() > 0 && k.Cmp(c.N) < 0, "k out of range: %x", k)
		seen[k.String()] = true
	}
	assert.Len(t, seen, 100)

	// With n = 2 the only valid nonce is 1.
	tiny := curve.New("tiny", big.NewInt(7), big.NewInt(2), big.NewInt(0),
		big.NewInt(1), big.NewInt(0), big.NewInt(1), 3)
	g, err = Random{}.Generator(tiny, big.NewInt(1), nil)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		k, err := g.Next()
		require.NoError(t, err)
		assert.Equal(t, int64(1), k.Int64())
	}
}

func TestFixed(t *testing.T) {
	k := big.NewInt(42)
	g, err := Fixed{K: k}.Generator(curve.Secp256k1, big.NewInt(1), nil)
	require.NoError(t, err)
	got, err := g.Next()
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.Int64())
	// The caller's value is not shared.
	got.SetInt64(7)
	assert.Equal(t, int64(42), k.Int64())
	_, err = g.Next()
	assert.True(t, errors.Is(err, ErrExhausted))
}

func TestSequence(t *testing.T) {
	s := Sequence{big.NewInt(1), big.NewInt(2), big.NewInt(3)}
	for round := 0; round < 2; round++ {
		g, err := s.Generator(nil, nil, nil)
		require.NoError(t, err)
		for want := int64(1); want <= 3; want++ {
			k, err := g.Next()
			require.NoError(t, err)
			assert.Equal(t, want, k.Int64())
		}
		_, err = g.Next()
		assert.True(t, errors.Is(err, ErrExhausted))
	}
	g, err := Sequence(nil).Generator(nil, nil, nil)
	require.NoError(t, err)
	_, err = g.Next()
	assert.True(t, errors.Is(err, ErrExhausted))
}

func TestRFC6979MatchesDRBG(t *testing.T) {
	c := curve.P256
	d := big.NewInt(0x1234567)
	msg := []byte("sample")
	g, err := RFC6979{Hash: digest.SHA256}.Generator(c, d, msg)
	require.NoError(t, err)
	drbg := digest.NewRFC6979(digest.SHA256, c.N, d, msg)
	for i := 0; i < 3; i++ {
		k, err := g.Next()
		require.NoError(t, err)
		assert.Equal(t, 0, k.Cmp(drbg.Next()), "candidate %d", i)
	}

	// Separate generators start from the same state.
	g2, err := RFC6979{Hash: digest.SHA256}.Generator(c, d, msg)
	require.NoError(t, err)
	a, _ := g2.Next()
	g3, err := RFC6979{Hash: digest.SHA256}.Generator(c, d, msg)
	require.NoError(t, err)
	b, _ := g3.Next()
	assert.Equal(t, 0, a.Cmp(b))
}

func TestBIP(t *testing.T) {
	c := curve.Secp256k1
	d := big.NewInt(3)
	msg := make([]byte, 32)
	suffix := []byte("0123456789abcdefXYZ")

	g, err := BIP{Hash: digest.SHA256}.Generator(c, d, msg)
	require.NoError(t, err)
	k, err := g.Next()
	require.NoError(t, err)
	want := new(big.Int).SetBytes(digest.Sum(digest.SHA256, c.FieldBytes(d), msg))
	want.Mod(want, c.N)
	assert.Equal(t, 0, k.Cmp(want))
	_, err = g.Next()
	assert.True(t, errors.Is(err, ErrExhausted))

	// Only the first 16 bytes of the suffix take part.
	g, err = BIP{Hash: digest.SHA256, Suffix: suffix}.Generator(c, d, msg)
	require.NoError(t, err)
	long, err := g.Next()
	require.NoError(t, err)
	g, err = BIP{Hash: digest.SHA256, Suffix: suffix[:16]}.Generator(c, d, msg)
	require.NoError(t, err)
	short, err := g.Next()
	require.NoError(t, err)
	assert.Equal(t, 0, long.Cmp(short))
	assert.NotEqual(t, 0, long.Cmp(k))

	_, err = BIP{Hash: newZeroHash}.Generator(c, d, msg)
	assert.True(t, errors.Is(err, ErrZeroNonce))
}
