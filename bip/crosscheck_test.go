package bip_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ecschnorr.mleku.dev"
	"ecschnorr.mleku.dev/bip"
	"ecschnorr.mleku.dev/curve"
	"ecschnorr.mleku.dev/digest"
	"ecschnorr.mleku.dev/sigfmt"
)

// The bcrypto flavour and the generalized BIP variant with the bip nonce
// must agree byte for byte.
func TestBcryptoMatchesGeneralizedBIP(t *testing.T) {
	s, err := ecschnorr.New(digest.SHA256, ecschnorr.BIP, sigfmt.RAW)
	require.NoError(t, err)
	for i := 0; i < 16; i++ {
		kp, err := bip.KeyPairGenerate()
		require.NoError(t, err)
		priv, err := ecschnorr.PrivateKeyFromBytes(curve.Secp256k1, kp.Seckey())
		require.NoError(t, err)
		msg := digest.Sum(digest.SHA256, []byte{byte(i)})

		want, err := s.SignBIP(msg, priv, nil)
		require.NoError(t, err)
		got := make([]byte, bip.SignatureSize)
		require.NoError(t, bip.SignBcrypto410(got, msg, kp.Seckey()))
		require.Equal(t, []byte(want.(sigfmt.Bytes)), got)

		require.True(t, bip.VerifyBcrypto410(got, msg, kp.Compressed()))
		require.True(t, s.Verify(msg, sigfmt.Bytes(got), priv.PublicKey()))
		require.Equal(t, kp.Compressed(), priv.PublicKey().SerializeCompressed())
	}
}
