package bench

import (
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"lukechampine.com/frand"

	"ecschnorr.mleku.dev"
	"ecschnorr.mleku.dev/curve"
	"ecschnorr.mleku.dev/digest"
	"ecschnorr.mleku.dev/sigfmt"
	"ecschnorr.mleku.dev/signer"
)

// This file compares the signers on the same key and message:
// 1. BIPSigner, the btcec backed bip-schnorr reference flavour
// 2. SchnorrSigner over the generalized BIP, ISO and Z variants
// 3. btcec's BIP-340 implementation as a baseline

var (
	benchSeckey  []byte
	benchMsghash []byte
)

func initComparisonBenchData() {
	if benchSeckey != nil {
		return
	}
	benchSeckey = make([]byte, 32)
	for i := range benchSeckey {
		benchSeckey[i] = 0x01
	}
	benchMsghash = frand.Bytes(32)
}

type benchCase struct {
	name string
	new  func() signer.I
}

func schnorrCase(name string, c *curve.Curve, v ecschnorr.Variant) benchCase {
	return benchCase{name, func() signer.I {
		s, err := ecschnorr.New(digest.SHA256, v, sigfmt.RAW)
		if err != nil {
			panic(err)
		}
		return signer.NewSchnorrSigner(s, c)
	}}
}

var benchCases = []benchCase{
	{"BIPSigner", func() signer.I { return signer.NewBIPSigner() }},
	schnorrCase("BIP/secp256k1", curve.Secp256k1, ecschnorr.BIP),
	schnorrCase("ISO/secp256k1", curve.Secp256k1, ecschnorr.ISO),
	schnorrCase("ISO/secp256r1", curve.P256, ecschnorr.ISO),
	schnorrCase("Z/secp256k1", curve.Secp256k1, ecschnorr.Z),
}

func keyed(b *testing.B, bc benchCase) signer.I {
	s := bc.new()
	if err := s.InitSec(benchSeckey); err != nil {
		b.Fatalf("failed to create signer: %v", err)
	}
	return s
}

// BenchmarkPubkeyDerivation compares public key derivation from private key
func BenchmarkPubkeyDerivation(b *testing.B) {
	initComparisonBenchData()
	for _, bc := range benchCases {
		b.Run(bc.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = keyed(b, bc).Pub()
			}
		})
	}
	b.Run("btcec", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			priv, _ := btcec.PrivKeyFromBytes(benchSeckey)
			_ = schnorr.SerializePubKey(priv.PubKey())
		}
	})
}

// BenchmarkSign compares Schnorr signing
func BenchmarkSign(b *testing.B) {
	initComparisonBenchData()
	for _, bc := range benchCases {
		b.Run(bc.name, func(b *testing.B) {
			s := keyed(b, bc)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := s.Sign(benchMsghash); err != nil {
					b.Fatalf("failed to sign: %v", err)
				}
			}
		})
	}
	b.Run("btcec", func(b *testing.B) {
		priv, _ := btcec.PrivKeyFromBytes(benchSeckey)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if _, err := schnorr.Sign(priv, benchMsghash); err != nil {
				b.Fatalf("failed to sign: %v", err)
			}
		}
	})
}

// BenchmarkVerify compares Schnorr verification
func BenchmarkVerify(b *testing.B) {
	initComparisonBenchData()
	for _, bc := range benchCases {
		b.Run(bc.name, func(b *testing.B) {
			s := keyed(b, bc)
			sig, err := s.Sign(benchMsghash)
			if err != nil {
				b.Fatalf("failed to sign: %v", err)
			}
			verifier := bc.new()
			if err = verifier.InitPub(s.Pub()); err != nil {
				b.Fatalf("failed to create verifier: %v", err)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				valid, err := verifier.Verify(benchMsghash, sig)
				if err != nil {
					b.Fatalf("verification error: %v", err)
				}
				if !valid {
					b.Fatalf("verification failed")
				}
			}
		})
	}
	b.Run("btcec", func(b *testing.B) {
		priv, pub := btcec.PrivKeyFromBytes(benchSeckey)
		sig, err := schnorr.Sign(priv, benchMsghash)
		if err != nil {
			b.Fatalf("failed to sign: %v", err)
		}
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if !sig.Verify(benchMsghash, pub) {
				b.Fatalf("verification failed")
			}
		}
	})
}
