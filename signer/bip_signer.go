package signer

import (
	"errors"

	"github.com/btcsuite/btcd/btcec/v2"

	"ecschnorr.mleku.dev/bip"
)

// BIPSigner implements I with the tagged bip-schnorr draft on secp256k1.
// Public keys are 32 byte x-only keys.
type BIPSigner struct {
	keypair   *bip.KeyPair
	xonlyPub  []byte
	hasSecret bool // Whether we have the secret key (if false, can only verify)
}

// NewBIPSigner creates an empty BIPSigner.
func NewBIPSigner() *BIPSigner {
	return &BIPSigner{}
}

// Generate creates a fresh new key pair from system entropy.
func (s *BIPSigner) Generate() (err error) {
	var kp *bip.KeyPair
	if kp, err = bip.KeyPairGenerate(); err != nil {
		return
	}
	s.set(kp)
	return
}

// InitSec initialises the secret (signing) key from the raw bytes, and also
// derives the public key.
func (s *BIPSigner) InitSec(sec []byte) (err error) {
	if len(sec) != bip.SecKeySize {
		return errors.New("secret key must be 32 bytes")
	}
	var kp *bip.KeyPair
	if kp, err = bip.KeyPairCreate(sec); err != nil {
		return
	}
	s.set(kp)
	return
}

func (s *BIPSigner) set(kp *bip.KeyPair) {
	s.Zero()
	s.keypair = kp
	s.xonlyPub = kp.XOnly()
	s.hasSecret = true
}

// InitPub initializes the public (verification) key from raw bytes, this is
// expected to be an x-only 32 byte pubkey.
func (s *BIPSigner) InitPub(pub []byte) error {
	if len(pub) != bip.PubKeySize {
		return errors.New("public key must be 32 bytes")
	}
	s.Zero()
	s.xonlyPub = append([]byte(nil), pub...)
	return nil
}

// Sec returns the secret key bytes.
func (s *BIPSigner) Sec() []byte {
	if !s.hasSecret || s.keypair == nil {
		return nil
	}
	return s.keypair.Seckey()
}

// Pub returns the x-only public key bytes.
func (s *BIPSigner) Pub() []byte {
	if s.xonlyPub == nil {
		return nil
	}
	return append([]byte(nil), s.xonlyPub...)
}

// Sign creates a signature using the stored secret key.
func (s *BIPSigner) Sign(msg []byte) (sig []byte, err error) {
	if !s.hasSecret || s.keypair == nil {
		return nil, errors.New("no secret key available for signing")
	}
	if len(msg) != bip.MsgSize {
		return nil, errors.New("message must be 32 bytes")
	}
	return s.keypair.Sign(msg)
}

// Verify checks a message hash and signature match the stored public key.
func (s *BIPSigner) Verify(msg, sig []byte) (valid bool, err error) {
	if s.xonlyPub == nil {
		return false, errors.New("no public key available for verification")
	}
	if len(msg) != bip.MsgSize {
		return false, errors.New("message must be 32 bytes")
	}
	if len(sig) != bip.SignatureSize {
		return false, errors.New("signature must be 64 bytes")
	}
	return bip.Verify(sig, msg, s.xonlyPub), nil
}

// Zero wipes the secret key.
func (s *BIPSigner) Zero() {
	if s.keypair != nil {
		s.keypair.Clear()
		s.keypair = nil
	}
	s.hasSecret = false
	s.xonlyPub = nil
}

// BIPGen implements Gen on secp256k1 with btcec keys.
type BIPGen struct {
	privKey *btcec.PrivateKey
}

// NewBIPGen creates an empty BIPGen.
func NewBIPGen() *BIPGen {
	return &BIPGen{}
}

// Generate gathers entropy and derives pubkey bytes for matching, this
// returns the 33 byte compressed form for checking the oddness of the Y
// coordinate.
func (g *BIPGen) Generate() (pubBytes []byte, err error) {
	var kp *bip.KeyPair
	if kp, err = bip.KeyPairGenerate(); err != nil {
		return
	}
	sec := kp.Seckey()
	kp.Clear()
	g.privKey, _ = btcec.PrivKeyFromBytes(sec)
	return g.privKey.PubKey().SerializeCompressed(), nil
}

// Negate flips the public key Y coordinate between odd and even.
func (g *BIPGen) Negate() {
	if g.privKey == nil {
		return
	}
	scalar := g.privKey.Key
	scalar.Negate()
	g.privKey = &btcec.PrivateKey{Key: scalar}
}

// Compressed returns the current 33 byte compressed public key.
func (g *BIPGen) Compressed() []byte {
	if g.privKey == nil {
		return nil
	}
	return g.privKey.PubKey().SerializeCompressed()
}

// KeyPairBytes returns the raw bytes of the secret and public key, this
// returns the 32 byte X-only pubkey.
func (g *BIPGen) KeyPairBytes() (secBytes, cmprPubBytes []byte) {
	if g.privKey == nil {
		return nil, nil
	}
	secBytes = g.privKey.Serialize()
	cmprPubBytes = g.privKey.PubKey().SerializeCompressed()[1:]
	return
}
