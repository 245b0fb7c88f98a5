package signer

import (
	"errors"
	"fmt"

	"ecschnorr.mleku.dev"
	"ecschnorr.mleku.dev/curve"
	"ecschnorr.mleku.dev/sigfmt"
)

// SchnorrSigner implements I over a generalized ecschnorr.Signer on any
// supported curve. Public keys are compressed points and signatures are
// whatever byte format the signer was built with; tuple formats cannot be
// carried as bytes and fail to sign.
type SchnorrSigner struct {
	signer *ecschnorr.Signer
	curve  *curve.Curve
	priv   *ecschnorr.PrivateKey
	pub    *ecschnorr.PublicKey
}

// NewSchnorrSigner creates an empty SchnorrSigner for keys on c.
func NewSchnorrSigner(s *ecschnorr.Signer, c *curve.Curve) *SchnorrSigner {
	return &SchnorrSigner{signer: s, curve: c}
}

// Generate creates a fresh private key.
func (s *SchnorrSigner) Generate() (err error) {
	var priv *ecschnorr.PrivateKey
	if priv, err = ecschnorr.GeneratePrivateKey(s.curve); err != nil {
		return
	}
	s.setPriv(priv)
	return
}

// InitSec initialises the private key from its big-endian encoding.
func (s *SchnorrSigner) InitSec(sec []byte) (err error) {
	var priv *ecschnorr.PrivateKey
	if priv, err = ecschnorr.PrivateKeyFromBytes(s.curve, sec); err != nil {
		return
	}
	s.setPriv(priv)
	return
}

func (s *SchnorrSigner) setPriv(priv *ecschnorr.PrivateKey) {
	s.Zero()
	s.priv = priv
	s.pub = priv.PublicKey()
}

// InitPub initialises a verify-only signer from a compressed or
// uncompressed public key.
func (s *SchnorrSigner) InitPub(pub []byte) (err error) {
	var pk *ecschnorr.PublicKey
	if pk, err = ecschnorr.ParsePublicKey(s.curve, pub); err != nil {
		return
	}
	s.Zero()
	s.pub = pk
	return
}

// Sec returns the private scalar at the curve's byte length.
func (s *SchnorrSigner) Sec() []byte {
	if s.priv == nil {
		return nil
	}
	return s.priv.Bytes()
}

// Pub returns the compressed public key.
func (s *SchnorrSigner) Pub() []byte {
	if s.pub == nil {
		return nil
	}
	return s.pub.SerializeCompressed()
}

// Sign signs msg with the signer's nonce source.
func (s *SchnorrSigner) Sign(msg []byte) (sig []byte, err error) {
	if s.priv == nil {
		return nil, errors.New("no secret key available for signing")
	}
	var enc sigfmt.Encoded
	if enc, err = s.signer.Sign(msg, s.priv); err != nil {
		return
	}
	b, ok := enc.(sigfmt.Bytes)
	if !ok {
		return nil, fmt.Errorf("signature format %s is not a byte string", s.signer.Format())
	}
	return b, nil
}

// Verify checks sig over msg against the public key.
func (s *SchnorrSigner) Verify(msg, sig []byte) (valid bool, err error) {
	if s.pub == nil {
		return false, errors.New("no public key available for verification")
	}
	return s.signer.Verify(msg, sigfmt.Bytes(sig), s.pub), nil
}

// Zero wipes the private key.
func (s *SchnorrSigner) Zero() {
	if s.priv != nil {
		s.priv.Zero()
		s.priv = nil
	}
	s.pub = nil
}
