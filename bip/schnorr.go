// Package bip implements the bip-schnorr draft signature on secp256k1 using
// btcec's field and group arithmetic. It offers two flavours:
//
//   - Sign and Verify follow the tagged-hash draft: x-only 32 byte public
//     keys, nonces derived with the BIPSchnorrDerive tag and challenges with
//     the BIPSchnorr tag, the nonce point normalised to a quadratic residue
//     y coordinate.
//   - SignBcrypto410 and VerifyBcrypto410 follow bcrypto 4.1.0: untagged
//     SHA-256 throughout and the compressed public key in the challenge.
//     These are byte-identical to the generalized signer's BIP variant with
//     the bip nonce and RAW output.
//
// Messages are 32 bytes and signatures 64 bytes, R.x ‖ s.
package bip

import (
	"errors"

	"github.com/btcsuite/btcd/btcec/v2"
	sha256 "github.com/minio/sha256-simd"

	"ecschnorr.mleku.dev/digest"
)

const (
	// MsgSize is the length of a signed message digest.
	MsgSize = 32
	// SecKeySize is the length of a secret key.
	SecKeySize = 32
	// PubKeySize is the length of an x-only public key.
	PubKeySize = 32
	// CompressedPubKeySize is the length of a compressed public key.
	CompressedPubKeySize = 33
	// SignatureSize is the length of a signature.
	SignatureSize = 64
)

var (
	ErrSigSize       = errors.New("signature must be 64 bytes")
	ErrMsgSize       = errors.New("message must be 32 bytes")
	ErrSecKey        = errors.New("secret key must be 32 bytes in the range 1..n-1")
	ErrSigningFailed = errors.New("signing failed: derived nonce is zero")
)

// isQuad reports whether y is a quadratic residue mod p.
func isQuad(y *btcec.FieldVal) bool {
	return new(btcec.FieldVal).SquareRootVal(y)
}

func isInfinity(p *btcec.JacobianPoint) bool {
	return (p.X.IsZero() && p.Y.IsZero()) || p.Z.IsZero()
}

// parseSecKey reads a secret scalar in [1, n-1].
func parseSecKey(seckey []byte) (d btcec.ModNScalar, err error) {
	if len(seckey) != SecKeySize {
		err = ErrSecKey
		return
	}
	if overflow := d.SetByteSlice(seckey); overflow || d.IsZero() {
		d.Zero()
		err = ErrSecKey
	}
	return
}

// baseMult returns k·G in affine coordinates.
func baseMult(k *btcec.ModNScalar) (p btcec.JacobianPoint) {
	btcec.ScalarBaseMultNonConst(k, &p)
	p.ToAffine()
	return
}

// hashScalar reduces a 32 byte digest mod n.
func hashScalar(h [32]byte) (e btcec.ModNScalar) {
	e.SetBytes(&h)
	return
}

// PubkeyGen returns the 32 byte x-only public key of seckey.
func PubkeyGen(seckey []byte) (pub []byte, err error) {
	var d btcec.ModNScalar
	if d, err = parseSecKey(seckey); err != nil {
		return
	}
	p := baseMult(&d)
	d.Zero()
	pub = make([]byte, PubKeySize)
	p.X.PutBytesUnchecked(pub)
	return
}

// Sign writes the tagged-hash signature of msg32 under seckey32 into sig64.
func Sign(sig64, msg32, seckey32 []byte) (err error) {
	if len(sig64) != SignatureSize {
		return ErrSigSize
	}
	if len(msg32) != MsgSize {
		return ErrMsgSize
	}
	var d btcec.ModNScalar
	if d, err = parseSecKey(seckey32); err != nil {
		return
	}
	defer d.Zero()
	p := baseMult(&d)
	if !isQuad(&p.Y) {
		d.Negate()
	}
	skb := d.Bytes()
	k := hashScalar(digest.Tagged(digest.TagBIPSchnorrDerive, skb[:], msg32))
	zero(skb[:])
	if k.IsZero() {
		return ErrSigningFailed
	}
	defer k.Zero()
	r := baseMult(&k)
	if !isQuad(&r.Y) {
		k.Negate()
	}
	e := hashScalar(digest.Tagged(digest.TagBIPSchnorr, r.X.Bytes()[:], p.X.Bytes()[:], msg32))
	s := new(btcec.ModNScalar).Mul2(&e, &d).Add(&k)
	r.X.PutBytesUnchecked(sig64[:32])
	s.PutBytesUnchecked(sig64[32:])
	return
}

// liftX recovers the point with x coordinate x and a quadratic residue y.
func liftX(x *btcec.FieldVal) (p btcec.JacobianPoint, ok bool) {
	ySq := new(btcec.FieldVal).Add(x).Square().Mul(x).AddInt(7)
	if !p.Y.SquareRootVal(ySq) {
		return
	}
	p.X.Set(x)
	p.Y.Normalize()
	p.Z.SetInt(1)
	return p, true
}

// parseSig splits a signature into r < p and s < n.
func parseSig(sig64 []byte) (r btcec.FieldVal, s btcec.ModNScalar, ok bool) {
	if overflow := r.SetByteSlice(sig64[:32]); overflow {
		return
	}
	if overflow := s.SetByteSlice(sig64[32:]); overflow {
		return
	}
	return r, s, true
}

// check verifies R = s·G − e·P against r: R must not be the identity, its y
// must be a quadratic residue and its x must equal r.
func check(r *btcec.FieldVal, s, e *btcec.ModNScalar, p *btcec.JacobianPoint) bool {
	negE := new(btcec.ModNScalar).NegateVal(e)
	var sG, eP, R btcec.JacobianPoint
	btcec.ScalarBaseMultNonConst(s, &sG)
	btcec.ScalarMultNonConst(negE, p, &eP)
	btcec.AddNonConst(&sG, &eP, &R)
	if isInfinity(&R) {
		return false
	}
	R.ToAffine()
	if !isQuad(&R.Y) {
		return false
	}
	return r.Equals(&R.X)
}

// Verify reports whether sig64 is a tagged-hash signature of msg32 under the
// x-only key pubkey32. Inputs of the wrong length are rejected.
func Verify(sig64, msg32, pubkey32 []byte) bool {
	if len(sig64) != SignatureSize || len(msg32) != MsgSize || len(pubkey32) != PubKeySize {
		return false
	}
	var px btcec.FieldVal
	if overflow := px.SetByteSlice(pubkey32); overflow {
		return false
	}
	p, ok := liftX(&px)
	if !ok {
		return false
	}
	r, s, ok := parseSig(sig64)
	if !ok {
		return false
	}
	e := hashScalar(digest.Tagged(digest.TagBIPSchnorr, sig64[:32], pubkey32, msg32))
	return check(&r, &s, &e, &p)
}

func sha256Scalar(parts ...[]byte) btcec.ModNScalar {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
	}
	var out [32]byte
	h.Sum(out[:0])
	return hashScalar(out)
}

func compress(p *btcec.JacobianPoint) []byte {
	out := make([]byte, CompressedPubKeySize)
	out[0] = 0x02
	if p.Y.IsOdd() {
		out[0] = 0x03
	}
	p.X.PutBytesUnchecked(out[1:])
	return out
}

// SignBcrypto410 writes the bcrypto 4.1.0 signature of msg32 under seckey32
// into sig64: k = SHA256(d ‖ m), e = SHA256(R.x ‖ comp(P) ‖ m).
func SignBcrypto410(sig64, msg32, seckey32 []byte) (err error) {
	if len(sig64) != SignatureSize {
		return ErrSigSize
	}
	if len(msg32) != MsgSize {
		return ErrMsgSize
	}
	var d btcec.ModNScalar
	if d, err = parseSecKey(seckey32); err != nil {
		return
	}
	defer d.Zero()
	k := sha256Scalar(seckey32, msg32)
	if k.IsZero() {
		return ErrSigningFailed
	}
	defer k.Zero()
	r := baseMult(&k)
	p := baseMult(&d)
	e := sha256Scalar(r.X.Bytes()[:], compress(&p), msg32)
	if !isQuad(&r.Y) {
		k.Negate()
	}
	s := new(btcec.ModNScalar).Mul2(&e, &d).Add(&k)
	r.X.PutBytesUnchecked(sig64[:32])
	s.PutBytesUnchecked(sig64[32:])
	return
}

// VerifyBcrypto410 reports whether sig64 is a bcrypto 4.1.0 signature of
// msg32 under the compressed key pubkey33.
func VerifyBcrypto410(sig64, msg32, pubkey33 []byte) bool {
	if len(sig64) != SignatureSize || len(msg32) != MsgSize ||
		len(pubkey33) != CompressedPubKeySize {
		return false
	}
	pub, err := btcec.ParsePubKey(pubkey33)
	if err != nil {
		return false
	}
	r, s, ok := parseSig(sig64)
	if !ok {
		return false
	}
	var p btcec.JacobianPoint
	pub.AsJacobian(&p)
	e := sha256Scalar(sig64[:32], pub.SerializeCompressed(), msg32)
	return check(&r, &s, &e, &p)
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
