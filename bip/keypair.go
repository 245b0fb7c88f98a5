package bip

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"lukechampine.com/frand"
)

// KeyPair holds a secret key together with both encodings of its public
// key, so repeated signing does not re-derive them.
type KeyPair struct {
	seckey     [SecKeySize]byte
	xonly      [PubKeySize]byte
	compressed [CompressedPubKeySize]byte
}

// KeyPairCreate derives a key pair from a 32 byte secret key.
func KeyPairCreate(seckey []byte) (kp *KeyPair, err error) {
	var d btcec.ModNScalar
	if d, err = parseSecKey(seckey); err != nil {
		return
	}
	p := baseMult(&d)
	d.Zero()
	kp = &KeyPair{}
	copy(kp.seckey[:], seckey)
	p.X.PutBytesUnchecked(kp.xonly[:])
	copy(kp.compressed[:], compress(&p))
	return
}

// KeyPairGenerate creates a key pair from a fresh random secret key.
func KeyPairGenerate() (kp *KeyPair, err error) {
	var sk [SecKeySize]byte
	defer zero(sk[:])
	for {
		frand.Read(sk[:])
		if kp, err = KeyPairCreate(sk[:]); err == nil {
			return
		}
	}
}

// Seckey returns a copy of the secret key.
func (kp *KeyPair) Seckey() []byte { return append([]byte(nil), kp.seckey[:]...) }

// XOnly returns the 32 byte x-only public key used by Sign and Verify.
func (kp *KeyPair) XOnly() []byte { return append([]byte(nil), kp.xonly[:]...) }

// Compressed returns the 33 byte public key used by the bcrypto flavour.
func (kp *KeyPair) Compressed() []byte { return append([]byte(nil), kp.compressed[:]...) }

// Sign signs msg32 with the tagged-hash flavour.
func (kp *KeyPair) Sign(msg32 []byte) (sig []byte, err error) {
	sig = make([]byte, SignatureSize)
	if err = Sign(sig, msg32, kp.seckey[:]); err != nil {
		return nil, err
	}
	return
}

// Clear zeroes the secret key.
func (kp *KeyPair) Clear() {
	zero(kp.seckey[:])
}
