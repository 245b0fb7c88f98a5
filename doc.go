// Package ecschnorr implements the Schnorr signature family over
// short-Weierstrass curves: BSI TR-03111 (BSI), ISO/IEC 14888-3 (ISO and its
// x-only form ISOx), the bip-schnorr draft (BIP), Zilliqa (Z) and the
// libsecp256k1 experimental construction (LibSecp).
//
// A Signer is configured once with a hash, a variant and a signature format
// and is then safe for concurrent use:
//
//	s, err := ecschnorr.New(digest.SHA256, ecschnorr.ISO, sigfmt.DER)
//	sig, err := s.Sign(msg, priv)
//	ok := s.Verify(msg, sig, priv.PublicKey())
//
// Nonces come from a nonce.Source: uniform random by default, RFC 6979 for
// deterministic signatures, or the BIP hash derivation. The arithmetic is
// plain big integer affine arithmetic and is not constant time.
//
// The bip subpackage holds a self-contained secp256k1 implementation of the
// bip-schnorr reference code, and signer wraps it in a key-holding facade.
package ecschnorr
