package digest

import (
	"crypto/hmac"
	"math/big"
)

// RFC6979 is the HMAC-DRBG of RFC 6979 section 3.2, generic over the hash
// function and the group order. It owns the K and V state: each call to Next
// returns a fresh deterministic candidate, so a signer that rejects a nonce
// simply asks again instead of reseeding.
type RFC6979 struct {
	h     Func
	q     *big.Int
	qlen  int
	rlen  int
	k, v  []byte
	retry bool
}

// NewRFC6979 runs steps b to g of RFC 6979 3.2 for secret x and message hash
// h1 over the group of order q.
func NewRFC6979(h Func, q, x *big.Int, h1 []byte) *RFC6979 {
	g := &RFC6979{
		h:    h,
		q:    new(big.Int).Set(q),
		qlen: q.BitLen(),
	}
	g.rlen = (g.qlen + 7) >> 3
	hlen := h().Size()

	// b. V = 0x01 0x01 ... 0x01
	g.v = make([]byte, hlen)
	for i := range g.v {
		g.v[i] = 0x01
	}
	// c. K = 0x00 0x00 ... 0x00
	g.k = make([]byte, hlen)

	key := append(g.int2octets(x), g.bits2octets(h1)...)
	// d. K = HMAC_K(V || 0x00 || int2octets(x) || bits2octets(h1))
	g.k = g.mac(g.v, []byte{0x00}, key)
	// e. V = HMAC_K(V)
	g.v = g.mac(g.v)
	// f. K = HMAC_K(V || 0x01 || int2octets(x) || bits2octets(h1))
	g.k = g.mac(g.v, []byte{0x01}, key)
	// g. V = HMAC_K(V)
	g.v = g.mac(g.v)
	for i := range key {
		key[i] = 0
	}
	return g
}

func (g *RFC6979) mac(parts ...[]byte) []byte {
	m := hmac.New(g.h, g.k)
	for _, p := range parts {
		m.Write(p)
	}
	return m.Sum(nil)
}

func (g *RFC6979) bits2int(b []byte) *big.Int {
	v := new(big.Int).SetBytes(b)
	if blen := len(b) * 8; blen > g.qlen {
		v.Rsh(v, uint(blen-g.qlen))
	}
	return v
}

func (g *RFC6979) int2octets(x *big.Int) []byte {
	return new(big.Int).Mod(x, g.q).FillBytes(make([]byte, g.rlen))
}

func (g *RFC6979) bits2octets(b []byte) []byte {
	return g.int2octets(g.bits2int(b))
}

// reseed is step h.3: K = HMAC_K(V || 0x00), V = HMAC_K(V).
func (g *RFC6979) reseed() {
	g.k = g.mac(g.v, []byte{0x00})
	g.v = g.mac(g.v)
}

// Next returns the next candidate nonce in [1, q-1] (step h).
func (g *RFC6979) Next() *big.Int {
	if g.retry {
		g.reseed()
	}
	for {
		var t []byte
		for len(t) < g.rlen {
			g.v = g.mac(g.v)
			t = append(t, g.v...)
		}
		k := g.bits2int(t)
		if k.Sign() > 0 && k.Cmp(g.q) < 0 {
			g.retry = true
			return k
		}
		g.reseed()
	}
}

// V returns a copy of the current V state.
func (g *RFC6979) V() []byte { return append([]byte(nil), g.v...) }

// Clear wipes the generator state.
func (g *RFC6979) Clear() {
	for i := range g.k {
		g.k[i] = 0
	}
	for i := range g.v {
		g.v[i] = 0
	}
	g.retry = false
}
