package sigfmt

import (
	"fmt"
	"math/big"
)

const (
	asn1SequenceID = 0x30
	asn1IntegerID  = 0x02

	// 0x30 <len> 0x02 <rlen> 0x02 <slen>
	derHeaderLen = 6
)

// derInt returns the minimal big-endian encoding of v with a leading zero
// when the high bit is set, so the integer reads as non-negative. Zero
// encodes as a single zero byte.
func derInt(v *big.Int) []byte {
	b := v.Bytes()
	if len(b) == 0 || b[0]&0x80 != 0 {
		b = append([]byte{0x00}, b...)
	}
	return b
}

// encodeDER writes 30 LEN 02 LEN(r) r 02 LEN(s) s. Every length is a single
// byte, so the body is limited to 255 bytes.
func encodeDER(r, s *big.Int) ([]byte, error) {
	rb, sb := derInt(r), derInt(s)
	body := len(rb) + len(sb) + 4
	if len(rb) > 0xff || len(sb) > 0xff || body > 0xff {
		return nil, formatError(ErrValueTooLarge,
			fmt.Sprintf("DER body of %d bytes does not fit a one byte length", body))
	}
	out := make([]byte, 0, body+2)
	out = append(out, asn1SequenceID, byte(body))
	out = append(out, asn1IntegerID, byte(len(rb)))
	out = append(out, rb...)
	out = append(out, asn1IntegerID, byte(len(sb)))
	out = append(out, sb...)
	return out, nil
}

// decodeDER parses 30 LEN 02 LEN(r) r 02 LEN(s) s. Every offset is checked
// against the buffer before it is read, and the declared lengths must account
// for the buffer exactly.
func decodeDER(sig []byte) (r, s *big.Int, err error) {
	const (
		sequenceOffset = 0
		dataLenOffset  = 1
		rTypeOffset    = 2
		rLenOffset     = 3
		rOffset        = 4
	)
	sigLen := len(sig)
	if sigLen < derHeaderLen {
		return nil, nil, formatError(ErrSigTooShort,
			fmt.Sprintf("malformed signature: too short: %d < %d", sigLen, derHeaderLen))
	}
	if sig[sequenceOffset] != asn1SequenceID {
		return nil, nil, formatError(ErrSigInvalidSeqID,
			fmt.Sprintf("malformed signature: format has wrong type: %#x", sig[sequenceOffset]))
	}
	if int(sig[dataLenOffset]) != sigLen-2 {
		return nil, nil, formatError(ErrSigInvalidDataLen,
			fmt.Sprintf("malformed signature: bad length: %d != %d", sig[dataLenOffset], sigLen-2))
	}
	if sig[rTypeOffset] != asn1IntegerID {
		return nil, nil, formatError(ErrSigInvalidRIntID,
			fmt.Sprintf("malformed signature: R integer marker: %#x != %#x", sig[rTypeOffset], asn1IntegerID))
	}
	rLen := int(sig[rLenOffset])
	sTypeOffset := rOffset + rLen
	sLenOffset := sTypeOffset + 1
	sOffset := sLenOffset + 1
	if sLenOffset >= sigLen {
		return nil, nil, formatError(ErrSigInvalidRLen,
			fmt.Sprintf("malformed signature: R length %d runs past the signature", rLen))
	}
	if sig[sTypeOffset] != asn1IntegerID {
		return nil, nil, formatError(ErrSigInvalidSIntID,
			fmt.Sprintf("malformed signature: S integer marker: %#x != %#x", sig[sTypeOffset], asn1IntegerID))
	}
	sLen := int(sig[sLenOffset])
	if sOffset+sLen != sigLen {
		return nil, nil, formatError(ErrSigInvalidSLen,
			fmt.Sprintf("malformed signature: S length %d does not end the signature", sLen))
	}
	r = new(big.Int).SetBytes(sig[rOffset : rOffset+rLen])
	s = new(big.Int).SetBytes(sig[sOffset:sigLen])
	return r, s, nil
}
