package ecschnorr

// ErrorKind identifies a kind of error. It has full support for errors.Is and
// errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrInvalidPrivateKey is returned when a private scalar is outside
	// [1, n-1] or its encoding has the wrong length.
	ErrInvalidPrivateKey = ErrorKind("ErrInvalidPrivateKey")

	// ErrInvalidPublicKey is returned when a public point is the identity,
	// is not on its curve, or cannot be decoded.
	ErrInvalidPublicKey = ErrorKind("ErrInvalidPublicKey")

	// ErrInvalidNonce is returned when a caller supplied nonce is outside
	// [1, n-1], or a nonce source fails.
	ErrInvalidNonce = ErrorKind("ErrInvalidNonce")

	// ErrSigningFailed is returned when every attempt allowed by the signer
	// produced a degenerate signature.
	ErrSigningFailed = ErrorKind("ErrSigningFailed")

	// ErrDigestTooWide is returned when a variant that uses the digest as r
	// is paired with a hash whose output is wider than the curve.
	ErrDigestTooWide = ErrorKind("ErrDigestTooWide")

	// ErrUnsupportedVariant is returned for unknown variant names or values,
	// and for operations the configured variant does not offer.
	ErrUnsupportedVariant = ErrorKind("ErrUnsupportedVariant")

	// ErrUnsupportedCurve is returned for operations that are only defined
	// on a specific curve.
	ErrUnsupportedCurve = ErrorKind("ErrUnsupportedCurve")

	// ErrCurveMismatch is returned when keys or points from different curves
	// are combined.
	ErrCurveMismatch = ErrorKind("ErrCurveMismatch")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to Schnorr signing or key handling. It
// has full support for errors.Is and errors.As, so the caller can ascertain
// the specific reason for the error by checking the underlying error.
type Error struct {
	Err         error
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// signError creates an Error given a set of arguments.
func signError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}
