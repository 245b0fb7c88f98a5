package sigfmt

// ErrorKind identifies a kind of error. It has full support for errors.Is and
// errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrUnknownFormat is returned for a format name or value that is not one
	// of DER, BTUPLE, ITUPLE, RAW or EDDSA.
	ErrUnknownFormat = ErrorKind("ErrUnknownFormat")

	// ErrFormatMismatch is returned when the shape of an encoded signature
	// does not match the format it is decoded as.
	ErrFormatMismatch = ErrorKind("ErrFormatMismatch")

	// ErrNegativeValue is returned when r or s is negative.
	ErrNegativeValue = ErrorKind("ErrNegativeValue")

	// ErrValueTooLarge is returned when r or s does not fit the requested
	// fixed width, or a DER length does not fit in one byte.
	ErrValueTooLarge = ErrorKind("ErrValueTooLarge")

	// ErrSigInvalidLen is returned when a fixed-width signature is empty or
	// has an odd length.
	ErrSigInvalidLen = ErrorKind("ErrSigInvalidLen")

	// ErrSigTooShort is returned when a DER signature is too short to hold
	// its headers.
	ErrSigTooShort = ErrorKind("ErrSigTooShort")

	// ErrSigInvalidSeqID is returned when a DER signature does not start with
	// the ASN.1 sequence ID.
	ErrSigInvalidSeqID = ErrorKind("ErrSigInvalidSeqID")

	// ErrSigInvalidDataLen is returned when the DER sequence length does not
	// match the buffer or the lengths of R and S.
	ErrSigInvalidDataLen = ErrorKind("ErrSigInvalidDataLen")

	// ErrSigInvalidRIntID is returned when R is not tagged as an ASN.1
	// integer.
	ErrSigInvalidRIntID = ErrorKind("ErrSigInvalidRIntID")

	// ErrSigInvalidRLen is returned when the declared length of R runs past
	// the end of the signature.
	ErrSigInvalidRLen = ErrorKind("ErrSigInvalidRLen")

	// ErrSigInvalidSIntID is returned when S is not tagged as an ASN.1
	// integer.
	ErrSigInvalidSIntID = ErrorKind("ErrSigInvalidSIntID")

	// ErrSigInvalidSLen is returned when the declared length of S does not
	// end exactly at the end of the signature.
	ErrSigInvalidSLen = ErrorKind("ErrSigInvalidSLen")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to signature encoding. It has full
// support for errors.Is and errors.As, so the caller can ascertain the
// specific reason for the error by checking the underlying error.
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

// formatError creates an Error given a set of arguments.
func formatError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}
