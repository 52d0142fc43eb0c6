package tlscore

import (
	tlserrors "github.com/wombelix/tlscore/errors"
)

// The error taxonomy of both engines. Every failure surfaces one of
// these kinds; verification failures are deliberately collapsed to the
// single ErrSignatureMismatch so the error chain cannot act as a
// verifier-side oracle.
var (
	// ErrUnsupportedHash is returned when the PRF backend cannot
	// handle the requested hash, or a premaster secret longer than
	// the backend's PRF secret limit.
	ErrUnsupportedHash = tlserrors.New("tlscore: hash not supported by PRF backend").AtError()

	// ErrSchemeKeyMismatch is returned when a signature scheme is
	// used with a key whose declared type does not permit it.
	ErrSchemeKeyMismatch = tlserrors.New("tlscore: signature scheme not usable with key type").AtError()

	// ErrUnsupportedScheme is returned when the crypto backend lacks
	// support for the requested signature scheme.
	ErrUnsupportedScheme = tlserrors.New("tlscore: signature scheme not supported by backend").AtError()

	// ErrSignatureMismatch is the uniform verification failure. It is
	// returned bare, with no detail about which check failed.
	ErrSignatureMismatch = tlserrors.New("tlscore: signature mismatch").AtError()

	// ErrInvalidPremaster is returned for empty or wrongly sized
	// premaster secrets.
	ErrInvalidPremaster = tlserrors.New("tlscore: invalid premaster secret").AtError()

	// ErrInvalidRandom is returned when a hello random is not exactly
	// RandomLength bytes.
	ErrInvalidRandom = tlserrors.New("tlscore: invalid hello random").AtError()
)
