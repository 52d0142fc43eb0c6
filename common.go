// Package tlscore implements the key-derivation and signature core of a
// TLS 1.2 handshake: a PRF engine deriving master secrets from classical
// or hybrid (classical||KEM) premaster secrets, and an RSA signature
// engine enforcing signature-scheme / key-type identity for PKCS#1 v1.5
// and RSASSA-PSS.
//
// The package is a pure computation library. The handshake state
// machine, record layer, and certificate chain validation are the
// caller's concern; this package receives validated inputs and returns
// derived secrets or signatures.
package tlscore

import (
	"crypto"
	_ "crypto/sha256"
	_ "crypto/sha512"
)

// HashAlgorithm identifies the digest bound to the negotiated cipher
// suite or signature.
type HashAlgorithm = crypto.Hash

const (
	// PremasterClassicLength is the length of a classical (RSA or
	// static DH) premaster secret, per RFC 5246, Section 8.1.1.
	PremasterClassicLength = 48

	// RandomLength is the length of the client and server hello
	// randoms, per RFC 5246, Section 7.4.1.2.
	RandomLength = 32

	// MasterSecretLength is the length of the derived master secret.
	MasterSecretLength = 48
)

// SignatureScheme identifies the padding scheme of a handshake
// signature and, through it, the key types allowed to produce one.
type SignatureScheme uint8

const (
	// SchemePKCS1v15 is RSASSA-PKCS1-v1_5. Usable only with
	// KeyTypeRSA keys.
	SchemePKCS1v15 SignatureScheme = iota + 1

	// SchemePSSRSAE is RSASSA-PSS issued under an rsaEncryption
	// certificate. Usable only with KeyTypeRSA keys.
	SchemePSSRSAE

	// SchemePSSPSS is RSASSA-PSS issued under an id-RSASSA-PSS
	// certificate. Usable only with KeyTypeRSAPSS keys.
	//
	// SchemePSSRSAE and SchemePSSPSS are the same mathematical
	// operation; they differ only in the declared key type this
	// package enforces.
	SchemePSSPSS
)

func (s SignatureScheme) String() string {
	switch s {
	case SchemePKCS1v15:
		return "rsa_pkcs1"
	case SchemePSSRSAE:
		return "rsa_pss_rsae"
	case SchemePSSPSS:
		return "rsa_pss_pss"
	default:
		return "unknown"
	}
}

// isPSS reports whether the scheme uses RSASSA-PSS padding.
func (s SignatureScheme) isPSS() bool {
	return s == SchemePSSRSAE || s == SchemePSSPSS
}

// KeyType is the algorithm identity a key was issued under, as declared
// by its certificate's AlgorithmIdentifier.
type KeyType uint8

const (
	KeyTypeUnknown KeyType = iota
	KeyTypeRSA
	KeyTypeRSAPSS
)

func (t KeyType) String() string {
	switch t {
	case KeyTypeRSA:
		return "RSA"
	case KeyTypeRSAPSS:
		return "RSA-PSS"
	default:
		return "unknown"
	}
}
