package tlscore

import (
	"crypto/rand"
	"crypto/rsa"

	tlserrors "github.com/wombelix/tlscore/errors"
)

// checkScheme enforces the scheme/key-type identity and backend
// capability gates shared by Sign and Verify. It runs before any
// cryptographic operation so that illegal combinations never touch key
// material.
func (k *KeyMaterial) checkScheme(scheme SignatureScheme) error {
	switch scheme {
	case SchemePKCS1v15, SchemePSSRSAE:
		if k.keyType != KeyTypeRSA {
			return tlserrors.New("tlscore: ", scheme, " requires an RSA key, have ", k.keyType).Base(ErrSchemeKeyMismatch).AtError()
		}
	case SchemePSSPSS:
		if k.keyType != KeyTypeRSAPSS {
			return tlserrors.New("tlscore: ", scheme, " requires an RSA-PSS key, have ", k.keyType).Base(ErrSchemeKeyMismatch).AtError()
		}
	default:
		return tlserrors.New("tlscore: unknown signature scheme ", scheme).Base(ErrUnsupportedScheme).AtError()
	}
	if scheme.isPSS() && !rsaPSSSupported() {
		return tlserrors.New("tlscore: backend lacks RSA-PSS support").Base(ErrUnsupportedScheme).AtError()
	}
	return nil
}

// Sign produces a signature over a pre-computed digest under the given
// scheme. The digest must be exactly h.Size() bytes; this engine never
// hashes messages itself. PSS signatures use a salt of the digest
// length, as TLS 1.3 requires.
func (k *KeyMaterial) Sign(scheme SignatureScheme, h HashAlgorithm, digest []byte) ([]byte, error) {
	if tlserrors.DebugLoggingEnabled {
		tlserrors.LogDebug("tlscore: signing with scheme ", scheme)
	}

	if err := k.checkScheme(scheme); err != nil {
		return nil, err
	}
	if k.priv == nil {
		return nil, tlserrors.New("tlscore: key material has no private key").AtError()
	}
	if len(digest) != h.Size() {
		return nil, tlserrors.New("tlscore: digest is ", len(digest), " bytes, want ", h.Size()).AtError()
	}

	switch scheme {
	case SchemePKCS1v15:
		sig, err := rsa.SignPKCS1v15(rand.Reader, k.priv, h, digest)
		if err != nil {
			return nil, tlserrors.New("tlscore: PKCS#1 v1.5 signing failure").Base(err).AtError()
		}
		return sig, nil
	default:
		opts := &rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthEqualsHash, Hash: h}
		sig, err := rsa.SignPSS(rand.Reader, k.priv, h, digest, opts)
		if err != nil {
			return nil, tlserrors.New("tlscore: RSA-PSS signing failure").Base(err).AtError()
		}
		return sig, nil
	}
}

// Verify checks a signature over a pre-computed digest under the given
// scheme. Scheme/key-type mismatches and missing backend capability
// surface as their own kinds; every cryptographic verification failure,
// whatever its internal cause, is the single bare ErrSignatureMismatch.
//
// PSS verification requires the embedded salt length to equal the
// digest length. Signatures with legacy 20-byte or zero-length salts
// are rejected even when otherwise validly constructed.
func (k *KeyMaterial) Verify(scheme SignatureScheme, h HashAlgorithm, digest, signature []byte) error {
	if tlserrors.DebugLoggingEnabled {
		tlserrors.LogDebug("tlscore: verifying scheme ", scheme)
	}

	if err := k.checkScheme(scheme); err != nil {
		return err
	}
	if k.pub == nil {
		return tlserrors.New("tlscore: key material has no public key").AtError()
	}
	if len(digest) != h.Size() {
		return tlserrors.New("tlscore: digest is ", len(digest), " bytes, want ", h.Size()).AtError()
	}

	switch scheme {
	case SchemePKCS1v15:
		if rsa.VerifyPKCS1v15(k.pub, h, digest, signature) != nil {
			return ErrSignatureMismatch
		}
	default:
		opts := &rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthEqualsHash, Hash: h}
		if rsa.VerifyPSS(k.pub, h, digest, signature, opts) != nil {
			return ErrSignatureMismatch
		}
	}

	if tlserrors.DebugLoggingEnabled {
		tlserrors.LogDebug("tlscore: signature verified")
	}
	return nil
}
