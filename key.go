package tlscore

import (
	"crypto/rsa"
	encasn1 "encoding/asn1"
	"math/big"

	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"

	tlserrors "github.com/wombelix/tlscore/errors"
)

// AlgorithmIdentifier OIDs distinguishing how the key was issued.
var (
	oidPublicKeyRSA    = encasn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 1}
	oidPublicKeyRSAPSS = encasn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 10}
)

// KeyMaterial is an asymmetric key tagged with its declared type. It is
// read-only after construction; concurrent Sign and Verify calls on the
// same KeyMaterial are safe.
type KeyMaterial struct {
	keyType KeyType
	pub     *rsa.PublicKey
	priv    *rsa.PrivateKey
}

// NewSigningKey wraps an RSA private key under the given declared type.
func NewSigningKey(priv *rsa.PrivateKey, keyType KeyType) (*KeyMaterial, error) {
	if priv == nil {
		return nil, tlserrors.New("tlscore: nil private key").AtError()
	}
	if keyType != KeyTypeRSA && keyType != KeyTypeRSAPSS {
		return nil, tlserrors.New("tlscore: unsupported key type ", keyType).AtError()
	}
	return &KeyMaterial{keyType: keyType, pub: &priv.PublicKey, priv: priv}, nil
}

// NewVerifyingKey wraps an RSA public key under the given declared type.
func NewVerifyingKey(pub *rsa.PublicKey, keyType KeyType) (*KeyMaterial, error) {
	if pub == nil {
		return nil, tlserrors.New("tlscore: nil public key").AtError()
	}
	if keyType != KeyTypeRSA && keyType != KeyTypeRSAPSS {
		return nil, tlserrors.New("tlscore: unsupported key type ", keyType).AtError()
	}
	return &KeyMaterial{keyType: keyType, pub: pub}, nil
}

// KeyType returns the key's declared type.
func (k *KeyMaterial) KeyType() KeyType {
	return k.keyType
}

// Public returns the public half of the key.
func (k *KeyMaterial) Public() *rsa.PublicKey {
	return k.pub
}

// CanSign reports whether the key carries private material.
func (k *KeyMaterial) CanSign() bool {
	return k.priv != nil
}

// Destroy wipes the private key parameters. The KeyMaterial must not be
// used for signing afterwards; verification also becomes unavailable
// since the modulus is cleared. Call at connection teardown.
func (k *KeyMaterial) Destroy() {
	if k.priv != nil {
		zeroBig(k.priv.D)
		for _, p := range k.priv.Primes {
			zeroBig(p)
		}
		zeroBig(k.priv.Precomputed.Dp)
		zeroBig(k.priv.Precomputed.Dq)
		zeroBig(k.priv.Precomputed.Qinv)
		for i := range k.priv.Precomputed.CRTValues {
			zeroBig(k.priv.Precomputed.CRTValues[i].Exp)
			zeroBig(k.priv.Precomputed.CRTValues[i].Coeff)
			zeroBig(k.priv.Precomputed.CRTValues[i].R)
		}
		k.priv = nil
	}
	k.pub = nil
	k.keyType = KeyTypeUnknown
}

func zeroBig(b *big.Int) {
	if b == nil {
		return
	}
	bits := b.Bits()
	for i := range bits {
		bits[i] = 0
	}
	b.SetInt64(0)
}

// ParsePublicKeyAndType parses a DER SubjectPublicKeyInfo into
// KeyMaterial, deriving the declared KeyType from the
// AlgorithmIdentifier: rsaEncryption maps to KeyTypeRSA, id-RSASSA-PSS
// to KeyTypeRSAPSS. Algorithm parameters are not interpreted; the salt
// length policy is enforced at sign/verify time regardless of what a
// certificate declares.
func ParsePublicKeyAndType(der []byte) (*KeyMaterial, error) {
	input := cryptobyte.String(der)
	var spki cryptobyte.String
	if !input.ReadASN1(&spki, asn1.SEQUENCE) || !input.Empty() {
		return nil, tlserrors.New("tlscore: malformed SubjectPublicKeyInfo").AtError()
	}

	var algo cryptobyte.String
	if !spki.ReadASN1(&algo, asn1.SEQUENCE) {
		return nil, tlserrors.New("tlscore: malformed AlgorithmIdentifier").AtError()
	}
	var oid encasn1.ObjectIdentifier
	if !algo.ReadASN1ObjectIdentifier(&oid) {
		return nil, tlserrors.New("tlscore: malformed algorithm OID").AtError()
	}

	var keyType KeyType
	switch {
	case oid.Equal(oidPublicKeyRSA):
		keyType = KeyTypeRSA
	case oid.Equal(oidPublicKeyRSAPSS):
		keyType = KeyTypeRSAPSS
	default:
		return nil, tlserrors.New("tlscore: unsupported public key algorithm ", oid.String()).AtError()
	}

	var keyBits encasn1.BitString
	if !spki.ReadASN1BitString(&keyBits) {
		return nil, tlserrors.New("tlscore: malformed subjectPublicKey").AtError()
	}

	pub, err := parseRSAPublicKey(keyBits.RightAlign())
	if err != nil {
		return nil, err
	}
	return &KeyMaterial{keyType: keyType, pub: pub}, nil
}

// parseRSAPublicKey parses a PKCS#1 RSAPublicKey structure.
func parseRSAPublicKey(der []byte) (*rsa.PublicKey, error) {
	input := cryptobyte.String(der)
	var seq cryptobyte.String
	if !input.ReadASN1(&seq, asn1.SEQUENCE) || !input.Empty() {
		return nil, tlserrors.New("tlscore: malformed RSAPublicKey").AtError()
	}

	n := new(big.Int)
	var e int
	if !seq.ReadASN1Integer(n) || !seq.ReadASN1Integer(&e) || !seq.Empty() {
		return nil, tlserrors.New("tlscore: malformed RSAPublicKey parameters").AtError()
	}
	if n.Sign() <= 0 {
		return nil, tlserrors.New("tlscore: RSA modulus is not a positive number").AtError()
	}
	if e <= 1 {
		return nil, tlserrors.New("tlscore: RSA public exponent is not valid").AtError()
	}
	return &rsa.PublicKey{N: n, E: e}, nil
}
