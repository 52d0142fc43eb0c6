// Package tls12 implements the TLS 1.2 pseudo-random function and the
// master secret derivations built on it, as defined in RFC 5246,
// Section 5 and RFC 7627.
package tls12

import (
	"crypto/hmac"
	"hash"
)

// MasterSecretLength is the length of a TLS 1.2 master secret,
// per RFC 5246, Section 8.1.
const MasterSecretLength = 48

const (
	masterSecretLabel         = "master secret"
	extendedMasterSecretLabel = "extended master secret"
)

// PRF implements the TLS 1.2 pseudo-random function, as defined in
// RFC 5246, Section 5:
//
//	PRF(secret, label, seed) = P_<hash>(secret, label + seed)
func PRF(h func() hash.Hash, secret []byte, label string, seed []byte, keyLen int) []byte {
	labelAndSeed := make([]byte, len(label)+len(seed))
	copy(labelAndSeed, label)
	copy(labelAndSeed[len(label):], seed)

	result := make([]byte, keyLen)
	pHash(h, result, secret, labelAndSeed)
	return result
}

// pHash implements the P_hash function, as defined in RFC 5246, Section 5.
func pHash(h func() hash.Hash, result, secret, seed []byte) {
	mac := hmac.New(h, secret)
	mac.Write(seed)
	a := mac.Sum(nil)

	for len(result) > 0 {
		mac.Reset()
		mac.Write(a)
		mac.Write(seed)
		b := mac.Sum(nil)
		n := copy(result, b)
		result = result[n:]

		mac.Reset()
		mac.Write(a)
		a = mac.Sum(nil)
	}
}

// RandomsMasterSecret implements the TLS 1.2 master secret derivation,
// as defined in RFC 5246, Section 8.1. The seed is the client random
// followed by the server random.
func RandomsMasterSecret(h func() hash.Hash, preMasterSecret, clientRandom, serverRandom []byte) []byte {
	seed := make([]byte, 0, len(clientRandom)+len(serverRandom))
	seed = append(seed, clientRandom...)
	seed = append(seed, serverRandom...)
	return PRF(h, preMasterSecret, masterSecretLabel, seed, MasterSecretLength)
}

// MasterSecret implements the TLS 1.2 extended master secret derivation,
// as defined in RFC 7627. The transcript is the session hash: the
// negotiated hash over the handshake messages up to ClientKeyExchange.
func MasterSecret(h func() hash.Hash, preMasterSecret, transcript []byte) []byte {
	return PRF(h, preMasterSecret, extendedMasterSecretLabel, transcript, MasterSecretLength)
}
