package tlscore

import (
	tlserrors "github.com/wombelix/tlscore/errors"
	"github.com/wombelix/tlscore/internal/tls12"
	"github.com/wombelix/tlscore/secrets"
)

// DeriveMasterSecret derives the TLS 1.2 master secret from a premaster
// secret and the hello randoms, per RFC 5246, Section 8.1.
//
// The premaster may be classical (48 bytes) or an already-concatenated
// hybrid secret of any non-zero length; this function never parses KEM
// ciphertexts. The hash is the one bound to the negotiated cipher
// suite. The derivation is deterministic and pure; any failure is a
// configuration or environment error.
func DeriveMasterSecret(premaster, clientRandom, serverRandom []byte, h HashAlgorithm) ([]byte, error) {
	if tlserrors.DebugLoggingEnabled {
		tlserrors.LogDebug("tlscore: deriving master secret with ", h, ", premaster of ", len(premaster), " bytes")
	}

	if len(premaster) == 0 {
		return nil, tlserrors.New("tlscore: empty premaster secret").Base(ErrInvalidPremaster).AtError()
	}
	if len(clientRandom) != RandomLength || len(serverRandom) != RandomLength {
		return nil, tlserrors.New("tlscore: hello randoms must be ", RandomLength, " bytes").Base(ErrInvalidRandom).AtError()
	}
	if err := checkPRFHash(h, len(premaster)); err != nil {
		return nil, err
	}
	return tls12.RandomsMasterSecret(h.New, premaster, clientRandom, serverRandom), nil
}

// DeriveHybridMasterSecret derives a master secret from a hybrid
// premaster secret: the classical part concatenated with the KEM shared
// secret, classical part first. The concatenation order is
// cryptographically significant and owned by this function.
//
// The combined secret is held in scoped storage and wiped before
// returning, on success and on error.
func DeriveHybridMasterSecret(classical, kemSecret, clientRandom, serverRandom []byte, h HashAlgorithm) ([]byte, error) {
	if tlserrors.DebugLoggingEnabled {
		tlserrors.LogDebug("tlscore: deriving hybrid master secret with ", h, ", KEM share of ", len(kemSecret), " bytes")
	}

	if len(classical) != PremasterClassicLength {
		return nil, tlserrors.New("tlscore: classical premaster must be ", PremasterClassicLength, " bytes").Base(ErrInvalidPremaster).AtError()
	}
	if len(kemSecret) == 0 {
		return nil, tlserrors.New("tlscore: empty KEM shared secret").Base(ErrInvalidPremaster).AtError()
	}

	combined := secrets.Alloc(len(classical) + len(kemSecret))
	defer combined.Release()

	buf := combined.Bytes()
	n := copy(buf, classical)
	copy(buf[n:], kemSecret)

	return DeriveMasterSecret(buf, clientRandom, serverRandom, h)
}

// DeriveExtendedMasterSecret derives the RFC 7627 extended master
// secret. The session hash is the negotiated hash over the handshake
// messages up to and including ClientKeyExchange.
func DeriveExtendedMasterSecret(premaster, sessionHash []byte, h HashAlgorithm) ([]byte, error) {
	if tlserrors.DebugLoggingEnabled {
		tlserrors.LogDebug("tlscore: deriving extended master secret with ", h)
	}

	if len(premaster) == 0 {
		return nil, tlserrors.New("tlscore: empty premaster secret").Base(ErrInvalidPremaster).AtError()
	}
	if len(sessionHash) == 0 {
		return nil, tlserrors.New("tlscore: empty session hash").AtError()
	}
	if err := checkPRFHash(h, len(premaster)); err != nil {
		return nil, err
	}
	return tls12.MasterSecret(h.New, premaster, sessionHash), nil
}

func checkPRFHash(h HashAlgorithm, secretLen int) error {
	if !h.Available() {
		return tlserrors.New("tlscore: hash ", h, " not linked into binary").Base(ErrUnsupportedHash).AtError()
	}
	if !prfSecretWithinLimit(secretLen) {
		return tlserrors.New("tlscore: premaster of ", secretLen, " bytes exceeds backend PRF limit").Base(ErrUnsupportedHash).AtError()
	}
	return nil
}
