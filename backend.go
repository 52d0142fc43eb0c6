package tlscore

import "sync/atomic"

// Capabilities describes what the underlying crypto backend supports.
// The default Go backend supports RSA-PSS and places no limit on the
// PRF secret length; restricted backends (FIPS-only builds, bindings to
// older libcryptos) may not.
type Capabilities struct {
	// RSAPSS is whether RSASSA-PSS signing and verification are
	// available. When false, both Sign and Verify under a PSS scheme
	// fail with ErrUnsupportedScheme before touching key material.
	RSAPSS bool

	// MaxPRFSecretLen bounds the secret length the PRF accepts.
	// Zero means unlimited. Hybrid premaster secrets can exceed the
	// limit of some backends; that is an environmental restriction
	// surfaced as ErrUnsupportedHash, not a bug.
	MaxPRFSecretLen int
}

var backendCaps atomic.Pointer[Capabilities]

func init() {
	backendCaps.Store(&Capabilities{RSAPSS: true})
}

// BackendCapabilities returns the capabilities of the active backend.
func BackendCapabilities() Capabilities {
	return *backendCaps.Load()
}

// SetCapabilitiesForTest installs a capability record and returns a
// function restoring the previous one. Only call from tests.
func SetCapabilitiesForTest(c Capabilities) (restore func()) {
	prev := backendCaps.Swap(&c)
	return func() { backendCaps.Store(prev) }
}

func rsaPSSSupported() bool {
	return backendCaps.Load().RSAPSS
}

func prfSecretWithinLimit(n int) bool {
	limit := backendCaps.Load().MaxPRFSecretLen
	return limit <= 0 || n <= limit
}
