// Package secrets provides scoped storage for handshake secret material.
// Buffers are zeroed on release, on every exit path, so that premaster
// secrets, master secrets, and private key parameters are not left in
// reusable memory.
//
// Two pool tiers cover the TLS 1.2 derivation profile:
//   - 64B: classical premaster secrets (48B) and master secrets (48B)
//   - 512B: hybrid classical||KEM premaster secrets (KEM-dependent length)
//
// Larger requests are allocated directly and still wiped on release.
package secrets

import (
	"sync"
	"sync/atomic"
)

const (
	tierSmall = 64
	tierLarge = 512
)

var (
	poolSmall sync.Pool
	poolLarge sync.Pool

	stats struct {
		allocated atomic.Uint64
		reused    atomic.Uint64
		released  atomic.Uint64
	}
)

// Buffer is a secret-holding byte buffer. It must be released exactly
// once via Release; the contents are zeroed at that point and must not
// be read afterwards.
type Buffer struct {
	b []byte
	n int
}

// Alloc returns a Buffer with room for n secret bytes. The returned
// bytes are zero-initialized.
func Alloc(n int) *Buffer {
	if n < 0 {
		n = 0
	}
	var raw *[]byte
	switch {
	case n <= tierSmall:
		if v := poolSmall.Get(); v != nil {
			raw = v.(*[]byte)
		}
	case n <= tierLarge:
		if v := poolLarge.Get(); v != nil {
			raw = v.(*[]byte)
		}
	}
	if raw != nil {
		stats.reused.Add(1)
		return &Buffer{b: *raw, n: n}
	}
	stats.allocated.Add(1)
	size := n
	switch {
	case n <= tierSmall:
		size = tierSmall
	case n <= tierLarge:
		size = tierLarge
	}
	b := make([]byte, size)
	return &Buffer{b: b, n: n}
}

// Bytes returns the usable secret slice. The slice aliases the buffer
// and becomes invalid after Release.
func (s *Buffer) Bytes() []byte {
	return s.b[:s.n]
}

// Release wipes the buffer and returns pool-sized backing arrays for
// reuse. Safe to call on a nil Buffer; calling twice is a no-op for the
// second call.
func (s *Buffer) Release() {
	if s == nil || s.b == nil {
		return
	}
	Wipe(s.b[:cap(s.b)])
	stats.released.Add(1)
	b := s.b[:cap(s.b)]
	s.b = nil
	s.n = 0
	switch cap(b) {
	case tierSmall:
		poolSmall.Put(&b)
	case tierLarge:
		poolLarge.Put(&b)
	}
	// Oversized buffers are wiped and left to the GC.
}

// Wipe zeroes b in place. Use for secret material held in caller-owned
// slices, such as private key parameters.
func Wipe(b []byte) {
	if b == nil {
		return
	}
	clear(b[:cap(b)])
}

// Stats reports pool activity counters for diagnostics.
type Stats struct {
	Allocated uint64 // Alloc calls that hit the allocator
	Reused    uint64 // Alloc calls served from a pool
	Released  uint64 // Release calls that wiped a live buffer
}

// PoolStats returns current counters.
func PoolStats() Stats {
	return Stats{
		Allocated: stats.allocated.Load(),
		Reused:    stats.reused.Load(),
		Released:  stats.released.Load(),
	}
}

// DrainForTest empties the pools and resets counters so tests start
// from a known state. Never call from production code.
func DrainForTest() {
	for poolSmall.Get() != nil {
	}
	for poolLarge.Get() != nil {
	}
	stats.allocated.Store(0)
	stats.reused.Store(0)
	stats.released.Store(0)
}
