package auth

import (
	"crypto/rand"
	"encoding/binary"
	"time"
)

// TimingDelay pads authentication failures with a small randomized delay
// so "user not found" and "wrong password" take about the same time.
type TimingDelay struct {
	baseDelay   time.Duration
	randomRange time.Duration
}

// NewTimingDelay creates a TimingDelay with the given base delay; the
// random component is half the base.
func NewTimingDelay(baseMs int) *TimingDelay {
	base := time.Duration(baseMs) * time.Millisecond
	return &TimingDelay{
		baseDelay:   base,
		randomRange: base / 2,
	}
}

// cryptoRandDuration returns a secure random duration in [0, max).
func cryptoRandDuration(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}

	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}

	return time.Duration(binary.BigEndian.Uint64(buf[:]) % uint64(max))
}

// WaitFrom sleeps until at least the padded target has elapsed since
// start. Successes return immediately.
func (td *TimingDelay) WaitFrom(start time.Time, success bool) {
	if td == nil || success {
		return
	}

	target := td.baseDelay + cryptoRandDuration(td.randomRange)
	if elapsed := time.Since(start); elapsed < target {
		time.Sleep(target - elapsed)
	}
}
