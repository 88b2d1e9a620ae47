package connection

import (
	"math/rand/v2"
	"time"
)

// Pacing for BLE scan-and-connect attempts.
const (
	InitialBackoff = 250 * time.Millisecond
	MaxBackoff     = 4 * time.Second
	DefaultJitter  = 0.25
)

// Backoff computes the pause before a retry from the number of the attempt
// that just failed. The base delay starts at Initial and doubles per failed
// attempt up to Max. Up to Jitter times the base is added at random, which
// keeps several clients from scanning one adapter in lockstep.
//
// The zero value uses InitialBackoff and MaxBackoff without jitter.
type Backoff struct {
	Initial time.Duration
	Max     time.Duration
	Jitter  float64

	// random returns a value in [0, 1). Defaults to rand.Float64.
	random func() float64
}

// DefaultBackoff returns the pacing Retry uses when none is configured.
func DefaultBackoff() *Backoff {
	return &Backoff{Initial: InitialBackoff, Max: MaxBackoff, Jitter: DefaultJitter}
}

// Base returns the delay after failed attempt n (1-based) without jitter.
func (b *Backoff) Base(n int) time.Duration {
	initial, ceiling := b.Initial, b.Max
	if initial <= 0 {
		initial = InitialBackoff
	}
	if ceiling <= 0 {
		ceiling = MaxBackoff
	}

	d := initial
	for i := 1; i < n && d < ceiling; i++ {
		d *= 2
	}
	return min(d, ceiling)
}

// Delay returns Base(n) plus jitter.
func (b *Backoff) Delay(n int) time.Duration {
	d := b.Base(n)
	if b.Jitter <= 0 {
		return d
	}
	random := b.random
	if random == nil {
		random = rand.Float64
	}
	return d + time.Duration(float64(d)*b.Jitter*random())
}
