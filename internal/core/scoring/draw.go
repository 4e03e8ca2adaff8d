package scoring

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Random is a source of uniform draws from [0,1).
type Random interface {
	Float64() float64
}

// Draw picks an index with probability weights[i]/sum(weights). r must be a
// uniform draw from [0,1). Negative weights count as zero; when every weight
// is zero the pick is uniform. Draw returns -1 for an empty slice.
func Draw(weights []float64, r float64) int {
	if len(weights) == 0 {
		return -1
	}
	var total float64
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return min(int(r*float64(len(weights))), len(weights)-1)
	}

	target := r * total
	last := -1
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		last = i
		target -= w
		if target < 0 {
			return i
		}
	}
	// float rounding can leave a tiny positive remainder
	return last
}

// LockedRand is a Random safe for concurrent use.
type LockedRand struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewLockedRand returns a seeded source. Equal seeds produce equal
// sequences.
func NewLockedRand(seed uint64) *LockedRand {
	return &LockedRand{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewTimeSeededRand returns a source seeded from the clock.
func NewTimeSeededRand() *LockedRand {
	return NewLockedRand(uint64(time.Now().UnixNano()))
}

func (l *LockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rnd.Float64()
}
