package generator

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand"
)

// Stream is the single pseudo-random sequence behind a generation run. The
// seed comes from a sha256 prefix of the identity token, so the same token
// always replays the same dataset while different tokens stay uncorrelated.
// One Stream per run; it is mutable and must not be shared between runs.
type Stream struct {
	rng *rand.Rand
}

func NewStream(token string) *Stream {
	sum := sha256.Sum256([]byte(token))
	seed := binary.BigEndian.Uint64(sum[:8])
	return &Stream{rng: rand.New(rand.NewSource(int64(seed)))}
}

func (s *Stream) Float64() float64 {
	return s.rng.Float64()
}

// IntBetween draws uniformly from [lo, hi], both ends included.
func (s *Stream) IntBetween(lo, hi int) int {
	return lo + s.rng.Intn(hi-lo+1)
}

func (s *Stream) Int64Between(lo, hi int64) int64 {
	return lo + s.rng.Int63n(hi-lo+1)
}

// FloatBetween draws uniformly from [lo, hi).
func (s *Stream) FloatBetween(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

func (s *Stream) Choice(options []string) string {
	return options[s.rng.Intn(len(options))]
}
