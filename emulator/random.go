package emulator

import (
	"math/rand/v2"
	"time"
)

// RandomSource supplies the random bytes consumed by the Cxkk instruction.
// It is an explicit capability rather than ambient process-wide state so
// that tests can inject a seeded source and get deterministic programs.
type RandomSource interface {
	Byte() byte
}

type pcgSource struct {
	rnd *rand.Rand
}

// SeededSource returns a RandomSource producing the same byte sequence for
// the same seed.
func SeededSource(seed uint64) RandomSource {
	return &pcgSource{rnd: rand.New(rand.NewPCG(seed, seed))}
}

// newTimeSource is the default source used when New is given nil.
func newTimeSource() RandomSource {
	return SeededSource(uint64(time.Now().UnixNano()))
}

func (s *pcgSource) Byte() byte {
	return byte(s.rnd.UintN(256))
}
