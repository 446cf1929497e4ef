package sim

import (
	"math/rand"
	"time"
)

// Options describe a synthetic record.
type Options struct {
	Length int
	GC     float64 // fraction in [0,1]; clamped
	Seed   int64   // 0 picks a time-based seed
}

// Sequence returns an upper-case DNA sequence of opt.Length bases whose G+C
// count is the nearest integer to Length*GC. The same non-zero seed always
// yields the same sequence.
func Sequence(opt Options) []byte {
	if opt.Length <= 0 {
		return []byte{}
	}
	gc := min(max(opt.GC, 0), 1)
	seed := opt.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	r := rand.New(rand.NewSource(seed))

	nGC := min(int(float64(opt.Length)*gc+0.5), opt.Length)
	seq := make([]byte, opt.Length)
	for i := range seq {
		pair := "AT"
		if i < nGC {
			pair = "GC"
		}
		seq[i] = pair[r.Intn(2)]
	}
	r.Shuffle(len(seq), func(i, j int) { seq[i], seq[j] = seq[j], seq[i] })
	return seq
}
