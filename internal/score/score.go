// Package score annotates candidates with GC content and a GC-balance score.
package score

import (
	"math"

	"guidescan/internal/guide"
)

// GCContent is the percentage of G/C bases in seq (upper-case letters).
// An empty seq yields 0.
func GCContent(seq []byte) float64 {
	if len(seq) == 0 {
		return 0
	}
	n := 0
	for _, b := range seq {
		if b == 'G' || b == 'C' {
			n++
		}
	}
	return 100 * float64(n) / float64(len(seq))
}

// Efficiency scores a GC percentage by its distance from 50%:
// 1 at 50%, 0 at 0% and 100%, linear in between.
func Efficiency(gc float64) float64 {
	s := 1 - math.Abs(gc-50)/50
	switch {
	case s < 0:
		return 0
	case s > 1:
		return 1
	}
	return s
}

// Annotate returns a copy of cands with GC and Score filled in.
func Annotate(cands []guide.Candidate) []guide.Candidate {
	out := make([]guide.Candidate, len(cands))
	for i, c := range cands {
		c.GC = GCContent([]byte(c.Guide))
		c.Score = Efficiency(c.GC)
		out[i] = c
	}
	return out
}
