package output

import (
	"fmt"
	"sort"

	"guidescan/internal/guide"
)

// Sort modes. SortNone keeps pipeline order (forward, then reverse).
const (
	SortNone     = "none"
	SortPosition = "position"
	SortScore    = "score"
)

// Arrange filters by minimum score and orders a copy of cands.
func Arrange(cands []guide.Candidate, mode string, minScore float64) ([]guide.Candidate, error) {
	out := make([]guide.Candidate, 0, len(cands))
	for _, c := range cands {
		if c.Score >= minScore {
			out = append(out, c)
		}
	}
	switch mode {
	case "", SortNone:
	case SortPosition:
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Start != out[j].Start {
				return out[i].Start < out[j].Start
			}
			return out[i].Strand == guide.Forward && out[j].Strand == guide.Reverse
		})
	case SortScore:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	default:
		return nil, fmt.Errorf("unknown sort mode %q", mode)
	}
	return out, nil
}
