// Package guide holds the candidate record and derives guide windows from
// motif matches.
package guide

// DefaultLength is the protospacer length used when none is configured.
const DefaultLength = 20

// Strand is the strand a candidate was found on.
type Strand string

const (
	Forward Strand = "forward"
	Reverse Strand = "reverse"
)

// Opposite returns the other strand.
func (s Strand) Opposite() Strand {
	if s == Reverse {
		return Forward
	}
	return Reverse
}

// Sign is the GFF-style strand symbol.
func (s Strand) Sign() string {
	if s == Reverse {
		return "-"
	}
	return "+"
}

// Candidate is one guide-RNA site. Start/End are half-open, 0-based, and on
// the forward coordinate axis of the scanned record once the pipeline is done.
type Candidate struct {
	Guide  string  `json:"guide_sequence"`
	PAM    string  `json:"pam"`
	Start  int     `json:"start"`
	End    int     `json:"end"`
	Strand Strand  `json:"strand"`
	GC     float64 `json:"gc_content"`
	Score  float64 `json:"score"`
}

// Len is End-Start.
func (c Candidate) Len() int { return c.End - c.Start }

// Extract emits one forward-strand candidate per motif offset whose guide
// window of guideLen bases fits before it. Offsets closer than guideLen to
// the start of seq are dropped. Coordinates are relative to seq.
func Extract(seq []byte, pamLen, guideLen int, offsets []int) []Candidate {
	out := make([]Candidate, 0, len(offsets))
	for _, m := range offsets {
		start := m - guideLen
		if start < 0 {
			continue
		}
		end := m + pamLen
		if end > len(seq) {
			end = len(seq)
		}
		out = append(out, Candidate{
			Guide:  string(seq[start:m]),
			PAM:    string(seq[m:end]),
			Start:  start,
			End:    m,
			Strand: Forward,
		})
	}
	return out
}
