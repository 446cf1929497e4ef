package scan

import (
	"errors"
	"fmt"

	"guidescan/internal/guide"
	"guidescan/internal/motif"
	"guidescan/internal/score"
	"guidescan/internal/strand"
)

var (
	ErrInvalidPattern     = errors.New("scan: invalid PAM pattern")
	ErrInvalidGuideLength = errors.New("scan: guide length must be positive")
)

type Options struct {
	GuideLen int // must be >= 1; NewPlan uses guide.DefaultLength
}

// Plan is a compiled PAM plus guide length. It holds no mutable state and is
// safe to share across goroutines.
type Plan struct {
	pam      motif.Pattern
	guideLen int
}

func NewPlanWithOptions(pam string, opt Options) (Plan, error) {
	p, err := motif.Compile(pam)
	if err != nil {
		return Plan{}, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}
	if opt.GuideLen <= 0 {
		return Plan{}, fmt.Errorf("%w (got %d)", ErrInvalidGuideLength, opt.GuideLen)
	}
	return Plan{pam: p, guideLen: opt.GuideLen}, nil
}

func NewPlan(pam string) (Plan, error) {
	return NewPlanWithOptions(pam, Options{GuideLen: guide.DefaultLength})
}

func (p Plan) PAM() string   { return p.pam.String() }
func (p Plan) GuideLen() int { return p.guideLen }

// Scan finds guides on both strands of seq. Forward candidates come first in
// left-to-right order, then reverse candidates in the scan order of the
// reverse complement. All coordinates are on the forward axis of seq.
func (p Plan) Scan(seq []byte) []guide.Candidate {
	if p.pam.Len() == 0 || len(seq) == 0 {
		return []guide.Candidate{}
	}
	fwd := strand.ToUpper(seq)
	rc := strand.ReverseComplement(fwd)

	out := p.strand(fwd)
	for _, c := range p.strand(rc) {
		out = append(out, strand.Remap(c, len(seq)))
	}
	return score.Annotate(out)
}

func (p Plan) strand(seq []byte) []guide.Candidate {
	return guide.Extract(seq, p.pam.Len(), p.guideLen, p.pam.FindAll(seq))
}

// Scan compiles pam and scans sequence once.
func Scan(sequence, pam string) ([]guide.Candidate, error) {
	p, err := NewPlan(pam)
	if err != nil {
		return nil, err
	}
	return p.Scan([]byte(sequence)), nil
}
