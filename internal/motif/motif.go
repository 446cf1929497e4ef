// internal/motif/motif.go
package motif

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyPattern = errors.New("motif: empty pattern")
	ErrInvalidBase  = errors.New("motif: invalid pattern base")
)

// 4-bit mask per base
var codeMap = [256]uint8{
	'A': 1 << 0,
	'C': 1 << 1,
	'G': 1 << 2,
	'T': 1 << 3,
	'N': (1 << 0) | (1 << 1) | (1 << 2) | (1 << 3),
}

// Pattern is a compiled motif: one mask per position.
type Pattern struct {
	text string
	mask []uint8
}

// Compile converts a motif over {A,C,G,T,N} (any case) into a Pattern.
func Compile(pattern string) (Pattern, error) {
	if len(pattern) == 0 {
		return Pattern{}, ErrEmptyPattern
	}
	mask := make([]uint8, len(pattern))
	text := make([]byte, len(pattern))
	for i := 0; i < len(pattern); i++ {
		c := upper(pattern[i])
		m := codeMap[c]
		if m == 0 {
			return Pattern{}, fmt.Errorf("%w %q at position %d", ErrInvalidBase, pattern[i], i)
		}
		mask[i] = m
		text[i] = c
	}
	return Pattern{text: string(text), mask: mask}, nil
}

// MustCompile is Compile for patterns known to be valid; it panics otherwise.
func MustCompile(pattern string) Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

// Len is the motif length.
func (p Pattern) Len() int { return len(p.mask) }

// String returns the upper-cased pattern text.
func (p Pattern) String() string { return p.text }

// seqMask maps a sequence base to its mask. Only A/C/G/T carry bits, so a
// literal 'N' (or anything else) in the sequence never matches, not even a
// wildcard position.
func seqMask(b byte) uint8 {
	switch upper(b) {
	case 'A':
		return 1 << 0
	case 'C':
		return 1 << 1
	case 'G':
		return 1 << 2
	case 'T':
		return 1 << 3
	}
	return 0
}

// MatchAt reports whether the pattern matches seq starting at offset i.
func (p Pattern) MatchAt(seq []byte, i int) bool {
	n := len(p.mask)
	if n == 0 || i < 0 || i+n > len(seq) {
		return false
	}
	// fast reject on last position
	if seqMask(seq[i+n-1])&p.mask[n-1] == 0 {
		return false
	}
	for j := 0; j < n-1; j++ {
		if seqMask(seq[i+j])&p.mask[j] == 0 {
			return false
		}
	}
	return true
}

// FindAll returns every start offset where the pattern matches, overlapping
// matches included, in increasing order.
func (p Pattern) FindAll(seq []byte) []int {
	n := len(p.mask)
	if n == 0 || len(seq) < n {
		return nil
	}
	var out []int
	for pos := 0; pos <= len(seq)-n; pos++ {
		if p.MatchAt(seq, pos) {
			out = append(out, pos)
		}
	}
	return out
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	return c
}
