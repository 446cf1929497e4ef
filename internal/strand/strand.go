// internal/strand/strand.go
package strand

import "guidescan/internal/guide"

var complement, upper [256]byte

func init() {
	for i := range complement {
		c := byte(i)
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		upper[i] = c
		complement[i] = c // unknown symbols pass through, upper-cased
	}
	complement['A'], complement['a'] = 'T', 'T'
	complement['T'], complement['t'] = 'A', 'A'
	complement['C'], complement['c'] = 'G', 'G'
	complement['G'], complement['g'] = 'C', 'C'
}

// ToUpper upper-cases ASCII letters byte by byte. Every other byte, including
// each byte of a multi-byte or invalid UTF-8 sequence, is kept, so the result
// always has len(seq) bytes.
func ToUpper(seq []byte) []byte {
	out := make([]byte, len(seq))
	for i, b := range seq {
		out[i] = upper[b]
	}
	return out
}

// ReverseComplement returns the upper-case reverse complement of seq.
// Symbols other than A/C/G/T are kept as they are (upper-cased).
func ReverseComplement(seq []byte) []byte {
	n := len(seq)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = complement[seq[n-1-i]]
	}
	return out
}

// Remap moves a candidate found on the reverse complement of a sequence of
// length n onto the forward axis and flips its strand. Guide and PAM are left
// as read on the scanned strand. Remap(Remap(c, n), n) == c.
func Remap(c guide.Candidate, n int) guide.Candidate {
	c.Start, c.End = n-c.End, n-c.Start
	c.Strand = c.Strand.Opposite()
	return c
}
