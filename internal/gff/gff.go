package gff

import (
	"fmt"
	"io"

	"guidescan/internal/guide"
)

const (
	Header  = "##gff-version 3\n"
	source  = "guidescan"
	feature = "sgRNA"
)

// WriteLines writes feature lines only; callers emit Header once per file.
// Coordinates are converted to *1-based closed* as GFF expects; the score
// column carries the GC score.
func WriteLines(w io.Writer, seqID string, cands []guide.Candidate) error {
	for i, c := range cands {
		if _, err := fmt.Fprintf(
			w,
			"%s\t%s\t%s\t%d\t%d\t%.3f\t%s\t.\tID=%s_guide%d;sequence=%s;pam=%s;gc=%.1f\n",
			seqID, source, feature, c.Start+1, c.End, c.Score, c.Strand.Sign(),
			seqID, i+1, c.Guide, c.PAM, c.GC,
		); err != nil {
			return err
		}
	}
	return nil
}
