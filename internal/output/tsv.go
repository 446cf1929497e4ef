package output

import (
	"bufio"
	"fmt"
	"io"
)

const tsvHeader = "record\tguide_sequence\tpam\tstart\tend\tstrand\tgc_content\tscore\n"

func init() {
	Register("tsv", func(w io.Writer) Writer { return &tsvWriter{bw: bufio.NewWriter(w)} })
}

type tsvWriter struct {
	bw *bufio.Writer
}

func (t *tsvWriter) Begin() error {
	_, err := t.bw.WriteString(tsvHeader)
	return err
}

func (t *tsvWriter) Record(r Result) error {
	for _, c := range r.Candidates {
		if _, err := fmt.Fprintf(t.bw, "%s\t%s\t%s\t%d\t%d\t%s\t%.2f\t%.4f\n",
			r.ID, c.Guide, c.PAM, c.Start, c.End, c.Strand, c.GC, c.Score); err != nil {
			return err
		}
	}
	// flush per record so piped consumers see progress
	return t.bw.Flush()
}

func (t *tsvWriter) End() error { return t.bw.Flush() }
