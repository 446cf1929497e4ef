package output

import (
	"bufio"
	"io"

	"guidescan/internal/gff"
)

func init() {
	Register("gff", func(w io.Writer) Writer { return &gffWriter{bw: bufio.NewWriter(w)} })
}

type gffWriter struct {
	bw *bufio.Writer
}

// header is written once
func (g *gffWriter) Begin() error {
	_, err := g.bw.WriteString(gff.Header)
	return err
}

func (g *gffWriter) Record(r Result) error {
	if err := gff.WriteLines(g.bw, r.ID, r.Candidates); err != nil {
		return err
	}
	return g.bw.Flush()
}

func (g *gffWriter) End() error { return g.bw.Flush() }
