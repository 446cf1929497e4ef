// Package diagram draws the linear guide-position diagram of one record:
// a black axis from 0 to the record length, forward guides in red and
// reverse guides in blue.
package diagram

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"guidescan/internal/guide"
)

var (
	axisColor    = color.Black
	forwardColor = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
	reverseColor = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
)

const (
	width  = 10 * vg.Inch
	height = 2 * vg.Inch
)

// Formats supported by Write.
var Formats = []string{"png", "svg", "pdf"}

// New builds the diagram.
func New(id string, length int, cands []guide.Candidate) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Guide positions: %s", id)
	p.X.Label.Text = "Sequence position"
	p.X.Min, p.X.Max = 0, float64(max(length, 1))
	p.Y.Min, p.Y.Max = -1, 1
	p.HideY()

	axis, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: float64(length), Y: 0}})
	if err != nil {
		return nil, err
	}
	axis.Color = axisColor
	axis.Width = vg.Points(1)
	p.Add(axis)

	for _, c := range cands {
		seg, err := plotter.NewLine(plotter.XYs{{X: float64(c.Start), Y: 0}, {X: float64(c.End), Y: 0}})
		if err != nil {
			return nil, err
		}
		seg.Width = vg.Points(4)
		seg.Color = forwardColor
		if c.Strand == guide.Reverse {
			seg.Color = reverseColor
		}
		p.Add(seg)
	}
	return p, nil
}

// Write renders the diagram to w in the given format.
func Write(w io.Writer, format, id string, length int, cands []guide.Candidate) error {
	p, err := New(id, length, cands)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(width, height, format)
	if err != nil {
		return fmt.Errorf("plot %s: %w", id, err)
	}
	_, err = wt.WriteTo(w)
	return err
}

// Save writes <dir>/<id>.<format> and returns the path.
func Save(dir, format, id string, length int, cands []guide.Candidate) (string, error) {
	path := filepath.Join(dir, fileName(id)+"."+format)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := Write(f, format, id, length, cands); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}

// fileName keeps record IDs usable as file names.
func fileName(id string) string {
	if id == "" {
		return "record"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}
		return r
	}, id)
}
