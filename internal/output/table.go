package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// NoGuides is printed for a record without candidates.
const NoGuides = "no guides found"

func init() {
	Register("table", newTableWriter)
}

type tableWriter struct {
	w      io.Writer
	title  lipgloss.Style
	header lipgloss.Style
	cell   lipgloss.Style
	fwd    lipgloss.Style
	rev    lipgloss.Style
}

func newTableWriter(w io.Writer) Writer {
	// the renderer inspects w, so plain buffers and pipes get no ANSI codes
	r := lipgloss.NewRenderer(w)
	cell := r.NewStyle().Padding(0, 1)
	return &tableWriter{
		w:      w,
		title:  r.NewStyle().Bold(true),
		header: cell.Bold(true),
		cell:   cell,
		fwd:    cell.Foreground(lipgloss.Color("1")),
		rev:    cell.Foreground(lipgloss.Color("4")),
	}
}

func (t *tableWriter) Begin() error { return nil }

func (t *tableWriter) Record(r Result) error {
	title := t.title.Render(fmt.Sprintf("%s (%d bp)", r.ID, r.Length))
	if len(r.Candidates) == 0 {
		_, err := fmt.Fprintf(t.w, "%s: %s\n\n", title, NoGuides)
		return err
	}

	rows := make([][]string, len(r.Candidates))
	for i, c := range r.Candidates {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			c.Guide,
			c.PAM,
			strconv.Itoa(c.Start),
			strconv.Itoa(c.End),
			string(c.Strand),
			strconv.FormatFloat(c.GC, 'f', 2, 64),
			strconv.FormatFloat(c.Score, 'f', 4, 64),
		}
	}
	const strandCol = 5
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "guide_sequence", "pam", "start", "end", "strand", "gc_content", "score").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return t.header
			case col == strandCol && row >= 0 && row < len(rows):
				if rows[row][strandCol] == "reverse" {
					return t.rev
				}
				return t.fwd
			}
			return t.cell
		})

	_, err := fmt.Fprintf(t.w, "%s: %d guides\n%s\n\n", title, len(r.Candidates), tbl.String())
	return err
}

func (t *tableWriter) End() error { return nil }
