package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guidescan/internal/guide"
)

var sample = Result{
	ID:     "chr1",
	Length: 47,
	Candidates: []guide.Candidate{
		{Guide: strings.Repeat("A", 20), PAM: "CGG", Start: 0, End: 20, Strand: guide.Forward},
		{Guide: strings.Repeat("AG", 10), PAM: "TGG", Start: 27, End: 47, Strand: guide.Reverse, GC: 50, Score: 1},
	},
}

func render(t *testing.T, format string, rs ...Result) string {
	t.Helper()
	var buf bytes.Buffer
	w, err := New(format, &buf)
	require.NoError(t, err)
	require.NoError(t, w.Begin())
	for _, r := range rs {
		require.NoError(t, w.Record(r))
	}
	require.NoError(t, w.End())
	return buf.String()
}

func TestNew_UnknownFormat(t *testing.T) {
	_, err := New("xlsx", io.Discard)
	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.Equal(t, []string{"gff", "jsonl", "table", "tsv"}, Formats())
}

func TestTSV(t *testing.T) {
	got := render(t, "tsv", sample)
	lines := strings.Split(strings.TrimSpace(got), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.TrimSpace(tsvHeader), lines[0])
	assert.Equal(t, "chr1\tAAAAAAAAAAAAAAAAAAAA\tCGG\t0\t20\tforward\t0.00\t0.0000", lines[1])
	assert.Equal(t, "chr1\tAGAGAGAGAGAGAGAGAGAG\tTGG\t27\t47\treverse\t50.00\t1.0000", lines[2])
}

func TestJSONL(t *testing.T) {
	got := render(t, "jsonl", sample)
	lines := strings.Split(strings.TrimSpace(got), "\n")
	require.Len(t, lines, 2)

	var row map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &row))
	assert.Equal(t, "chr1", row["record"])
	assert.Equal(t, "reverse", row["strand"])
	assert.Equal(t, 27.0, row["start"])
	assert.Equal(t, 1.0, row["score"])
	assert.Equal(t, strings.Repeat("AG", 10), row["guide_sequence"])
}

func TestGFF_HeaderOnce(t *testing.T) {
	got := render(t, "gff", sample, Result{ID: "chr2"}, sample)
	assert.Equal(t, 1, strings.Count(got, "##gff-version 3"))
	assert.Equal(t, 5, strings.Count(got, "\n"))
}

func TestTable(t *testing.T) {
	got := render(t, "table", sample, Result{ID: "empty", Length: 3})
	assert.Contains(t, got, "chr1 (47 bp): 2 guides")
	assert.Contains(t, got, "guide_sequence")
	assert.Contains(t, got, strings.Repeat("AG", 10))
	assert.Contains(t, got, "reverse")
	assert.Contains(t, got, "empty (3 bp): "+NoGuides)
	assert.NotContains(t, got, "\x1b[", "non-terminal writers get plain text")
}

func TestArrange(t *testing.T) {
	cands := []guide.Candidate{
		{Start: 30, Strand: guide.Forward, Score: 0.2},
		{Start: 10, Strand: guide.Reverse, Score: 0.9},
		{Start: 10, Strand: guide.Forward, Score: 0.5},
	}

	got, err := Arrange(cands, SortPosition, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 10, 30}, starts(got))
	assert.Equal(t, guide.Forward, got[0].Strand)

	got, err = Arrange(cands, SortScore, 0.3)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.9, 0.5}, scores(got))

	got, err = Arrange(cands, SortNone, 0)
	require.NoError(t, err)
	assert.Equal(t, cands, got)

	_, err = Arrange(cands, "random", 0)
	assert.Error(t, err)
}

func TestIsBrokenPipe(t *testing.T) {
	assert.True(t, IsBrokenPipe(fmt.Errorf("write: %w", syscall.EPIPE)))
	assert.True(t, IsBrokenPipe(io.ErrClosedPipe))
	assert.False(t, IsBrokenPipe(io.EOF))
	assert.False(t, IsBrokenPipe(nil))
}

func starts(cs []guide.Candidate) []int {
	out := make([]int, len(cs))
	for i, c := range cs {
		out[i] = c.Start
	}
	return out
}

func scores(cs []guide.Candidate) []float64 {
	out := make([]float64, len(cs))
	for i, c := range cs {
		out[i] = c.Score
	}
	return out
}
