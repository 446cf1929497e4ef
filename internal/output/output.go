// Package output renders scan results. Writers are looked up by format name.
package output

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"syscall"

	"guidescan/internal/guide"
)

var ErrUnknownFormat = errors.New("output: unknown format")

// Result is the candidate list of one sequence record.
type Result struct {
	ID         string
	Length     int
	Candidates []guide.Candidate
}

// Writer receives results in input order between Begin and End.
type Writer interface {
	Begin() error
	Record(Result) error
	End() error
}

// Factory builds a Writer on top of w.
type Factory func(w io.Writer) Writer

var registry = map[string]Factory{}

// Register is last-wins.
func Register(format string, f Factory) { registry[format] = f }

// New returns the writer registered for format.
func New(format string, w io.Writer) (Writer, error) {
	f, ok := registry[format]
	if !ok {
		return nil, fmt.Errorf("%w %q (want one of %v)", ErrUnknownFormat, format, Formats())
	}
	return f(w), nil
}

// Formats lists the registered format names, sorted.
func Formats() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// IsBrokenPipe reports whether an error is a broken pipe / closed pipe.
// Downstream consumers (like `head`) close early.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}
