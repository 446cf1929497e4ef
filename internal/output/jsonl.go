package output

import (
	"bufio"
	"encoding/json"
	"io"

	"guidescan/internal/guide"
)

func init() {
	Register("jsonl", func(w io.Writer) Writer {
		bw := bufio.NewWriter(w)
		return &jsonlWriter{bw: bw, enc: json.NewEncoder(bw)}
	})
}

// jsonRow is one candidate per line, tagged with its record.
type jsonRow struct {
	Record string `json:"record"`
	guide.Candidate
}

type jsonlWriter struct {
	bw  *bufio.Writer
	enc *json.Encoder
}

func (j *jsonlWriter) Begin() error { return nil }

func (j *jsonlWriter) Record(r Result) error {
	for _, c := range r.Candidates {
		if err := j.enc.Encode(jsonRow{Record: r.ID, Candidate: c}); err != nil {
			return err
		}
	}
	return j.bw.Flush()
}

func (j *jsonlWriter) End() error { return j.bw.Flush() }
