package collector

import (
	"guidescan/internal/guide"
	"guidescan/internal/output"
)

// Msg delivers the candidates of one record. Idx is the record's position in
// the input; the collector writes records in Idx order.
type Msg struct {
	Idx    int
	Result output.Result
}

// RecordStats counts one record. IDs need not be unique or non-empty.
type RecordStats struct {
	ID      string `json:"id"`
	Length  int    `json:"length"`
	Forward int    `json:"forward"`
	Reverse int    `json:"reverse"`
}

// Stats is emitted after the input channel closes.
type Stats struct {
	Records         int           `json:"records"`
	TotalBases      int           `json:"total_bases"`
	TotalCandidates int           `json:"total_candidates"`
	Forward         int           `json:"forward"`
	Reverse         int           `json:"reverse"`
	PerRecord       []RecordStats `json:"per_record"` // input order

	// Err is the first writer error. After it the collector keeps draining
	// its input without writing.
	Err error `json:"-"`
}

// New starts the collector goroutine.
//   - send Msg values on the returned chan
//   - close the chan when workers are done
//   - read the final Stats from the second chan
func New(w output.Writer) (chan<- Msg, <-chan Stats, error) {
	if err := w.Begin(); err != nil {
		return nil, nil, err
	}

	in := make(chan Msg)
	out := make(chan Stats, 1)

	go func() {
		defer close(out)

		stats := Stats{PerRecord: []RecordStats{}}
		pending := make(map[int]output.Result)
		next := 0

		emit := func(r output.Result) {
			rs := RecordStats{ID: r.ID, Length: r.Length}
			for _, c := range r.Candidates {
				if c.Strand == guide.Reverse {
					rs.Reverse++
				} else {
					rs.Forward++
				}
			}
			stats.Records++
			stats.TotalBases += r.Length
			stats.TotalCandidates += len(r.Candidates)
			stats.Forward += rs.Forward
			stats.Reverse += rs.Reverse
			stats.PerRecord = append(stats.PerRecord, rs)
			if stats.Err == nil {
				stats.Err = w.Record(r)
			}
		}

		for msg := range in {
			pending[msg.Idx] = msg.Result
			for {
				r, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				emit(r)
				next++
			}
		}
		// gaps in Idx: flush whatever is left in order
		for len(pending) > 0 {
			if r, ok := pending[next]; ok {
				delete(pending, next)
				emit(r)
			}
			next++
		}
		if err := w.End(); stats.Err == nil {
			stats.Err = err
		}
		out <- stats
	}()

	return in, out, nil
}
