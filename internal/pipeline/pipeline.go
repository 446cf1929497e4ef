// Package pipeline wires the record source, the scan workers, the ordered
// collector and the optional diagram and summary outputs.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"guidescan/internal/collector"
	"guidescan/internal/config"
	"guidescan/internal/diagram"
	"guidescan/internal/fasta"
	"guidescan/internal/motif"
	"guidescan/internal/output"
	"guidescan/internal/scan"
	"guidescan/internal/sim"
)

// SimID names the synthetic record.
const SimID = "sim"

// Summary is written to --json after the run.
type Summary struct {
	RunID    string  `json:"run_id"`
	PAM      string  `json:"pam"`
	Pattern  string  `json:"pattern"`
	GuideLen int     `json:"guide_length"`
	Source   string  `json:"source"`
	Sort     string  `json:"sort"`
	MinScore float64 `json:"min_score"`
	collector.Stats
}

type job struct {
	idx int
	rec fasta.Record
}

// Run scans every record of the configured source and writes the results to
// stdout (or cfg.Out). Records are scanned in parallel; output keeps input order.
func Run(ctx context.Context, cfg config.Config, stdout io.Writer, log *zap.Logger) (Summary, error) {
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}
	presets := motif.Builtin()
	if cfg.PAMFile != "" {
		var err error
		if presets, err = presets.LoadPresets(cfg.PAMFile); err != nil {
			return Summary{}, fmt.Errorf("pam presets: %w", err)
		}
	}
	plan, err := scan.NewPlanWithOptions(presets.Resolve(cfg.PAM), scan.Options{GuideLen: cfg.GuideLen})
	if err != nil {
		return Summary{}, err
	}

	sum := Summary{
		RunID:    uuid.NewString(),
		PAM:      cfg.PAM,
		Pattern:  plan.PAM(),
		GuideLen: plan.GuideLen(),
		Source:   cfg.FASTA,
		Sort:     cfg.Sort,
		MinScore: cfg.MinScore,
	}
	if cfg.Sim.Length > 0 {
		sum.Source = SimID
	}
	log.Info("scan started",
		zap.String("run_id", sum.RunID),
		zap.String("pam", sum.Pattern),
		zap.Int("guide_len", sum.GuideLen),
		zap.String("source", sum.Source),
		zap.Int("threads", cfg.Threads))

	dst := stdout
	if cfg.Out != "" && cfg.Out != "-" {
		f, err := os.Create(cfg.Out)
		if err != nil {
			return Summary{}, err
		}
		defer f.Close()
		dst = f
	}
	if cfg.PlotDir != "" {
		if err := os.MkdirAll(cfg.PlotDir, 0o755); err != nil {
			return Summary{}, err
		}
	}

	w, err := output.New(cfg.Format, dst)
	if err != nil {
		return Summary{}, err
	}
	cIn, done, err := collector.New(w)
	if err != nil {
		return Summary{}, fmt.Errorf("collector: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	// ---- source ------------------------------------------------------------
	recs := make(chan fasta.Record)
	if cfg.Sim.Length > 0 {
		g.Go(func() error {
			defer close(recs)
			seq := sim.Sequence(sim.Options{Length: cfg.Sim.Length, GC: cfg.Sim.GC, Seed: cfg.Sim.Seed})
			select {
			case recs <- fasta.Record{ID: SimID, Seq: seq}:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	} else {
		g.Go(func() error {
			if err := fasta.Stream(gctx, cfg.FASTA, recs); err != nil {
				return fmt.Errorf("fasta stream: %w", err)
			}
			return nil
		})
	}

	// ---- index records for deterministic output order ------------------------
	jobs := make(chan job, cfg.Threads)
	g.Go(func() error {
		defer close(jobs)
		idx := 0
		for rec := range recs {
			select {
			case jobs <- job{idx: idx, rec: rec}:
				idx++
			case <-gctx.Done():
				for range recs {
				}
				return gctx.Err()
			}
		}
		return nil
	})

	// ---- workers -------------------------------------------------------------
	for i := 0; i < cfg.Threads; i++ {
		g.Go(func() error {
			for j := range jobs {
				res, err := scanRecord(plan, cfg, j.rec, log)
				if err != nil {
					return err
				}
				// send even if empty to advance deterministic ordering
				select {
				case cIn <- collector.Msg{Idx: j.idx, Result: res}:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}

	runErr := g.Wait()
	close(cIn)
	sum.Stats = <-done

	if runErr != nil {
		return sum, runErr
	}
	if err := sum.Stats.Err; err != nil {
		if !output.IsBrokenPipe(err) {
			return sum, fmt.Errorf("write %s: %w", cfg.Format, err)
		}
		log.Debug("output closed early", zap.Error(err))
	}

	log.Info("scan finished",
		zap.String("run_id", sum.RunID),
		zap.Int("records", sum.Records),
		zap.Int("candidates", sum.TotalCandidates),
		zap.Int("forward", sum.Forward),
		zap.Int("reverse", sum.Reverse))

	if cfg.JSON != "" {
		if err := writeSummary(cfg.JSON, sum); err != nil {
			return sum, err
		}
	}
	return sum, nil
}

func scanRecord(plan scan.Plan, cfg config.Config, rec fasta.Record, log *zap.Logger) (output.Result, error) {
	cands, err := output.Arrange(plan.Scan(rec.Seq), cfg.Sort, cfg.MinScore)
	if err != nil {
		return output.Result{}, err
	}
	res := output.Result{ID: rec.ID, Length: len(rec.Seq), Candidates: cands}
	log.Debug("scanned record",
		zap.String("record", rec.ID),
		zap.Int("length", res.Length),
		zap.Int("candidates", len(cands)))

	if cfg.PlotDir != "" {
		path, err := diagram.Save(cfg.PlotDir, cfg.PlotFormat, rec.ID, res.Length, cands)
		if err != nil {
			return output.Result{}, fmt.Errorf("diagram %s: %w", rec.ID, err)
		}
		log.Debug("wrote diagram", zap.String("record", rec.ID), zap.String("path", path))
	}
	return res, nil
}

func writeSummary(path string, sum Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sum); err != nil {
		f.Close()
		return fmt.Errorf("encode json: %w", err)
	}
	return f.Close()
}
