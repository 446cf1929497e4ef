package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"guidescan/internal/config"
	"guidescan/internal/scan"
	"guidescan/internal/sim"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func baseConfig() config.Config {
	return config.Config{
		PAM:        "SpCas9",
		GuideLen:   20,
		Format:     "tsv",
		Out:        "-",
		PlotFormat: "svg",
		Sort:       "none",
		Threads:    4,
		Sim:        config.SimConfig{GC: 0.5},
	}
}

func writeFASTA(t *testing.T, records ...string) string {
	t.Helper()
	var b strings.Builder
	for i, seq := range records {
		fmt.Fprintf(&b, ">rec%d\n%s\n", i, seq)
	}
	path := filepath.Join(t.TempDir(), "in.fa")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

var forwardOnly = strings.Repeat("A", 20) + "CGG" + "AAAA"

func TestRun_FASTAKeepsInputOrder(t *testing.T) {
	var seqs []string
	for i := 0; i < 20; i++ {
		seqs = append(seqs, forwardOnly)
	}
	cfg := baseConfig()
	cfg.FASTA = writeFASTA(t, seqs...)

	var out bytes.Buffer
	sum, err := Run(context.Background(), cfg, &out, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.Equal(t, 20, sum.Records)
	assert.Equal(t, 20, sum.TotalCandidates)
	assert.Equal(t, 20, sum.Forward)
	assert.Equal(t, "NGG", sum.Pattern)
	assert.NotEmpty(t, sum.RunID)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 21)
	for i, l := range lines[1:] {
		assert.True(t, strings.HasPrefix(l, fmt.Sprintf("rec%d\t", i)), l)
		assert.Contains(t, l, "\tAAAAAAAAAAAAAAAAAAAA\tCGG\t0\t20\tforward\t0.00\t0.0000")
	}
}

func TestRun_MatchesDirectScan(t *testing.T) {
	cfg := baseConfig()
	cfg.Sim = config.SimConfig{Length: 5000, GC: 0.5, Seed: 11}
	cfg.Format = "jsonl"

	var out bytes.Buffer
	sum, err := Run(context.Background(), cfg, &out, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, SimID, sum.Source)

	plan, err := scan.NewPlan("NGG")
	require.NoError(t, err)
	want := plan.Scan(sim.Sequence(sim.Options{Length: 5000, GC: 0.5, Seed: 11}))
	require.NotEmpty(t, want)
	assert.Equal(t, len(want), sum.TotalCandidates)
	assert.Equal(t, len(want), strings.Count(out.String(), "\n"))
}

func TestRun_SummaryAndDiagrams(t *testing.T) {
	dir := t.TempDir()
	cfg := baseConfig()
	cfg.FASTA = writeFASTA(t, forwardOnly, "ACGT")
	cfg.JSON = filepath.Join(dir, "run.json")
	cfg.PlotDir = filepath.Join(dir, "plots")
	cfg.Out = filepath.Join(dir, "guides.tsv")

	var stdout bytes.Buffer
	_, err := Run(context.Background(), cfg, &stdout, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Empty(t, stdout.String(), "--out redirects data away from stdout")

	raw, err := os.ReadFile(cfg.JSON)
	require.NoError(t, err)
	var doc struct {
		RunID     string `json:"run_id"`
		Pattern   string `json:"pattern"`
		Records   int    `json:"records"`
		PerRecord []struct {
			ID      string `json:"id"`
			Forward int    `json:"forward"`
		} `json:"per_record"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.NotEmpty(t, doc.RunID)
	assert.Equal(t, "NGG", doc.Pattern)
	assert.Equal(t, 2, doc.Records)
	require.Len(t, doc.PerRecord, 2)
	assert.Equal(t, "rec0", doc.PerRecord[0].ID)
	assert.Equal(t, 1, doc.PerRecord[0].Forward)
	assert.Equal(t, "rec1", doc.PerRecord[1].ID)

	for _, name := range []string{"rec0.svg", "rec1.svg"} {
		_, err := os.Stat(filepath.Join(cfg.PlotDir, name))
		assert.NoError(t, err, name)
	}
	data, err := os.ReadFile(cfg.Out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "rec0\t")
}

func TestRun_InvalidPAM(t *testing.T) {
	cfg := baseConfig()
	cfg.FASTA = writeFASTA(t, forwardOnly)
	cfg.PAM = "NGR"
	_, err := Run(context.Background(), cfg, &bytes.Buffer{}, zaptest.NewLogger(t))
	assert.ErrorIs(t, err, scan.ErrInvalidPattern)
}

func TestRun_PAMFile(t *testing.T) {
	presets := filepath.Join(t.TempDir(), "pams.yaml")
	require.NoError(t, os.WriteFile(presets, []byte("presets:\n  - name: AAA-Cas\n    pattern: AAA\n"), 0o644))

	cfg := baseConfig()
	cfg.FASTA = writeFASTA(t, strings.Repeat("C", 20)+"AAA")
	cfg.PAMFile = presets
	cfg.PAM = "aaa-cas"

	var out bytes.Buffer
	sum, err := Run(context.Background(), cfg, &out, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, "AAA", sum.Pattern)
	assert.Equal(t, 1, sum.Forward)
}

func TestRun_MissingFASTA(t *testing.T) {
	cfg := baseConfig()
	cfg.FASTA = filepath.Join(t.TempDir(), "missing.fa")
	_, err := Run(context.Background(), cfg, &bytes.Buffer{}, zaptest.NewLogger(t))
	assert.Error(t, err)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := baseConfig()
	cfg.Sim = config.SimConfig{Length: 1000, GC: 0.5, Seed: 1}
	_, err := Run(ctx, cfg, &bytes.Buffer{}, zaptest.NewLogger(t))
	assert.ErrorIs(t, err, context.Canceled)
}
