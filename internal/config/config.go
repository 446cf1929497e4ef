// Package config is for app wide settings that are unmarshalled
// from Viper (flags, GUIDESCAN_* environment, optional YAML file).
package config

import (
	"errors"
	"fmt"
	"runtime"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"guidescan/internal/diagram"
	"guidescan/internal/guide"
	"guidescan/internal/output"
)

var ErrInvalid = errors.New("invalid configuration")

// EnvPrefix prefixes every environment override, e.g. GUIDESCAN_GUIDE_LEN.
const EnvPrefix = "GUIDESCAN"

// SimConfig generates a synthetic record instead of reading FASTA.
type SimConfig struct {
	Length int     `mapstructure:"sim-len"`
	GC     float64 `mapstructure:"sim-gc"`
	Seed   int64   `mapstructure:"sim-seed"`
}

// Config is the root-level settings struct.
type Config struct {
	// input FASTA path, "-" for stdin
	FASTA string `mapstructure:"fasta"`

	// PAM preset name or literal pattern over {A,C,G,T,N}
	PAM string `mapstructure:"pam"`

	// optional YAML file with extra PAM presets
	PAMFile string `mapstructure:"pam-file"`

	// protospacer length upstream of the PAM
	GuideLen int `mapstructure:"guide-len"`

	// output format and destination ("-" is stdout)
	Format string `mapstructure:"format"`
	Out    string `mapstructure:"out"`

	// optional run summary JSON path
	JSON string `mapstructure:"json"`

	// per-record position diagrams
	PlotDir    string `mapstructure:"plot-dir"`
	PlotFormat string `mapstructure:"plot-format"`

	// presentation: order and score filter
	Sort     string  `mapstructure:"sort"`
	MinScore float64 `mapstructure:"min-score"`

	Threads int  `mapstructure:"threads"`
	Verbose bool `mapstructure:"verbose"`

	Sim SimConfig `mapstructure:",squash"`
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("fasta", "")
	v.SetDefault("pam", "SpCas9")
	v.SetDefault("pam-file", "")
	v.SetDefault("guide-len", guide.DefaultLength)
	v.SetDefault("format", "table")
	v.SetDefault("out", "-")
	v.SetDefault("json", "")
	v.SetDefault("plot-dir", "")
	v.SetDefault("plot-format", "png")
	v.SetDefault("sort", output.SortNone)
	v.SetDefault("min-score", 0.0)
	v.SetDefault("threads", runtime.NumCPU())
	v.SetDefault("verbose", false)
	v.SetDefault("sim-len", 0)
	v.SetDefault("sim-gc", 0.5)
	v.SetDefault("sim-seed", int64(0))
}

// New returns a Viper instance with defaults and environment overrides wired.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile merges a YAML (or any Viper-supported) config file into v.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

// Load decodes and validates v.
func Load(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unable to decode into struct: %w", err)
	}
	return c, c.Validate()
}

// Validate checks ranges and the choice of input.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}
	switch {
	case c.FASTA == "" && c.Sim.Length <= 0:
		bad("one of --fasta or --sim-len is required")
	case c.FASTA != "" && c.Sim.Length > 0:
		bad("--fasta and --sim-len are mutually exclusive")
	}
	if strings.TrimSpace(c.PAM) == "" {
		bad("--pam must not be empty")
	}
	if c.GuideLen < 1 {
		bad("--guide-len must be >= 1 (got %d)", c.GuideLen)
	}
	if c.Threads < 1 {
		bad("--threads must be >= 1 (got %d)", c.Threads)
	}
	if !slices.Contains(output.Formats(), c.Format) {
		bad("--format %q not in %v", c.Format, output.Formats())
	}
	if !slices.Contains([]string{output.SortNone, output.SortPosition, output.SortScore}, c.Sort) {
		bad("--sort %q not in [none position score]", c.Sort)
	}
	if c.PlotDir != "" && !slices.Contains(diagram.Formats, c.PlotFormat) {
		bad("--plot-format %q not in %v", c.PlotFormat, diagram.Formats)
	}
	if c.MinScore < 0 || c.MinScore > 1 {
		bad("--min-score must be in [0,1] (got %g)", c.MinScore)
	}
	if c.Sim.GC < 0 || c.Sim.GC > 1 {
		bad("--sim-gc must be in [0,1] (got %g)", c.Sim.GC)
	}
	return errors.Join(errs...)
}
