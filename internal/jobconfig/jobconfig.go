// Package jobconfig resolves the typed configuration a stacker job runs
// with: rule-weight overrides, panel scale, adjacency tolerance,
// root retry cap, and the RNG seed. Resolution order is flags > env
// > file > defaults (via viper), with TOML files decoded through
// pelletier/go-toml/v2. Configuration is validated once, before any
// optimizer/orchestrator call, so a bad job file fails fast rather than
// mid-search (spec.md §7).
package jobconfig

import (
	"errors"
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/plystack/laminate/ply"
)

// ErrInvalidWeights wraps a ply.WeightMap validation failure found while
// resolving a Config.
var ErrInvalidWeights = errors.New("jobconfig: invalid rule weight overrides")

// Config is the fully-resolved, validated configuration for one stacker
// invocation.
type Config struct {
	// Weights overrides ply.DefaultWeights; zero-value means "use
	// defaults".
	Weights ply.WeightMap
	// Seed is the deterministic RNG seed shared across the run.
	Seed int64
	// PanelScaleMM is the physical length a panel's pixel geometry maps
	// to (spec.md §4.5); 0 uses orchestrator.DefaultPanelScaleMM.
	PanelScaleMM float64
	// AdjacencyTolerancePx overrides the neighbour-graph gap tolerance
	// (spec.md §4.5's "[0, 40] pixels"); 0 uses the spec default.
	AdjacencyTolerancePx int
	// MaxRootRetries overrides orchestrator.MaxRootRetries; 0 uses the
	// spec default (5).
	MaxRootRetries int
	// Verbose records the resolved "verbose" setting; the CLI sets its
	// logger level from its own --verbose flag, not from this field.
	Verbose bool
}

// rawConfig mirrors Config's shape for viper/TOML decoding, using plain
// maps/slices where the typed Config uses fixed-size domain types.
type rawConfig struct {
	Weights              map[string]float64 `mapstructure:"weights" toml:"weights"`
	Seed                 int64              `mapstructure:"seed" toml:"seed"`
	PanelScaleMM         float64            `mapstructure:"panel_scale_mm" toml:"panel_scale_mm"`
	AdjacencyTolerancePx int                `mapstructure:"adjacency_tolerance_px" toml:"adjacency_tolerance_px"`
	MaxRootRetries       int                `mapstructure:"max_root_retries" toml:"max_root_retries"`
	Verbose              bool               `mapstructure:"verbose" toml:"verbose"`
}

// Load resolves configuration in flags > env > file > defaults order
// (spec.md §6's CLI/config surface). filePath may be empty (defaults +
// flags + env only). flags, if non-nil, is consulted for overrides bound
// by the caller via viper.BindPFlags semantics before Load runs.
func Load(filePath string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("STACKER")
	v.AutomaticEnv()

	v.SetDefault("seed", int64(0))
	v.SetDefault("panel_scale_mm", 0.0)
	v.SetDefault("adjacency_tolerance_px", 0)
	v.SetDefault("max_root_retries", 0)
	v.SetDefault("verbose", false)

	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return Config{}, fmt.Errorf("jobconfig: read %s: %w", filePath, err)
		}
		var raw rawConfig
		if err := toml.Unmarshal(data, &raw); err != nil {
			return Config{}, fmt.Errorf("jobconfig: parse %s: %w", filePath, err)
		}
		applyRawDefaults(v, raw)
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("jobconfig: bind flags: %w", err)
		}
	}

	weights, err := resolveWeights(v)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Weights:              weights,
		Seed:                 v.GetInt64("seed"),
		PanelScaleMM:         v.GetFloat64("panel_scale_mm"),
		AdjacencyTolerancePx: v.GetInt("adjacency_tolerance_px"),
		MaxRootRetries:       v.GetInt("max_root_retries"),
		Verbose:              v.GetBool("verbose"),
	}
	return cfg, nil
}

func applyRawDefaults(v *viper.Viper, raw rawConfig) {
	v.SetDefault("seed", raw.Seed)
	v.SetDefault("panel_scale_mm", raw.PanelScaleMM)
	v.SetDefault("adjacency_tolerance_px", raw.AdjacencyTolerancePx)
	v.SetDefault("max_root_retries", raw.MaxRootRetries)
	v.SetDefault("verbose", raw.Verbose)
	if len(raw.Weights) > 0 {
		m := make(map[string]interface{}, len(raw.Weights))
		for k, w := range raw.Weights {
			m[k] = w
		}
		v.SetDefault("weights", m)
	}
}

// resolveWeights reads an optional "weights" map keyed by rule name
// (r1..r8) and, if present, builds and validates a ply.WeightMap;
// absent entirely, it returns the zero-value WeightMap (callers treat
// zero-value as "use ply.DefaultWeights").
func resolveWeights(v *viper.Viper) (ply.WeightMap, error) {
	raw := v.GetStringMap("weights")
	if len(raw) == 0 {
		return ply.WeightMap{}, nil
	}

	names := [ply.NumRules]string{"r1", "r2", "r3", "r4", "r5", "r6", "r7", "r8"}
	weights := ply.DefaultWeights
	for i, name := range names {
		if val, ok := raw[name]; ok {
			f, ok := toFloat64(val)
			if !ok {
				return ply.WeightMap{}, fmt.Errorf("%w: %s is not numeric", ErrInvalidWeights, name)
			}
			weights[i] = f
		}
	}
	if err := weights.Validate(); err != nil {
		return ply.WeightMap{}, fmt.Errorf("%w: %v", ErrInvalidWeights, err)
	}
	return weights, nil
}

func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
