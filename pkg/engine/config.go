package engine

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// EngineConfig holds the engine's tuning knobs, loaded from a TOML file or defaulted
// in code. Grounded on FrankyGo's config.go/config.toml pair: a flat struct decoded
// once at startup, with a DefaultConfig fallback when no file is given.
type EngineConfig struct {
	// MaxDepth caps iterative deepening; 0 defaults to search.MaxDepth.
	MaxDepth int `toml:"max_depth"`
	// TranspositionTableMB sizes the transposition table in megabytes.
	TranspositionTableMB uint64 `toml:"transposition_table_mb"`
	// HintCacheMB sizes the best-move hint cache in megabytes.
	HintCacheMB uint64 `toml:"hint_cache_mb"`
	// AspirationWindow is the aspiration-window half-width in centipawns.
	AspirationWindow int `toml:"aspiration_window"`
	// QuiescenceEnabled toggles the quiescence extension past the nominal horizon.
	QuiescenceEnabled bool `toml:"quiescence_enabled"`
	// NoiseCentipawns is the eval.Random noise range layered on top of the
	// deterministic evaluator; zero (the default) keeps evaluation deterministic.
	NoiseCentipawns int `toml:"noise_centipawns"`
	// DetectThreefoldRepetition toggles the repetition-history draw check (spec
	// §4.12); true by default since the spec requires it as in-scope.
	DetectThreefoldRepetition bool `toml:"detect_threefold_repetition"`
}

// DefaultConfig returns the engine's built-in tuning defaults, used when no TOML
// file is supplied.
func DefaultConfig() EngineConfig {
	return EngineConfig{
		MaxDepth:                  0, // 0 == search.MaxDepth
		TranspositionTableMB:      64,
		HintCacheMB:               1,
		AspirationWindow:          110,
		QuiescenceEnabled:         true,
		NoiseCentipawns:           0,
		DetectThreefoldRepetition: true,
	}
}

// LoadConfig decodes an EngineConfig from a TOML file at path, starting from
// DefaultConfig so an omitted field keeps its default rather than zeroing out.
func LoadConfig(path string) (EngineConfig, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return EngineConfig{}, fmt.Errorf("load config %v: %w", path, err)
	}
	return cfg, nil
}
