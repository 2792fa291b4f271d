// Package config loads engine configuration from a TOML file, falling back to documented
// defaults whenever the file is absent or malformed.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// SearchMode selects the root search algorithm.
type SearchMode string

const (
	NegamaxSingleProcess SearchMode = "NEGAMAX_SINGLE_PROCESS"
	PVS                  SearchMode = "PVS"
)

// MoveOrderMode selects which move-ordering heuristic drives exploration.
type MoveOrderMode string

const (
	MVVLVA    MoveOrderMode = "MVV_LVA"
	Killer    MoveOrderMode = "KILLER_MOVE"
	History   MoveOrderMode = "HISTORY"
	Composite MoveOrderMode = "COMPOSITE"
)

// Mode selects which frontend the engine is driven by.
type Mode string

const (
	Lichess Mode = "LICHESS"
	UCI     Mode = "UCI"
)

// Config holds the resolved engine configuration, with defaults already applied.
type Config struct {
	MaxDepth      int
	SearchMode    SearchMode
	MoveOrderMode MoveOrderMode

	EnableNullMovePruning    bool
	EnableFutilityPruning    bool
	EnableDeltaPruning       bool
	EnableTranspositionTable bool
	EnableAspirationWindows  bool

	MVVLVAWeight      float64
	KillerMovesWeight float64
	HistoryWeight     float64

	TimeWeight      float64
	IncrementWeight float64

	OpeningBookPath      string
	EndgameTablebasePath string

	Mode Mode
}

// Default returns the documented default configuration.
func Default() Config {
	return Config{
		MaxDepth:      6,
		SearchMode:    PVS,
		MoveOrderMode: Composite,

		EnableNullMovePruning:    true,
		EnableFutilityPruning:    true,
		EnableDeltaPruning:       true,
		EnableTranspositionTable: true,
		EnableAspirationWindows:  true,

		MVVLVAWeight:      3,
		KillerMovesWeight: 2,
		HistoryWeight:     1,

		TimeWeight:      0.1,
		IncrementWeight: 0.01,

		OpeningBookPath:      "",
		EndgameTablebasePath: "",

		Mode: UCI,
	}
}

// file is the TOML on-disk shape. Every field is optional; an absent field (nil) falls through
// to the corresponding Default() field in Load, while an explicit zero value is applied.
type file struct {
	MaxDepth      *int    `toml:"max_depth"`
	SearchMode    *string `toml:"search_mode"`
	MoveOrderMode *string `toml:"move_order_mode"`

	EnableNullMovePruning    *bool `toml:"enable_null_move_pruning"`
	EnableFutilityPruning    *bool `toml:"enable_futility_pruning"`
	EnableDeltaPruning       *bool `toml:"enable_delta_pruning"`
	EnableTranspositionTable *bool `toml:"enable_transposition_table"`
	EnableAspirationWindows  *bool `toml:"enable_aspiration_windows"`

	MVVLVAWeight      *float64 `toml:"mvv_lva_weight"`
	KillerMovesWeight *float64 `toml:"killer_moves_weight"`
	HistoryWeight     *float64 `toml:"history_weight"`

	TimeWeight      *float64 `toml:"time_weight"`
	IncrementWeight *float64 `toml:"increment_weight"`

	OpeningBookPath      *string `toml:"opening_book_path"`
	EndgameTablebasePath *string `toml:"endgame_tablebase_path"`

	Mode *string `toml:"mode"`
}

// Load reads a TOML configuration file at path. It never returns an error: a missing or
// malformed file yields Default(), matching a UCI engine's need to always start with a usable
// configuration.
func Load(path string) Config {
	cfg := Default()
	if path == "" {
		return cfg
	}
	if _, err := os.Stat(path); err != nil {
		return cfg
	}

	var f file
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return cfg
	}
	return merge(cfg, f)
}

func merge(cfg Config, f file) Config {
	if f.MaxDepth != nil {
		cfg.MaxDepth = *f.MaxDepth
	}
	if f.SearchMode != nil {
		cfg.SearchMode = SearchMode(*f.SearchMode)
	}
	if f.MoveOrderMode != nil {
		cfg.MoveOrderMode = MoveOrderMode(*f.MoveOrderMode)
	}

	if f.EnableNullMovePruning != nil {
		cfg.EnableNullMovePruning = *f.EnableNullMovePruning
	}
	if f.EnableFutilityPruning != nil {
		cfg.EnableFutilityPruning = *f.EnableFutilityPruning
	}
	if f.EnableDeltaPruning != nil {
		cfg.EnableDeltaPruning = *f.EnableDeltaPruning
	}
	if f.EnableTranspositionTable != nil {
		cfg.EnableTranspositionTable = *f.EnableTranspositionTable
	}
	if f.EnableAspirationWindows != nil {
		cfg.EnableAspirationWindows = *f.EnableAspirationWindows
	}

	if f.MVVLVAWeight != nil {
		cfg.MVVLVAWeight = *f.MVVLVAWeight
	}
	if f.KillerMovesWeight != nil {
		cfg.KillerMovesWeight = *f.KillerMovesWeight
	}
	if f.HistoryWeight != nil {
		cfg.HistoryWeight = *f.HistoryWeight
	}

	if f.TimeWeight != nil {
		cfg.TimeWeight = *f.TimeWeight
	}
	if f.IncrementWeight != nil {
		cfg.IncrementWeight = *f.IncrementWeight
	}

	if f.OpeningBookPath != nil {
		cfg.OpeningBookPath = *f.OpeningBookPath
	}
	if f.EndgameTablebasePath != nil {
		cfg.EndgameTablebasePath = *f.EndgameTablebasePath
	}

	if f.Mode != nil {
		cfg.Mode = Mode(*f.Mode)
	}
	return cfg
}
