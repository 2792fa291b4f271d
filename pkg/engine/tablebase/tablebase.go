// Package tablebase provides endgame tablebase lookups that can short-circuit search: a local
// Syzygy-convention file prober and a remote Lichess HTTPS prober, tried in configured order.
package tablebase

import (
	"context"

	"github.com/corvaline/corvaline/pkg/board"
)

// WDL is a win/draw/loss classification for the side to move.
type WDL int

const (
	Loss WDL = iota - 2
	BlessedLoss
	Draw
	CursedWin
	Win
)

// Result is the outcome of probing a single candidate move at the root.
type Result struct {
	Move  board.Move
	WDL   WDL
	Found bool
}

// Prober probes tablebase coverage for a position. ProbeRoot evaluates every legal move from
// the position and reports the first move found to preserve a winning result, per the root
// selection the engine façade uses to short-circuit search.
type Prober interface {
	// ProbeRoot returns the first legal move from the position that leads to a winning WDL,
	// if the tablebase covers the position at all.
	ProbeRoot(ctx context.Context, pos *board.Position, turn board.Color) (Result, bool)

	// Available reports whether this prober has any coverage to offer at all (a local path
	// configured, or network reachability assumed for a remote prober).
	Available() bool
}

// MaxPieces bounds the piece count both Syzygy and the Lichess tablebase API support.
const MaxPieces = 7

// CountPieces returns the number of pieces on the board, used to skip probing positions that
// are too complex for the 7-piece tablebase.
func CountPieces(pos *board.Position) int {
	var n int
	for c := board.ZeroColor; c < board.NumColors; c++ {
		for p := board.ZeroPiece; p < board.NumPieces; p++ {
			n += pos.Pieces(c, p).PopCount()
		}
	}
	return n
}

// Composite tries a sequence of Probers in order, returning the first hit. Mirrors a "composite
// tablebase" that used to be modeled via multiple inheritance: holding each collaborator by
// reference and delegating in configured order.
type Composite []Prober

func (c Composite) ProbeRoot(ctx context.Context, pos *board.Position, turn board.Color) (Result, bool) {
	for _, p := range c {
		if !p.Available() {
			continue
		}
		if res, ok := p.ProbeRoot(ctx, pos, turn); ok {
			return res, true
		}
	}
	return Result{}, false
}

func (c Composite) Available() bool {
	for _, p := range c {
		if p.Available() {
			return true
		}
	}
	return false
}

// NoTablebase is a Nop Prober, used when neither a local path nor remote access is configured.
type NoTablebase struct{}

func (NoTablebase) ProbeRoot(ctx context.Context, pos *board.Position, turn board.Color) (Result, bool) {
	return Result{}, false
}

func (NoTablebase) Available() bool {
	return false
}
