// Package search implements move search: alpha-beta/PVS with a transposition table, move-order
// heuristics, and an iterative-deepening driver with time and depth controls.
package search

import (
	"errors"
	"fmt"
	"time"

	"github.com/corvaline/corvaline/pkg/board"
	"github.com/corvaline/corvaline/pkg/eval"
)

// ErrHalted indicates a search was stopped via Handle.Halt or a cancelled context before it
// completed on its own. It is not a failure: the caller asked for this.
var ErrHalted = errors.New("search halted")

// PV is the principal variation found for one iterative-deepening depth: the best line, its
// score, and the statistics that produced it.
type PV struct {
	Depth int
	Nodes uint64
	Score eval.Score
	Moves []board.Move
	Time  time.Duration
	Hash  float64 // transposition table utilization, [0;1]
}

// Move returns the best move of the principal variation, or the null move if none was found.
func (pv PV) Move() board.Move {
	if len(pv.Moves) == 0 {
		return board.NullMove
	}
	return pv.Moves[0]
}

func (pv PV) String() string {
	return fmt.Sprintf("depth=%v score=%v nodes=%v time=%v pv=%v", pv.Depth, pv.Score, pv.Nodes, pv.Time, board.FormatMoves(pv.Moves))
}
