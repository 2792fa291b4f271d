package search

import (
	"context"

	"github.com/corvaline/corvaline/pkg/board"
	"github.com/corvaline/corvaline/pkg/eval"
)

// MoveOrderMode selects which heuristics contribute to move ordering.
type MoveOrderMode uint8

const (
	// OrderMVVLVA orders captures by MVV-LVA only; quiet moves are left in generation order.
	OrderMVVLVA MoveOrderMode = iota
	// OrderComposite additionally weighs killer moves and history, per OrderWeights.
	OrderComposite
)

// OrderWeights scales the contribution of each heuristic in OrderComposite mode. The defaults
// favor captures heavily, then recent killer cutoffs, then the long-lived history table.
type OrderWeights struct {
	MVVLVA, Killer, History int
}

func DefaultOrderWeights() OrderWeights {
	return OrderWeights{MVVLVA: 3, Killer: 2, History: 1}
}

// Orderer builds the Exploration used by a root search, blending MVV-LVA with the killer and
// history tables accumulated over the course of the search.
type Orderer struct {
	Mode    MoveOrderMode
	Weights OrderWeights
	Killers *KillerTable
	History *HistoryTable
}

func (o Orderer) Explore(ctx context.Context, b *board.Board) (board.MovePriorityFn, board.MovePredicateFn) {
	if o.Mode == OrderMVVLVA || o.Killers == nil || o.History == nil {
		return eval.MVVLVA, IsAnyMove
	}

	ply, turn := b.Ply(), b.Turn()
	w := o.Weights

	priority := func(m board.Move) board.MovePriority {
		if m.IsCapture() {
			return board.MovePriority(w.MVVLVA) * eval.MVVLVA(m)
		}
		return board.MovePriority(w.Killer)*o.Killers.Priority(ply, m) +
			board.MovePriority(w.History)*o.History.Priority(turn, m)
	}
	return priority, IsAnyMove
}

// IsAnyMove selects every move for exploration: the default predicate for full-width search.
func IsAnyMove(m board.Move) bool {
	return true
}
