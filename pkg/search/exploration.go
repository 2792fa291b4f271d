package search

import (
	"context"

	"github.com/corvaline/corvaline/pkg/board"
	"github.com/corvaline/corvaline/pkg/eval"
)

// Exploration defines move selection and priority in a given position. Limited exploration is required
// by quiescence search and can be used for forward pruning in full search. Default: explore all
// moves in MVVLVA order.
type Exploration func(ctx context.Context, b *board.Board) (board.MovePriorityFn, board.MovePredicateFn)

func FullExploration(ctx context.Context, b *board.Board) (board.MovePriorityFn, board.MovePredicateFn) {
	return eval.MVVLVA, IsAnyMove
}

// CaptureExploration restricts exploration to captures and promotions, in MVV-LVA order. It is
// the default for quiescence search, where only tactical noise needs resolving.
func CaptureExploration(ctx context.Context, b *board.Board) (board.MovePriorityFn, board.MovePredicateFn) {
	return eval.MVVLVA, IsNoisy
}

// IsNoisy selects captures and promotions: moves whose value can swing sharply move to move,
// so a static evaluation alone cannot be trusted while they remain on the board.
func IsNoisy(m board.Move) bool {
	return m.IsCapture() || m.IsPromotion()
}

// Selection returns a move order and priority for exploring only the given moves, in the given
// order. Nothing in this package calls it: quiescence uses CaptureExploration, and AlphaBeta
// follows a ponder line through Context.Ponder.
func Selection(list []board.Move) (board.MovePriorityFn, board.MovePredicateFn) {
	rank := map[board.Move]board.MovePriority{}
	for i, m := range list {
		rank[m] = board.MovePriority(len(list) - i)
	}

	priority := func(move board.Move) board.MovePriority {
		return rank[move]
	}
	pick := func(move board.Move) bool {
		_, ok := rank[move]
		return ok
	}
	return priority, pick
}
