package search

import (
	"context"

	"github.com/corvaline/corvaline/pkg/board"
	"github.com/corvaline/corvaline/pkg/eval"
)

// Context carries the per-call search parameters that stay constant as a single root search
// descends the tree: the search window, the shared transposition table, evaluation noise and
// an optional ponder line to investigate first regardless of move order.
type Context struct {
	Alpha, Beta eval.Score
	TT          TranspositionTable
	Noise       eval.Random
	Ponder      []board.Move
}

// Evaluator scores a position for quiescence search. It mirrors eval.Evaluator but also sees
// the active search Context, so an implementation can fold in noise the same way the root call
// does without threading it through a second argument list.
type Evaluator interface {
	Evaluate(ctx context.Context, sctx *Context, b *board.Board) eval.Pawns
}

// StaticEvaluator adapts a plain eval.Evaluator, unaware of the search window, to Evaluator.
type StaticEvaluator struct {
	Eval eval.Evaluator
}

func (s StaticEvaluator) Evaluate(ctx context.Context, sctx *Context, b *board.Board) eval.Pawns {
	return s.Eval.Evaluate(ctx, b)
}

// QuietSearch resolves tactical noise (captures, promotions) at the leaves of the main search
// so the static evaluator is only ever trusted on a quiet position.
type QuietSearch interface {
	QuietSearch(ctx context.Context, sctx *Context, b *board.Board) (uint64, eval.Score)
}

// Search is a root search algorithm, invoked once per iterative-deepening depth. Negamax and
// PVS are both implemented by AlphaBeta, parametrized by its PVS field.
type Search interface {
	Search(ctx context.Context, sctx *Context, b *board.Board, depth int) (uint64, eval.Score, []board.Move, error)
}
