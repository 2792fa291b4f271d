package engine

import (
	"context"
	"time"

	"github.com/corvaline/corvaline/pkg/board"
	"github.com/corvaline/corvaline/pkg/engine/tablebase"
	"github.com/corvaline/corvaline/pkg/eval"
	"github.com/corvaline/corvaline/pkg/search"
	"github.com/seekerror/logw"
)

// WithBook configures the engine to consult the given opening book before searching.
func WithBook(b Book) Option {
	return func(e *Engine) {
		e.book = b
	}
}

// WithTablebase configures the engine to consult the given tablebase prober before searching.
func WithTablebase(p tablebase.Prober) Option {
	return func(e *Engine) {
		e.tb = p
	}
}

// WithStaticEvaluator configures the evaluator used by Evaluate. Defaults to eval.Pesto{}.
func WithStaticEvaluator(e2 eval.Evaluator) Option {
	return func(e *Engine) {
		e.static = e2
	}
}

// BestMove returns the move the engine judges best for the current position: an opening book
// move if one is found, else a tablebase move if one is found, else the result of a timed
// search. A zero timeout means search runs to the engine's configured depth limit only.
func (e *Engine) BestMove(ctx context.Context, timeout time.Duration) (board.Move, error) {
	if e.book != nil {
		moves, err := e.book.Find(ctx, e.Position())
		if err != nil {
			logw.Warningf(ctx, "Book lookup failed: %v", err)
		} else if len(moves) > 0 {
			return moves[0], nil
		}
	}

	if e.tb != nil && e.tb.Available() {
		b := e.Board()
		if res, ok := e.tb.ProbeRoot(ctx, b.Position(), b.Turn()); ok {
			return res.Move, nil
		}
	}

	pv, err := e.search(ctx, timeout)
	if err != nil {
		return board.Move{}, err
	}
	return pv.Move(), nil
}

// Score returns the search score for the current position, without consulting book or
// tablebase.
func (e *Engine) Score(ctx context.Context, timeout time.Duration) (eval.Score, error) {
	pv, err := e.search(ctx, timeout)
	if err != nil {
		return eval.InvalidScore, err
	}
	return pv.Score, nil
}

// Evaluate returns the static evaluator score for the current position, bypassing search.
func (e *Engine) Evaluate(ctx context.Context) eval.Score {
	static := e.static
	if static == nil {
		static = eval.Pesto{}
	}

	b := e.Board()
	return eval.HeuristicScore(static.Evaluate(ctx, b))
}

// search runs a synchronous search to completion (or until timeout) and returns the final PV.
func (e *Engine) search(ctx context.Context, timeout time.Duration) (search.PV, error) {
	var opt search.Options
	if timeout > 0 {
		time.AfterFunc(timeout, func() {
			_, _ = e.Halt(ctx)
		})
	}

	out, err := e.Analyze(ctx, opt)
	if err != nil {
		return search.PV{}, err
	}

	var last search.PV
	for pv := range out {
		last = pv
	}
	return last, nil
}
