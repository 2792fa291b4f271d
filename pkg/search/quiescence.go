package search

import (
	"context"

	"github.com/corvaline/corvaline/pkg/board"
	"github.com/corvaline/corvaline/pkg/eval"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// deltaMargin is added to the optimistic value of a capture before comparing it against alpha.
// A capture that cannot possibly close the gap even with this safety margin is pruned without
// being searched: "delta pruning".
const deltaMargin = eval.Score(200)

// quiescenceMaxDepth caps the capture-chain recursion: beyond this many plies of captures, the
// stand-pat evaluation is trusted even if the position is not fully quiet, since real lines this
// deep into unresolved tactics are rare enough that the horizon effect they risk is cheaper than
// the search time spent resolving them.
const quiescenceMaxDepth = 4

// Quiescence implements a configurable, capture-only alpha-beta QuietSearch, resolving tactical
// sequences (captures, promotions) before the static evaluator is trusted.
type Quiescence struct {
	Explore Exploration
	Eval    Evaluator
}

func (q Quiescence) QuietSearch(ctx context.Context, sctx *Context, b *board.Board) (uint64, eval.Score) {
	run := &runQuiescence{explore: quietIfNotSet(q.Explore), eval: q.Eval, tt: sctx.TT, b: b}

	low, high := eval.NegInfScore, eval.InfScore
	if !sctx.Alpha.IsInvalid() {
		low = sctx.Alpha
	}
	if !sctx.Beta.IsInvalid() {
		high = sctx.Beta
	}

	score := run.search(ctx, sctx, quiescenceMaxDepth, low, high)
	return run.nodes, score
}

type runQuiescence struct {
	explore Exploration
	eval    Evaluator
	tt      TranspositionTable
	b       *board.Board
	nodes   uint64
}

// search returns the positive score for the color. depth is the remaining capture-chain budget,
// not a search depth in the AlphaBeta sense: every quiescence node is stored and probed in the
// transposition table at depth 0, regardless of how many captures deep the recursion has gone.
func (r *runQuiescence) search(ctx context.Context, sctx *Context, depth int, alpha, beta eval.Score) eval.Score {
	if contextx.IsCancelled(ctx) {
		return eval.ZeroScore
	}
	if r.b.Result().Outcome == board.Draw {
		return eval.ZeroScore
	}

	r.nodes++

	hash := r.b.Hash()
	if r.tt != nil {
		if _, _, score, _, ok := r.tt.Read(hash); ok {
			return score
		}
	}

	turn := r.b.Turn()
	standPat := eval.HeuristicScore(r.eval.Evaluate(ctx, sctx, r.b))
	if depth == 0 {
		return standPat
	}
	alpha = eval.Max(alpha, standPat)

	// NOTE: Don't cutoff based on the static evaluation here. See if any legal moves first.
	// Also do not report mate-in-X endings: a position with no quiet captures left is not
	// necessarily terminal.

	hasLegalMoves := false
	priority, explore := r.explore(ctx, r.b)

	// Generate every pseudo-legal move, not just the noisy ones explore() picks out: pushing
	// each one is how legality and hasLegalMoves get determined for checkmate/stalemate
	// detection, independent of which moves are actually recursed into below.
	moves := board.NewMoveList(r.b.Position().PseudoLegalMoves(turn), priority)
	for {
		m, ok := moves.Next()
		if !ok {
			break
		}
		if !r.b.PushMove(m) {
			continue // skip: not legal
		}
		hasLegalMoves = true

		if explore(m) && standPat+eval.HeuristicScore(eval.NominalValueGain(m))+deltaMargin > alpha {
			score := r.search(ctx, sctx, depth-1, beta.Negate(), alpha.Negate())
			score = eval.IncrementMateDistance(score).Negate()
			alpha = eval.Max(alpha, score)
		} // else: not explored, or delta-pruned as hopeless

		r.b.PopMove()

		if alpha == beta || beta.Less(alpha) {
			break // cutoff
		}
	}

	result := alpha
	if !hasLegalMoves {
		if outcome := r.b.AdjudicateNoLegalMoves(); outcome.Reason == board.Checkmate {
			result = eval.NegInfScore
		} else {
			result = eval.ZeroScore
		}
	}

	if r.tt != nil {
		r.tt.Write(hash, ExactBound, r.b.Ply(), 0, result, board.Move{})
	}
	return result
}

func quietIfNotSet(e Exploration) Exploration {
	if e == nil {
		return CaptureExploration
	}
	return e
}
