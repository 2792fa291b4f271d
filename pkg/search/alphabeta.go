package search

import (
	"context"

	"github.com/corvaline/corvaline/pkg/board"
	"github.com/corvaline/corvaline/pkg/eval"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// nullMoveReduction is the depth reduction R applied to the verification search after a
// null move: a position that still fails high after skipping a whole move for one side is
// almost certainly winning regardless of what that side actually plays.
const nullMoveReduction = 3

// futilityMargin is added to the static evaluation before comparing to alpha near the leaves:
// a quiet move that cannot plausibly gain this much is skipped without being searched.
const futilityMargin = eval.Score(300)

// futilityMaxDepth bounds how close to the leaves futility pruning applies. Deeper than this,
// the margin is not a reliable enough predictor of the subtree's real value.
const futilityMaxDepth = 2

// AlphaBeta implements alpha-beta pruning, fail-soft and negamax-formulated, with the
// Principal Variation Search refinement layered on when PVS is set. Pseudo-code for the
// plain algorithm:
//
// function alphabeta(node, depth, α, β, maximizingPlayer) is
//
//	if depth = 0 or node is a terminal node then
//	    return the heuristic value of node
//	if maximizingPlayer then
//	    value := −∞
//	    for each child of node do
//	        value := max(value, alphabeta(child, depth − 1, α, β, FALSE))
//	        α := max(α, value)
//	        if α ≥ β then
//	            break (* β cutoff *)
//	    return value
//	else
//	    value := +∞
//	    for each child of node do
//	        value := min(value, alphabeta(child, depth − 1, α, β, TRUE))
//	        β := min(β, value)
//	        if β ≤ α then
//	            break (* α cutoff *)
//	    return value
//
// See: https://en.wikipedia.org/wiki/Alpha–beta_pruning.
//
// PVS assumes the first move explored at each node is (close to) best: it searches the rest
// with a null window [-α-1,-α] to cheaply prove they are worse, and only falls back to a full
// re-search if one unexpectedly raises alpha.
type AlphaBeta struct {
	Explore Exploration
	Eval    QuietSearch

	// Static is used only for futility pruning; if nil, Futility has no effect.
	Static eval.Evaluator

	// PVS enables the null-window re-search refinement. Plain negamax otherwise.
	PVS bool
	// NullMove enables null-move pruning.
	NullMove bool
	// Futility enables futility pruning of quiet moves near the leaves.
	Futility bool

	Killers *KillerTable
	History *HistoryTable
	Stats   *Statistics
}

func (p AlphaBeta) Search(ctx context.Context, sctx *Context, b *board.Board, depth int) (uint64, eval.Score, []board.Move, error) {
	run := &runAlphaBeta{
		explore:  fullIfNotSet(p.Explore),
		eval:     p.Eval,
		static:   p.Static,
		tt:       sctx.TT,
		noise:    sctx.Noise,
		ponder:   sctx.Ponder,
		b:        b,
		pvs:      p.PVS,
		nullMove: p.NullMove,
		futility: p.Futility,
		killers:  p.Killers,
		history:  p.History,
		stats:    p.Stats,
	}
	low, high := eval.NegInfScore, eval.InfScore
	if !sctx.Alpha.IsInvalid() {
		low = sctx.Alpha
	}
	if !sctx.Beta.IsInvalid() {
		high = sctx.Beta
	}
	if p.Stats != nil {
		*p.Stats = Statistics{}
	}

	score, moves := run.search(ctx, depth, low, high, true)
	if p.Stats != nil {
		p.Stats.Nodes = run.nodes
	}
	if contextx.IsCancelled(ctx) {
		return 0, eval.InvalidScore, nil, ErrHalted
	}
	return run.nodes, score, moves, nil
}

type runAlphaBeta struct {
	explore  Exploration
	eval     QuietSearch
	static   eval.Evaluator
	tt       TranspositionTable
	noise    eval.Random
	b        *board.Board
	nodes    uint64
	pvs      bool
	nullMove bool
	futility bool

	killers *KillerTable
	history *HistoryTable
	stats   *Statistics

	ponder []board.Move
}

// search returns the positive score for the color, and the principal variation below this
// node. allowNull disables a second consecutive null move, which would just undo the first.
func (m *runAlphaBeta) search(ctx context.Context, depth int, alpha, beta eval.Score, allowNull bool) (eval.Score, []board.Move) {
	if contextx.IsCancelled(ctx) {
		return eval.InvalidScore, nil
	}
	if m.b.Result().Outcome == board.Draw {
		return eval.ZeroScore, nil
	}

	var best board.Move
	if bound, d, score, mv, ok := m.tt.Read(m.b.Hash()); ok {
		best = mv
		if depth <= d {
			usable := bound == ExactBound ||
				(bound == LowerBound && !score.Less(beta)) ||
				(bound == UpperBound && score.Less(alpha))
			if usable {
				if m.stats != nil {
					m.stats.TTHits++
				}
				return score, nil
			}
		} // else: not deep enough
	}

	if depth == 0 {
		// QuietSearch owns the transposition table at depth 0 itself: it probes and stores
		// every quiescence node, not just this entry point.
		sctx := &Context{Alpha: alpha, Beta: beta, TT: m.tt, Noise: m.noise}
		nodes, score := m.eval.QuietSearch(ctx, sctx, m.b)
		m.nodes += nodes
		return score, nil
	}

	m.nodes++
	turn := m.b.Turn()
	inCheck := m.b.Position().IsChecked(turn)

	// Null-move pruning: pass the move entirely and search at a reduced depth. If the
	// opponent still can't do better than beta with a free move, this side is winning
	// comfortably enough that the real move doesn't need full-depth verification.
	if m.nullMove && allowNull && !inCheck && depth > nullMoveReduction && beta.Less(eval.InfScore) {
		m.b.PushNullMove()
		score, _ := m.search(ctx, depth-1-nullMoveReduction, beta.Negate()-1, beta.Negate(), false)
		score = eval.IncrementMateDistance(score).Negate()
		m.b.PopNullMove()

		if !score.IsInvalid() && !score.Less(beta) {
			if m.stats != nil {
				m.stats.NullCuts++
			}
			return beta, nil
		}
	}

	// Futility pruning: near the leaves, skip quiet moves once the static evaluation plus a
	// safety margin still falls short of alpha, since such a move is unlikely to recover the
	// difference within the remaining depth.
	futile := false
	if m.futility && m.static != nil && !inCheck && depth <= futilityMaxDepth {
		static := eval.HeuristicScore(m.static.Evaluate(ctx, m.b))
		futile = static+futilityMargin <= alpha
	}

	hasLegalMove := false
	bound := UpperBound
	var pv []board.Move

	priority, explore := m.explore(ctx, m.b)
	priority = First(best, priority)

	if len(m.ponder) > 0 {
		explore = m.ponder[0].Equals // overwrite: use ponder move even if not intended to be explored
		m.ponder = m.ponder[1:]
	}

	moves := board.NewMoveList(m.b.Position().PseudoLegalMoves(turn), priority)

	moveNum := 0
	for {
		move, ok := moves.Next()
		if !ok {
			break
		}
		if !explore(move) {
			continue
		}
		if futile && moveNum > 0 && !move.IsCapture() && !move.IsPromotion() {
			if m.stats != nil {
				m.stats.FutilCuts++
			}
			continue // skip: futile quiet move, not the first move at this node
		}

		if !m.b.PushMove(move) {
			continue // skip: not legal
		}
		moveNum++

		var score eval.Score
		var rem []board.Move
		if m.pvs && moveNum > 1 {
			// Null window search: only interested in whether this beats alpha, not by how much.
			score, rem = m.search(ctx, depth-1, alpha.Negate()-1, alpha.Negate(), true)
			score = eval.IncrementMateDistance(score).Negate()
			if alpha.Less(score) && score.Less(beta) {
				// Surprised us: re-search with the real window to get an exact score.
				score, rem = m.search(ctx, depth-1, beta.Negate(), alpha.Negate(), true)
				score = eval.IncrementMateDistance(score).Negate()
			}
		} else {
			score, rem = m.search(ctx, depth-1, beta.Negate(), alpha.Negate(), true)
			score = eval.IncrementMateDistance(score).Negate()
		}

		if alpha.Less(score) {
			alpha = score
			pv = append([]board.Move{move}, rem...)
			bound = ExactBound
		}

		m.b.PopMove()
		hasLegalMove = true

		if alpha == beta || beta.Less(alpha) {
			bound = LowerBound
			if !move.IsCapture() && !move.IsPromotion() {
				if m.killers != nil {
					m.killers.Record(m.b.Ply(), move)
				}
				if m.history != nil {
					m.history.Record(turn, move, depth)
				}
			}
			if m.stats != nil {
				m.stats.BetaCutoff++
			}
			break // cutoff
		}
	}

	if !hasLegalMove {
		if result := m.b.AdjudicateNoLegalMoves(); result.Reason == board.Checkmate {
			return eval.NegInfScore, nil
		}
		return eval.ZeroScore, nil
	}

	m.tt.Write(m.b.Hash(), bound, m.b.Ply(), depth, alpha, firstOrNone(pv))
	return alpha, pv
}

func firstOrNone(pv []board.Move) board.Move {
	if len(pv) == 0 {
		return board.Move{}
	}
	return pv[0]
}

func fullIfNotSet(p Exploration) Exploration {
	if p == nil {
		return FullExploration
	}
	return p
}
