package search

import (
	"context"

	"github.com/corvaline/corvaline/pkg/board"
	"github.com/corvaline/corvaline/pkg/eval"
)

// aspirationWindow is the initial half-width of the search window around the previous
// iteration's score, in centipawns. A tight window prunes more aggressively but costs a
// re-search whenever the true score has moved outside it.
const aspirationWindow = eval.Score(25)

// searchWithAspiration runs root at depth using a narrow window centered on prev (the score
// from the previous iterative-deepening depth), widening and re-searching on failure until the
// true score is bracketed. Depths without a usable previous score fall back to a full window.
func searchWithAspiration(ctx context.Context, root Search, tt TranspositionTable, noise eval.Random, b *board.Board, depth int, prev eval.Score, havePrev bool) (uint64, eval.Score, []board.Move, error) {
	if !havePrev || depth < 2 || prev.IsMate() {
		sctx := &Context{Alpha: eval.NegInfScore, Beta: eval.InfScore, TT: tt, Noise: noise}
		return root.Search(ctx, sctx, b, depth)
	}

	window := aspirationWindow
	alpha, beta := prev-window, prev+window

	var totalNodes uint64
	for {
		sctx := &Context{Alpha: alpha, Beta: beta, TT: tt, Noise: noise}
		nodes, score, moves, err := root.Search(ctx, sctx, b, depth)
		totalNodes += nodes
		if err != nil {
			return totalNodes, score, moves, err
		}

		switch {
		case score.Less(alpha):
			window *= 2
			alpha = prev - window
		case beta.Less(score):
			window *= 2
			beta = prev + window
		default:
			return totalNodes, score, moves, nil
		}

		if window > eval.InfScore/2 {
			// The window has blown wide open: just run unconstrained rather than keep doubling.
			sctx := &Context{Alpha: eval.NegInfScore, Beta: eval.InfScore, TT: tt, Noise: noise}
			nodes, score, moves, err := root.Search(ctx, sctx, b, depth)
			return totalNodes + nodes, score, moves, err
		}
	}
}
