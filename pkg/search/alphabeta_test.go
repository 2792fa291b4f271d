package search_test

import (
	"context"
	"testing"

	"github.com/corvaline/corvaline/pkg/board"
	"github.com/corvaline/corvaline/pkg/board/fen"
	"github.com/corvaline/corvaline/pkg/eval"
	"github.com/corvaline/corvaline/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBoard(t *testing.T, f string) *board.Board {
	t.Helper()

	pos, turn, np, fm, err := fen.Decode(f)
	require.NoError(t, err)
	return board.NewBoard(board.NewZobristTable(0), pos, turn, np, fm)
}

func newRootContext(tt search.TranspositionTable) *search.Context {
	return &search.Context{Alpha: eval.NegInfScore, Beta: eval.InfScore, TT: tt, Noise: eval.Random{}}
}

// TestAlphaBetaPVSPreservesRootValue checks that the PVS null-window refinement never changes
// the root value a plain fail-soft negamax finds at the same depth: PVS is an optimization of
// exact alpha-beta, not a heuristic, so the two must always agree (unlike null-move or futility
// pruning, which are unsound and may legitimately diverge on adversarial positions).
func TestAlphaBetaPVSPreservesRootValue(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		f     string
		depth int
	}{
		{fen.Initial, 3},
		{"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 3},
		{"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 3},
		{"6k1/5ppp/8/8/8/8/5PPP/3R2K1 w - - 0 1", 3},
	}

	quiet := search.Quiescence{Eval: search.StaticEvaluator{Eval: eval.Material{}}}
	plain := search.AlphaBeta{Eval: quiet}
	pvs := search.AlphaBeta{Eval: quiet, PVS: true}

	for _, tt := range tests {
		plainNodes, plainScore, _, err := plain.Search(ctx, newRootContext(search.NoTranspositionTable{}), newTestBoard(t, tt.f), tt.depth)
		require.NoError(t, err)

		pvsNodes, pvsScore, _, err := pvs.Search(ctx, newRootContext(search.NoTranspositionTable{}), newTestBoard(t, tt.f), tt.depth)
		require.NoError(t, err)

		assert.Equalf(t, plainScore, pvsScore, "PVS changed root value: %v", tt.f)
		t.Logf("%v: plain nodes=%v, pvs nodes=%v", tt.f, plainNodes, pvsNodes)
	}
}

// TestAlphaBetaOrdersWinningCaptureFirst checks that a position with one clearly winning capture
// returns that capture as the root move.
func TestAlphaBetaOrdersWinningCaptureFirst(t *testing.T) {
	ctx := context.Background()

	// White's rook can capture a hanging black queen on d8.
	b := newTestBoard(t, "3q1k2/8/8/8/8/8/8/3R2K1 w - - 0 1")

	quiet := search.Quiescence{Eval: search.StaticEvaluator{Eval: eval.Material{}}}
	ab := search.AlphaBeta{
		Explore: search.FullExploration,
		Eval:    quiet,
	}

	_, _, moves, err := ab.Search(ctx, newRootContext(search.NoTranspositionTable{}), b, 2)
	require.NoError(t, err)
	require.NotEmpty(t, moves)

	best := moves[0]
	assert.Equal(t, "d1d8", best.String())
}
