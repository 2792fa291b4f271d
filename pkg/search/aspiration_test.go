package search_test

import (
	"context"
	"testing"

	"github.com/corvaline/corvaline/pkg/board/fen"
	"github.com/corvaline/corvaline/pkg/eval"
	"github.com/corvaline/corvaline/pkg/search"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIterativeNoAspirationWindowMatchesFullWidth checks that disabling aspiration windows
// (NoAspirationWindow, set from the enable_aspiration_windows configuration option) never
// changes the final score reported for a depth: it only removes the narrow-window retry
// mechanism, not correctness.
func TestIterativeNoAspirationWindowMatchesFullWidth(t *testing.T) {
	ctx := context.Background()

	quiet := search.Quiescence{Eval: search.StaticEvaluator{Eval: eval.Material{}}}

	withAspiration := &search.Iterative{Root: search.AlphaBeta{Eval: quiet}}
	withoutAspiration := &search.Iterative{Root: search.AlphaBeta{Eval: quiet}, NoAspirationWindow: true}

	opt := search.Options{DepthLimit: lang.Some(uint(3))}

	_, out1 := withAspiration.Launch(ctx, newTestBoard(t, fen.Initial), search.NoTranspositionTable{}, eval.Random{}, opt)
	var last1 search.PV
	for pv := range out1 {
		last1 = pv
	}

	_, out2 := withoutAspiration.Launch(ctx, newTestBoard(t, fen.Initial), search.NoTranspositionTable{}, eval.Random{}, opt)
	var last2 search.PV
	for pv := range out2 {
		last2 = pv
	}

	require.Equal(t, 3, last1.Depth)
	require.Equal(t, 3, last2.Depth)
	assert.Equal(t, last1.Score, last2.Score)
}
