package search_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/corvaline/corvaline/pkg/board"
	"github.com/corvaline/corvaline/pkg/eval"
	"github.com/corvaline/corvaline/pkg/search"
	"github.com/stretchr/testify/assert"
)

func TestTranspositionTable(t *testing.T) {
	ctx := context.Background()

	// (1) Size rounds down to a power of two.

	tt := search.NewTranspositionTable(ctx, 0x1000)
	assert.Equal(t, uint64(0x1000), tt.Size())
	tt2 := search.NewTranspositionTable(ctx, 0x1f00)
	assert.Equal(t, uint64(0x1000), tt2.Size())

	// (2) Read/write round trip.

	a := board.ZobristHash(rand.Uint64())

	_, _, _, _, ok := tt.Read(a)
	assert.False(t, ok)

	m := board.Move{From: board.G4, To: board.G8, Promotion: board.Queen}
	s := eval.HeuristicScore(2)
	wrote := tt.Write(a, search.ExactBound, 5, 2, s, m)
	assert.True(t, wrote)

	bound, depth, score, move, ok := tt.Read(a)
	assert.True(t, ok)
	assert.Equal(t, search.ExactBound, bound)
	assert.Equal(t, 2, depth)
	assert.Equal(t, s, score)
	assert.Equal(t, m, move)

	_, _, _, _, ok = tt.Read(a ^ 0xff0000)
	assert.False(t, ok)

	// (3) Always-replace: even a shallower, earlier entry evicts whatever was there.

	repl := tt.Write(a, search.ExactBound, 2, 1, eval.HeuristicScore(5), m)
	assert.True(t, repl)

	bound, depth, score, _, ok = tt.Read(a)
	assert.True(t, ok)
	assert.Equal(t, search.ExactBound, bound)
	assert.Equal(t, 1, depth)
	assert.Equal(t, eval.HeuristicScore(5), score)
}

// TestTranspositionProbeDepthContract checks that a probe at depth d only uses an entry stored
// at depth >= d.
func TestTranspositionProbeDepthContract(t *testing.T) {
	ctx := context.Background()
	tt := search.NewTranspositionTable(ctx, 0x1000)

	a := board.ZobristHash(rand.Uint64())
	tt.Write(a, search.ExactBound, 1, 4, eval.HeuristicScore(10), board.Move{})

	_, d, _, _, ok := tt.Read(a)
	assert.True(t, ok)
	assert.GreaterOrEqual(t, d, 3) // usable by a probe requiring depth <= 4, e.g. depth=3

	// The table itself does not filter by the probing depth (that's AlphaBeta's job via the
	// returned depth), but it must never silently report a shallower depth than stored.
	assert.Equal(t, 4, d)
}
