package tablebase

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/corvaline/corvaline/pkg/board"
	"github.com/corvaline/corvaline/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProber struct {
	available bool
	result    Result
	hit       bool
}

func (s stubProber) Available() bool { return s.available }

func (s stubProber) ProbeRoot(ctx context.Context, pos *board.Position, turn board.Color) (Result, bool) {
	return s.result, s.hit
}

func TestCompositeTriesInOrder(t *testing.T) {
	pos, turn, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	miss := stubProber{available: true}
	hit := stubProber{available: true, hit: true, result: Result{WDL: Win, Found: true}}

	c := Composite{miss, hit}
	res, ok := c.ProbeRoot(context.Background(), pos, turn)
	require.True(t, ok)
	assert.Equal(t, Win, res.WDL)
}

func TestCompositeSkipsUnavailable(t *testing.T) {
	pos, turn, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	unavailable := stubProber{available: false, hit: true, result: Result{WDL: Loss, Found: true}}
	c := Composite{unavailable}

	_, ok := c.ProbeRoot(context.Background(), pos, turn)
	assert.False(t, ok)
}

func TestNoTablebaseNeverHits(t *testing.T) {
	pos, turn, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	var nb NoTablebase
	assert.False(t, nb.Available())

	_, ok := nb.ProbeRoot(context.Background(), pos, turn)
	assert.False(t, ok)
}

func TestLocalUnavailableWithoutFiles(t *testing.T) {
	dir := t.TempDir()
	l := NewLocal(dir, NewRemote())
	assert.False(t, l.Available())
}

func TestLocalAvailableWithRtbwFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "KQvK.rtbw"), []byte{0}, 0644))

	l := NewLocal(dir, NewRemote())
	assert.True(t, l.Available())
}

func TestMaterialSignatureKQvKR(t *testing.T) {
	pos, _, _, _, err := fen.Decode("3k4/8/8/8/8/8/3Q4/3K3r w - - 0 1")
	require.NoError(t, err)

	sig := materialSignature(pos)
	assert.Equal(t, "KQvKR", sig)
}

func TestCountPieces(t *testing.T) {
	pos, _, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)
	assert.Equal(t, 32, CountPieces(pos))
}
