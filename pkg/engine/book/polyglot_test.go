package book

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/corvaline/corvaline/pkg/board"
	"github.com/corvaline/corvaline/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEntry(buf *bytes.Buffer, key uint64, move uint16, weight uint16) {
	var raw [16]byte
	binary.BigEndian.PutUint64(raw[0:8], key)
	binary.BigEndian.PutUint16(raw[8:10], move)
	binary.BigEndian.PutUint16(raw[10:12], weight)
	buf.Write(raw[:])
}

func TestLoadReaderAndProbe(t *testing.T) {
	pos, turn, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	key := polyglotHash(pos, turn)

	// e2e4 in Polyglot's a..h=0..7, 1..8=0..7 encoding: from e2 (file e=4,rank=1), to e4 (file e=4,rank=3).
	e2e4 := encodePolyglotSquares(4, 1, 4, 3, 0)
	d2d4 := encodePolyglotSquares(3, 1, 3, 3, 0)

	var buf bytes.Buffer
	writeEntry(&buf, key, e2e4, 10)
	writeEntry(&buf, key, d2d4, 30)
	writeEntry(&buf, key+1, e2e4, 50) // different position, must not match

	b, err := LoadReader(&buf)
	require.NoError(t, err)

	entries := b.Probe(pos, turn)
	require.Len(t, entries, 2)
	assert.Equal(t, uint16(30), entries[0].Weight)
	assert.Equal(t, uint16(10), entries[1].Weight)
	assert.Equal(t, board.D2, entries[0].Move.From)
	assert.Equal(t, board.D4, entries[0].Move.To)
}

func TestProbeNoMatch(t *testing.T) {
	pos, turn, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	b, err := LoadReader(&bytes.Buffer{})
	require.NoError(t, err)

	assert.Nil(t, b.Probe(pos, turn))
}

func TestDecodeMoveCastling(t *testing.T) {
	// e1h1 (white king-side castle) must decode to e1g1.
	data := encodePolyglotSquares(4, 0, 7, 0, 0)
	m := decodeMove(data)
	assert.Equal(t, board.E1, m.From)
	assert.Equal(t, board.G1, m.To)
}

func TestDecodeMovePromotion(t *testing.T) {
	// a7a8=Q
	data := encodePolyglotSquares(0, 6, 0, 7, 4)
	m := decodeMove(data)
	assert.Equal(t, board.Queen, m.Promotion)
}

// encodePolyglotSquares builds a raw Polyglot move field from conventional a..h=0..7 file and
// 1..8=0..7 rank coordinates, mirroring the bit layout decodeMove expects.
func encodePolyglotSquares(fromFile, fromRank, toFile, toRank int, promo int) uint16 {
	return uint16(toFile) | uint16(toRank)<<3 | uint16(fromFile)<<6 | uint16(fromRank)<<9 | uint16(promo)<<12
}
