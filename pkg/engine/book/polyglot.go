// Package book reads Polyglot-format opening books: a binary file of (position key, move,
// weight) entries keyed by a chess-specific hash distinct from the engine's own Zobrist hash.
package book

import (
	"encoding/binary"
	"io"
	"os"
	"sort"

	"github.com/corvaline/corvaline/pkg/board"
)

// Entry is one decoded Polyglot book entry.
type Entry struct {
	Move   board.Move
	Weight uint16
}

// Book is an in-memory Polyglot opening book, keyed by the Polyglot position hash.
type Book struct {
	entries map[uint64][]Entry
}

// Load reads a Polyglot book file.
func Load(path string) (*Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return LoadReader(f)
}

// LoadReader reads a Polyglot book from r. Each entry is 16 bytes, big-endian: 8-byte position
// key, 2-byte move, 2-byte weight, 4 bytes of learn data (ignored).
func LoadReader(r io.Reader) (*Book, error) {
	b := &Book{entries: map[uint64][]Entry{}}

	var raw [16]byte
	for {
		if _, err := io.ReadFull(r, raw[:]); err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}

		key := binary.BigEndian.Uint64(raw[0:8])
		move := decodeMove(binary.BigEndian.Uint16(raw[8:10]))
		weight := binary.BigEndian.Uint16(raw[10:12])

		if move.IsNull() {
			continue
		}
		b.entries[key] = append(b.entries[key], Entry{Move: move, Weight: weight})
	}
	return b, nil
}

// Probe returns every entry for the position's Polyglot hash, sorted by descending weight. The
// moves are encoded purely as (from, to, promotion): the caller must reconcile them against the
// position's actual legal moves to recover move type and captured piece.
func (b *Book) Probe(pos *board.Position, turn board.Color) []Entry {
	if b == nil {
		return nil
	}

	key := polyglotHash(pos, turn)
	entries, ok := b.entries[key]
	if !ok {
		return nil
	}

	out := make([]Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Weight > out[j].Weight })
	return out
}

// decodeMove decodes a 16-bit Polyglot move: bits 0-2 to-file, 3-5 to-rank, 6-8 from-file,
// 9-11 from-rank, 12-14 promotion piece (0=none, 1=knight, 2=bishop, 3=rook, 4=queen). Castling
// is encoded as the king capturing its own rook (e.g. e1h1); that is remapped to the engine's
// own castling encoding (e1g1) so Move.Equals matches a generated castling move.
func decodeMove(data uint16) board.Move {
	toFile := board.File(7 - (data & 7))
	toRank := board.Rank((data >> 3) & 7)
	fromFile := board.File(7 - ((data >> 6) & 7))
	fromRank := board.Rank((data >> 9) & 7)
	promo := (data >> 12) & 7

	from := board.NewSquare(fromFile, fromRank)
	to := board.NewSquare(toFile, toRank)

	switch {
	case from == board.E1 && to == board.H1:
		to = board.G1
	case from == board.E1 && to == board.A1:
		to = board.C1
	case from == board.E8 && to == board.H8:
		to = board.G8
	case from == board.E8 && to == board.A8:
		to = board.C8
	}

	m := board.Move{From: from, To: to}
	if promo > 0 {
		promos := [5]board.Piece{0, board.Knight, board.Bishop, board.Rook, board.Queen}
		m.Promotion = promos[promo]
	}
	return m
}
