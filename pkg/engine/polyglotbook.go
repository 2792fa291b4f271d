package engine

import (
	"context"

	"github.com/corvaline/corvaline/pkg/board"
	"github.com/corvaline/corvaline/pkg/board/fen"
	"github.com/corvaline/corvaline/pkg/engine/book"
)

// NewPolyglotBook loads a Polyglot binary opening book and adapts it to the Book interface.
func NewPolyglotBook(path string) (Book, error) {
	b, err := book.Load(path)
	if err != nil {
		return nil, err
	}
	return &polyglotBook{book: b}, nil
}

type polyglotBook struct {
	book *book.Book
}

// Find decodes the position's legal moves and keeps only the Polyglot entries that match one,
// since Polyglot encodes moves purely by (from, to, promotion) and the engine needs the full
// Move (type, capture) to push it.
func (b *polyglotBook) Find(ctx context.Context, f string) ([]board.Move, error) {
	pos, turn, _, _, err := fen.Decode(f)
	if err != nil {
		return nil, err
	}

	entries := b.book.Probe(pos, turn)
	if len(entries) == 0 {
		return nil, nil
	}

	legal := pos.PseudoLegalMoves(turn)

	var out []board.Move
	for _, e := range entries {
		for _, candidate := range legal {
			if candidate.Equals(e.Move) {
				out = append(out, candidate)
				break
			}
		}
	}
	return out, nil
}
