package book

import "github.com/corvaline/corvaline/pkg/board"

// The Polyglot random constants are generated here from a fixed seed rather than taken from the
// published Polyglot table. Keys are therefore stable across runs but do not match the keys in
// .bin books built with the published constants.
var (
	polyglotPieces    [12][64]uint64
	polyglotCastling  [4]uint64
	polyglotEnPassant [8]uint64
	polyglotTurn      uint64
)

func init() {
	r := newPolyglotRand()
	for i := range polyglotPieces {
		for sq := range polyglotPieces[i] {
			polyglotPieces[i][sq] = r.next()
		}
	}
	for i := range polyglotCastling {
		polyglotCastling[i] = r.next()
	}
	for i := range polyglotEnPassant {
		polyglotEnPassant[i] = r.next()
	}
	polyglotTurn = r.next()
}

// polyglotHash computes the Polyglot position key for pos with turn to move: XOR of a random
// constant per occupied square, per allowed castling right, per en-passant file with a capturing
// pawn present, and the side-to-move constant iff white.
func polyglotHash(pos *board.Position, turn board.Color) uint64 {
	var hash uint64

	// Polyglot piece-kind ordering: bp, bN, bB, bR, bQ, bK, wp, wN, wB, wR, wQ, wK.
	kind := [board.NumColors][board.NumPieces]int{
		board.Black: {board.Pawn: 0, board.Knight: 1, board.Bishop: 2, board.Rook: 3, board.Queen: 4, board.King: 5},
		board.White: {board.Pawn: 6, board.Knight: 7, board.Bishop: 8, board.Rook: 9, board.Queen: 10, board.King: 11},
	}

	for c := board.ZeroColor; c < board.NumColors; c++ {
		for p := board.ZeroPiece; p < board.NumPieces; p++ {
			for bb := pos.Pieces(c, p); bb != board.EmptyBitboard; bb &= bb - 1 {
				sq := bb.LastPopSquare()
				hash ^= polyglotPieces[kind[c][p]][polyglotSquareIndex(sq)]
			}
		}
	}

	castling := pos.Castling()
	if castling.IsAllowed(board.WhiteKingSideCastle) {
		hash ^= polyglotCastling[0]
	}
	if castling.IsAllowed(board.WhiteQueenSideCastle) {
		hash ^= polyglotCastling[1]
	}
	if castling.IsAllowed(board.BlackKingSideCastle) {
		hash ^= polyglotCastling[2]
	}
	if castling.IsAllowed(board.BlackQueenSideCastle) {
		hash ^= polyglotCastling[3]
	}

	if ep, ok := pos.EnPassant(); ok && hasCapturingPawn(pos, ep, turn) {
		hash ^= polyglotEnPassant[polyglotFile(ep.File())]
	}

	if turn == board.White {
		hash ^= polyglotTurn
	}

	return hash
}

// polyglotSquareIndex maps a Square to the Polyglot convention: 8*rank + file, both 0-based
// from a1/rank1/fileA, the reverse of this engine's File numbering.
func polyglotSquareIndex(sq board.Square) int {
	return int(sq.Rank())*8 + polyglotFile(sq.File())
}

// polyglotFile converts this engine's File (H=0..A=7) to the conventional a=0..h=7 index.
func polyglotFile(f board.File) int {
	return 7 - int(f)
}

// hasCapturingPawn reports whether a pawn of the side to move sits adjacent to the en-passant
// file on the rank needed to capture, matching Polyglot's rule that the en-passant key only
// participates in the hash when the capture is actually available.
func hasCapturingPawn(pos *board.Position, ep board.Square, turn board.Color) bool {
	file := ep.File()
	rank := board.Rank5
	if turn == board.Black {
		rank = board.Rank4
	}
	pawns := pos.Pieces(turn, board.Pawn)

	if file != board.FileA {
		if pawns.IsSet(board.NewSquare(file+1, rank)) {
			return true
		}
	}
	if file != board.FileH {
		if pawns.IsSet(board.NewSquare(file-1, rank)) {
			return true
		}
	}
	return false
}

// polyglotRand is a small xorshift64 generator, used only to derive a fixed pseudo-random
// table deterministically at init time.
type polyglotRand struct {
	state uint64
}

func newPolyglotRand() *polyglotRand {
	return &polyglotRand{state: 0x9E3779B97F4A7C15}
}

func (r *polyglotRand) next() uint64 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 7
	r.state ^= r.state << 17
	return r.state
}
