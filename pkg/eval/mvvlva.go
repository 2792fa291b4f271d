package eval

import "github.com/corvaline/corvaline/pkg/board"

// mvvlva is the classic 6x6 "most valuable victim, least valuable attacker" table, indexed
// [victim][attacker]. Capturing a higher-value piece with a lower-value one ranks highest.
var mvvlva = [board.NumPieces][board.NumPieces]int{
	board.Pawn:   {board.Pawn: 10, board.Bishop: 9, board.Knight: 9, board.Rook: 8, board.Queen: 7, board.King: 6},
	board.Bishop: {board.Pawn: 30, board.Bishop: 29, board.Knight: 29, board.Rook: 28, board.Queen: 27, board.King: 26},
	board.Knight: {board.Pawn: 30, board.Bishop: 29, board.Knight: 29, board.Rook: 28, board.Queen: 27, board.King: 26},
	board.Rook:   {board.Pawn: 50, board.Bishop: 49, board.Knight: 49, board.Rook: 48, board.Queen: 47, board.King: 46},
	board.Queen:  {board.Pawn: 90, board.Bishop: 89, board.Knight: 89, board.Rook: 88, board.Queen: 87, board.King: 86},
}

// MVVLVA returns the move ordering priority of a capture under MVV-LVA. Non-captures score 0.
func MVVLVA(m board.Move) board.MovePriority {
	if !m.IsCapture() {
		return 0
	}
	return board.MovePriority(mvvlva[m.Capture][m.Piece])
}
