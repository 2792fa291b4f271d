package search

import "github.com/corvaline/corvaline/pkg/board"

// HistoryTable counts, per side-to-move/from/to, how often a quiet move has caused a beta
// cutoff. Unlike killer moves it is not reset between searches: the counters persist across an
// entire game, so well-tested quiet moves keep bubbling to the top of the move order.
type HistoryTable struct {
	counts [board.NumColors][board.NumSquares][board.NumSquares]uint32
}

func NewHistoryTable() *HistoryTable {
	return &HistoryTable{}
}

// Record credits a quiet move that caused a beta cutoff at the given depth: deeper cutoffs
// count for more, the classic depth^2 history bonus.
func (h *HistoryTable) Record(turn board.Color, m board.Move, depth int) {
	if m.IsNull() {
		return
	}
	h.counts[turn][m.From][m.To] += uint32(depth * depth)
}

// Priority returns the move-ordering weight of a quiet move, scaled down to a small integer
// range so it composes predictably with MVV-LVA and killer-move priorities.
func (h *HistoryTable) Priority(turn board.Color, m board.Move) board.MovePriority {
	return board.MovePriority(h.counts[turn][m.From][m.To] / 64)
}
