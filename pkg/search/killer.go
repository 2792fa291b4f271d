package search

import "github.com/corvaline/corvaline/pkg/board"

// maxKillerPly bounds the killer table. Slots are indexed by the board's ply (half-moves since
// the start of its history), not by depth within the search; positions at or past this ply
// record and score no killers, and the table does not grow.
const maxKillerPly = 128

// KillerTable remembers, per ply, the quiet moves that most recently caused a beta cutoff.
// Two slots per ply, newest first: a fresh killer pushes the older one out rather than
// replacing it, so both remain available for a couple of plies.
type KillerTable struct {
	slots [maxKillerPly][2]board.Move
}

func NewKillerTable() *KillerTable {
	return &KillerTable{}
}

// Record registers a cutoff move at the given ply. Captures are excluded by the caller: MVV-LVA
// already orders them well, and killer slots are scarce.
func (k *KillerTable) Record(ply int, m board.Move) {
	if ply < 0 || ply >= maxKillerPly || m.IsNull() {
		return
	}
	if k.slots[ply][0].Equals(m) {
		return // already the primary killer
	}
	k.slots[ply][1] = k.slots[ply][0]
	k.slots[ply][0] = m
}

// Priority returns the move-ordering bonus for a killer move at the given ply: 2 for the most
// recent cutoff move, 1 for the second-most-recent, 0 otherwise.
func (k *KillerTable) Priority(ply int, m board.Move) board.MovePriority {
	if ply < 0 || ply >= maxKillerPly {
		return 0
	}
	switch {
	case k.slots[ply][0].Equals(m):
		return 2
	case k.slots[ply][1].Equals(m):
		return 1
	default:
		return 0
	}
}
