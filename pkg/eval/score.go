package eval

import (
	"fmt"

	"github.com/corvaline/corvaline/pkg/board"
)

// Score is a signed position or move evaluation in centipawns, from the perspective of the
// side to move. Mate scores are encoded as an offset from InfScore, minus the number of plies
// to the mate, so shorter mates always score strictly closer to InfScore than longer ones.
type Score int32

const (
	ZeroScore Score = 0

	InfScore    Score = 1 << 20
	NegInfScore Score = -InfScore

	// InvalidScore is a sentinel returned by a cancelled or otherwise aborted search; it must
	// never be compared against or stored in a transposition table.
	InvalidScore Score = 1<<31 - 1

	// MateScore is the score of delivering checkmate on the current move (mate in 0 plies
	// for the mover). MateBound separates ordinary evaluations from mate-distance encodings.
	MateScore Score = InfScore - 1
	MateBound Score = MateScore - 1000
)

func (s Score) IsInvalid() bool {
	return s == InvalidScore
}

// Negate flips the score to the opponent's perspective. Invalid scores pass through unchanged.
func (s Score) Negate() Score {
	if s.IsInvalid() {
		return s
	}
	return -s
}

// Less reports whether s is strictly lower than o.
func (s Score) Less(o Score) bool {
	return s < o
}

// Max returns the larger of two scores.
func Max(a, b Score) Score {
	if a.Less(b) {
		return b
	}
	return a
}

// IsMate returns true iff the score represents a forced mate, for either side.
func (s Score) IsMate() bool {
	return s > MateBound || s < -MateBound
}

// MateDistance returns the number of plies to mate, if the score represents one.
func (s Score) MateDistance() (int, bool) {
	switch {
	case s > MateBound:
		return int(MateScore - s), true
	case s < -MateBound:
		return int(MateScore + s), true
	default:
		return 0, false
	}
}

// IncrementMateDistance lengthens a mate score by one ply, as it is propagated up the search
// tree away from the mating position. Non-mate scores pass through unchanged.
func IncrementMateDistance(s Score) Score {
	switch {
	case s.IsInvalid():
		return s
	case s > MateBound:
		return s - 1
	case s < -MateBound:
		return s + 1
	default:
		return s
	}
}

// HeuristicScore converts a heuristic evaluation in Pawns to centipawns, for the side to move.
func HeuristicScore(p Pawns) Score {
	return Score(p * 100)
}

// Unit returns the signed unit for the color: 1 for White and -1 for Black.
func Unit(c board.Color) Score {
	return Score(c.Unit())
}

func (s Score) String() string {
	if d, ok := s.MateDistance(); ok {
		moves := (d + 1) / 2
		if s < 0 {
			moves = -moves
		}
		return fmt.Sprintf("mate %d", moves)
	}
	return fmt.Sprintf("%.2f", float64(s)/100)
}
