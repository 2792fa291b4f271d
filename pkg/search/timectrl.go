package search

import (
	"context"
	"fmt"
	"time"

	"github.com/corvaline/corvaline/pkg/board"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

// TimeControl represents the clock state for a game: remaining time and per-move increment for
// each side, plus the number of moves left to the next time control (0 == rest of game).
type TimeControl struct {
	White, Black       time.Duration
	WhiteInc, BlackInc time.Duration
	Moves              int
}

// TimeWeights scales how much of the remaining clock and increment is spent on a single move:
// soft limit = Time*remaining + Increment*increment. The defaults spend a tenth of what's left
// plus a hundredth of the increment, so the clock drains gradually rather than in one big step.
type TimeWeights struct {
	Time, Increment float64
}

const (
	DefaultTimeWeight      = 0.1
	DefaultIncrementWeight = 0.01
)

func DefaultTimeWeights() TimeWeights {
	return TimeWeights{Time: DefaultTimeWeight, Increment: DefaultIncrementWeight}
}

// Limits returns the soft and hard time limit for making a move with the given color and
// weights. Past the soft limit, no new iterative-deepening depth should be started; the hard
// limit is an absolute ceiling enforced regardless of search progress.
func (t TimeControl) Limits(c board.Color, w TimeWeights) (time.Duration, time.Duration) {
	remaining, inc := t.White, t.WhiteInc
	if c == board.Black {
		remaining, inc = t.Black, t.BlackInc
	}

	soft := time.Duration(w.Time*float64(remaining) + w.Increment*float64(inc))
	hard := 3 * soft
	return soft, hard
}

func (t TimeControl) String() string {
	if t.Moves == 0 {
		return fmt.Sprintf("%.1f<>%.1f", t.White.Seconds(), t.Black.Seconds())
	}
	return fmt.Sprintf("%.1f<>%.1f[moves=%v]", t.White.Seconds(), t.Black.Seconds(), t.Moves)
}

// EnforceTimeControl schedules a hard-limit Halt, if a time control is set. Returns the soft
// limit and whether one applies at all.
func EnforceTimeControl(ctx context.Context, h Handle, tc lang.Optional[TimeControl], w TimeWeights, turn board.Color) (time.Duration, bool) {
	c, ok := tc.V()
	if !ok {
		return 0, false
	}

	soft, hard := c.Limits(turn, w)
	time.AfterFunc(hard, func() {
		h.Halt()
	})

	logw.Debugf(ctx, "Time control limits for %v: [%v; %v]", c, soft, hard)
	return soft, true
}
