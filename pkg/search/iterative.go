package search

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/corvaline/corvaline/pkg/board"
	"github.com/corvaline/corvaline/pkg/eval"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/seekerror/stdlib/pkg/util/contextx"
	"github.com/seekerror/stdlib/pkg/util/iox"
)

// Options hold dynamic search options. The caller may change these on a particular search.
type Options struct {
	// DepthLimit, if set, limits the search to the given ply depth. Zero means no limit.
	DepthLimit lang.Optional[uint]
	// TimeControl, if set, limits the search to the given time parameters.
	TimeControl lang.Optional[TimeControl]
	// TimeWeights overrides the default time-allocation weights, if set.
	TimeWeights lang.Optional[TimeWeights]
}

func (o Options) String() string {
	var ret []string
	if v, ok := o.DepthLimit.V(); ok {
		ret = append(ret, fmt.Sprintf("depth=%v", v))
	}
	if v, ok := o.TimeControl.V(); ok {
		ret = append(ret, fmt.Sprintf("time=%v", v))
	}
	return fmt.Sprintf("[%v]", strings.Join(ret, ", "))
}

// Launcher manages searches against a position.
type Launcher interface {
	// Launch a new search from the given position. It expects an exclusive (forked) board and
	// returns a PV channel fed with iteratively deeper results. The channel closes once the
	// search is exhausted. The search can be stopped at any time via the returned Handle.
	Launch(ctx context.Context, b *board.Board, tt TranspositionTable, noise eval.Random, opt Options) (Handle, <-chan PV)
}

// Handle lets the caller manage a running search: stop it and collect the best PV found so far.
type Handle interface {
	// Halt halts the search, if running. Idempotent.
	Halt() PV
}

// Iterative is the iterative-deepening driver: it calls Root at depth 1, 2, 3, ... publishing a
// PV after each, until a stopping condition is hit (depth limit, forced mate found, soft time
// limit, or Halt).
type Iterative struct {
	Root Search

	// NoAspirationWindow disables the narrow-window search of searchWithAspiration: every depth
	// runs full-width instead. Corresponds to a disabled enable_aspiration_windows option.
	NoAspirationWindow bool
}

func (it *Iterative) Launch(ctx context.Context, b *board.Board, tt TranspositionTable, noise eval.Random, opt Options) (Handle, <-chan PV) {
	out := make(chan PV, 1)
	h := &handle{
		init: iox.NewAsyncCloser(),
		quit: iox.NewAsyncCloser(),
	}
	go h.process(ctx, it.Root, it.NoAspirationWindow, b, tt, noise, opt, out)

	return h, out
}

type handle struct {
	init, quit iox.AsyncCloser

	pv PV
	mu sync.Mutex
}

func (h *handle) process(ctx context.Context, root Search, noAspiration bool, b *board.Board, tt TranspositionTable, noise eval.Random, opt Options, out chan PV) {
	defer h.init.Close()
	defer close(out)

	weights := DefaultTimeWeights()
	if w, ok := opt.TimeWeights.V(); ok {
		weights = w
	}
	soft, useSoft := EnforceTimeControl(ctx, h, opt.TimeControl, weights, b.Turn())

	wctx, cancel := contextx.WithQuitCancel(ctx, h.quit.Closed())
	defer cancel()

	var prev eval.Score
	havePrev := false

	depth := 1
	for depth == 1 || !h.quit.IsClosed() {
		start := time.Now()

		// Depth 1 always runs against the uncancelled ctx: a soft/hard time limit or an
		// immediate Halt must never leave the driver without a single legal move to return.
		searchCtx := wctx
		if depth == 1 {
			searchCtx = ctx
		}

		usePrev := havePrev && !noAspiration
		nodes, score, moves, err := searchWithAspiration(searchCtx, root, tt, noise, b, depth, prev, usePrev)
		if err != nil {
			if err == ErrHalted {
				return // Halt was called.
			}
			logw.Errorf(ctx, "Search failed on %v at depth=%v: %v", b, depth, err)
			return
		}
		prev, havePrev = score, true

		pv := PV{
			Depth: depth,
			Nodes: nodes,
			Score: score,
			Moves: moves,
			Time:  time.Since(start),
		}
		if tt != nil {
			pv.Hash = tt.Used()
		}

		logw.Debugf(ctx, "Searched %v: %v", b.Position(), pv)

		h.mu.Lock()
		h.pv = pv
		h.mu.Unlock()

		select {
		case <-out:
		default:
		}
		out <- pv

		h.init.Close()
		if limit, ok := opt.DepthLimit.V(); ok && uint(depth) == limit {
			return // halt: reached max depth
		}
		if md, ok := score.MateDistance(); ok && md <= depth {
			return // halt: forced mate found within full width search. Exact result.
		}
		if useSoft && soft < time.Since(start) {
			return // halt: exceeded soft time limit. Do not start new search.
		}
		depth++
	}
}

func (h *handle) Halt() PV {
	<-h.init.Closed()
	h.quit.Close()

	h.mu.Lock()
	defer h.mu.Unlock()

	return h.pv
}
