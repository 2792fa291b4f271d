package tablebase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/corvaline/corvaline/pkg/board"
	"github.com/corvaline/corvaline/pkg/board/fen"
	"github.com/seekerror/logw"
)

const lichessTablebaseURL = "https://tablebase.lichess.ovh/standard"

// Remote probes the Lichess tablebase HTTPS API. A transport failure is never fatal: it is
// logged and treated as a miss, so the caller falls back to search.
type Remote struct {
	Client *http.Client
}

// NewRemote creates a Remote prober with a bounded per-request timeout.
func NewRemote() *Remote {
	return &Remote{Client: &http.Client{Timeout: 5 * time.Second}}
}

func (r *Remote) Available() bool {
	return true // network reachability is only known by trying.
}

type lichessTablebaseResponse struct {
	Category string `json:"category"`
	DTZ      int    `json:"dtz"`
	Moves    []struct {
		UCI      string `json:"uci"`
		Category string `json:"category"`
	} `json:"moves"`
}

func (r *Remote) ProbeRoot(ctx context.Context, pos *board.Position, turn board.Color) (Result, bool) {
	if CountPieces(pos) > MaxPieces {
		return Result{}, false
	}

	f := fen.Encode(pos, turn, 0, 1)
	u := lichessTablebaseURL + "?fen=" + url.QueryEscape(f)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Result{}, false
	}

	resp, err := r.Client.Do(req)
	if err != nil {
		logw.Warningf(ctx, "Remote tablebase probe failed: %v", err)
		return Result{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, false
	}

	var out lichessTablebaseResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || len(out.Moves) == 0 {
		return Result{}, false
	}

	// The API reports moves from the position's perspective: each entry's category is the
	// result *for the mover after playing it*, i.e. from the opponent's perspective. A move
	// is winning for us iff it leaves the opponent losing.
	for _, m := range out.Moves {
		if categoryToWDL(m.Category) != Loss {
			continue
		}
		move, err := board.ParseMove(m.UCI)
		if err != nil {
			continue
		}
		return Result{Move: move, WDL: Win, Found: true}, true
	}
	return Result{}, false
}

func categoryToWDL(category string) WDL {
	switch category {
	case "win":
		return Win
	case "maybe-win", "cursed-win":
		return CursedWin
	case "draw":
		return Draw
	case "maybe-loss", "blessed-loss":
		return BlessedLoss
	case "loss":
		return Loss
	default:
		return Draw
	}
}
