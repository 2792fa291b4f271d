package tablebase

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/corvaline/corvaline/pkg/board"
)

// Local probes a local directory of Syzygy tablebase files (.rtbw/.rtbz), named by material
// signature (e.g. "KQvKR.rtbw"). There is no pure-Go Syzygy binary-format decoder available in
// the wider ecosystem this engine draws on, so a hit only certifies that the position's material
// signature is covered; WDL for a hit is resolved by Fallback, matching how a Syzygy-aware
// engine without a bundled decoder defers to network probing for the actual classification.
type Local struct {
	Path     string
	Fallback Prober
}

// NewLocal creates a local prober rooted at path. An empty path means no local coverage at all.
func NewLocal(path string, fallback Prober) *Local {
	return &Local{Path: path, Fallback: fallback}
}

func (l *Local) Available() bool {
	return l.Path != "" && l.hasAnyFile()
}

func (l *Local) hasAnyFile() bool {
	entries, err := os.ReadDir(l.Path)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".rtbw") {
			return true
		}
	}
	return false
}

// covers reports whether the material signature for pos has a local WDL (.rtbw) file.
func (l *Local) covers(pos *board.Position) bool {
	if CountPieces(pos) > MaxPieces {
		return false
	}
	sig := materialSignature(pos)
	wdl := filepath.Join(l.Path, sig+".rtbw")
	if _, err := os.Stat(wdl); err != nil {
		return false
	}
	return true
}

func (l *Local) ProbeRoot(ctx context.Context, pos *board.Position, turn board.Color) (Result, bool) {
	if !l.Available() || !l.covers(pos) || l.Fallback == nil {
		return Result{}, false
	}
	return l.Fallback.ProbeRoot(ctx, pos, turn)
}

// materialSignature renders a position's material as "K<white pieces>vK<black pieces>", most
// valuable piece first, the conventional Syzygy tablebase file-naming key.
func materialSignature(pos *board.Position) string {
	order := []board.Piece{board.Queen, board.Rook, board.Bishop, board.Knight, board.Pawn}

	var white, black strings.Builder
	for _, p := range order {
		for i := 0; i < pos.Pieces(board.White, p).PopCount(); i++ {
			white.WriteByte(materialChar(p))
		}
	}
	for _, p := range order {
		for i := 0; i < pos.Pieces(board.Black, p).PopCount(); i++ {
			black.WriteByte(materialChar(p))
		}
	}
	return "K" + white.String() + "vK" + black.String()
}

func materialChar(p board.Piece) byte {
	switch p {
	case board.Queen:
		return 'Q'
	case board.Rook:
		return 'R'
	case board.Bishop:
		return 'B'
	case board.Knight:
		return 'N'
	case board.Pawn:
		return 'P'
	default:
		return '?'
	}
}
