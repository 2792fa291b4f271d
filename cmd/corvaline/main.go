package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/corvaline/corvaline/pkg/config"
	"github.com/corvaline/corvaline/pkg/engine"
	"github.com/corvaline/corvaline/pkg/engine/lichess"
	"github.com/corvaline/corvaline/pkg/engine/tablebase"
	"github.com/corvaline/corvaline/pkg/engine/uci"
	"github.com/corvaline/corvaline/pkg/eval"
	"github.com/corvaline/corvaline/pkg/search"
	"github.com/seekerror/logw"
)

var (
	configPath = flag.String("config", "", "Path to a TOML configuration file (defaults if unset or unreadable)")
	noise      = flag.Int("noise", 0, "Evaluation noise in millipawns (zero if deterministic)")
	hash       = flag.Uint("hash", 64, "Transposition table size in MB (zero disables it)")
	token      = flag.String("token", "", "Lichess bot API token, required when mode=LICHESS")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: corvaline [options]

CORVALINE is a UCI and Lichess bot chess engine.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	cfg := config.Load(*configPath)

	root := newRoot(cfg)
	opts := []engine.Option{
		engine.WithOptions(engine.Options{Depth: uint(cfg.MaxDepth), Hash: *hash, Noise: uint(*noise)}),
		engine.WithLauncher(&search.Iterative{Root: root, NoAspirationWindow: !cfg.EnableAspirationWindows}),
	}
	if cfg.EnableTranspositionTable {
		opts = append(opts, engine.WithTable(search.NewTranspositionTable))
	} else {
		opts = append(opts, engine.WithTable(func(context.Context, uint64) search.TranspositionTable {
			return search.NoTranspositionTable{}
		}))
	}
	bookOpt, err := loadBook(ctx, cfg)
	if err != nil {
		logw.Warningf(ctx, "Opening book disabled: %v", err)
	} else if bookOpt != nil {
		opts = append(opts, engine.WithBook(bookOpt))
	}
	opts = append(opts, engine.WithTablebase(newTablebase(cfg)))

	e := engine.New(ctx, "corvaline", "corvaline", root, opts...)

	switch cfg.Mode {
	case config.Lichess:
		runLichess(ctx, e, *token)

	default:
		var driverOpts []uci.Option
		if bookOpt != nil {
			driverOpts = append(driverOpts, uci.UseBook(bookOpt, time.Now().UnixNano()))
		}

		in := engine.ReadStdinLines(ctx)
		driver, out := uci.NewDriver(ctx, e, in, driverOpts...)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()
	}
}

// newRoot assembles the root search algorithm from the resolved configuration: the composite
// move-order heuristic, killer and history tables, null-move and futility pruning switches,
// and a quiescence search with delta pruning.
func newRoot(cfg config.Config) search.Search {
	killers := search.NewKillerTable()
	history := search.NewHistoryTable()

	mode := search.OrderMVVLVA
	if cfg.MoveOrderMode == config.Composite || cfg.MoveOrderMode == config.Killer || cfg.MoveOrderMode == config.History {
		mode = search.OrderComposite
	}

	orderer := &search.Orderer{
		Mode:    mode,
		Weights: search.OrderWeights{MVVLVA: int(cfg.MVVLVAWeight), Killer: int(cfg.KillerMovesWeight), History: int(cfg.HistoryWeight)},
		Killers: killers,
		History: history,
	}

	static := eval.Pesto{}

	quiescence := search.Quiescence{
		Explore: search.CaptureExploration,
		Eval:    search.StaticEvaluator{Eval: static},
	}
	if !cfg.EnableDeltaPruning {
		quiescence.Explore = search.FullExploration
	}

	return &search.AlphaBeta{
		Explore:  orderer.Explore,
		Eval:     quiescence,
		Static:   static,
		PVS:      cfg.SearchMode == config.PVS,
		NullMove: cfg.EnableNullMovePruning,
		Futility: cfg.EnableFutilityPruning,
		Killers:  killers,
		History:  history,
		Stats:    &search.Statistics{},
	}
}

func loadBook(ctx context.Context, cfg config.Config) (engine.Book, error) {
	if cfg.OpeningBookPath == "" {
		return nil, nil
	}
	return engine.NewPolyglotBook(cfg.OpeningBookPath)
}

func newTablebase(cfg config.Config) tablebase.Prober {
	remote := tablebase.NewRemote()
	if cfg.EndgameTablebasePath == "" {
		return remote
	}
	return tablebase.Composite{tablebase.NewLocal(cfg.EndgameTablebasePath, remote), remote}
}

func runLichess(ctx context.Context, e *engine.Engine, token string) {
	if token == "" {
		logw.Exitf(ctx, "Lichess mode requires -token")
	}

	client := lichess.New(token)

	events := make(chan lichess.Event, 16)
	go func() {
		if err := client.StreamEvents(ctx, events); err != nil {
			logw.Errorf(ctx, "Event stream closed: %v", err)
		}
	}()

	for ev := range events {
		switch ev.Type {
		case "challenge":
			if err := client.AcceptChallenge(ctx, ev.Challenge.ID); err != nil {
				logw.Warningf(ctx, "Failed to accept challenge %v: %v", ev.Challenge.ID, err)
			}

		case "gameStart":
			go playGame(ctx, e, client, ev.Game.ID)
		}
	}
}

// playGame drives one Lichess game to completion: replay the moves every state update
// reports, then ask the engine for its best move when appropriate.
func playGame(ctx context.Context, e *engine.Engine, client *lichess.Client, gameID string) {
	states := make(chan lichess.GameState, 16)
	go func() {
		if err := client.StreamGame(ctx, gameID, states); err != nil {
			logw.Errorf(ctx, "Game %v stream closed: %v", gameID, err)
		}
	}()

	for s := range states {
		if s.Status != "" && s.Status != "started" && s.Status != "created" {
			return
		}

		move, err := e.BestMove(ctx, 5*time.Second)
		if err != nil {
			logw.Errorf(ctx, "Game %v: best move failed: %v", gameID, err)
			continue
		}
		if err := client.MakeMove(ctx, gameID, move.String()); err != nil {
			logw.Warningf(ctx, "Game %v: move rejected: %v", gameID, err)
		}
	}
}
