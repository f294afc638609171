package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"othello/agent"
	"othello/engine"
	"othello/experiments"
	"othello/experiments/metrics"
	"othello/game"
	"othello/meta"
	"othello/searcher"
	"othello/server"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type config struct {
	Layout      string `validate:"required,len=64|len=100"`
	Black       string `validate:"required,oneof=random human minimax alpha-beta"`
	White       string `validate:"required,oneof=random human minimax alpha-beta"`
	Games       int    `validate:"min=1,max=100000"`
	Depth       int    `validate:"min=0"`
	BlackURL    string `validate:"omitempty,url"`
	WhiteURL    string `validate:"omitempty,url"`
	Alternate   bool
	FixedWindow bool
	Seed        uint64
	Out         string
	Serve       string `validate:"omitempty,hostname_port"`
	Throughput  int    `validate:"min=0,max=6"`
	LogLevel    string `validate:"oneof=trace debug info warn error disabled"`
	NoColor     bool
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func parseConfig(args []string, stderr io.Writer) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("othello", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.Layout, "layout", game.InitialLayout, "Starting state: 64 cells of . X O, row by row")
	fs.StringVar(&cfg.Black, "black", string(agent.Human), "Player X type: random, human, minimax or alpha-beta")
	fs.StringVar(&cfg.White, "white", string(agent.AlphaBeta), "Player O type: random, human, minimax or alpha-beta")
	fs.IntVar(&cfg.Games, "games", 1, fmt.Sprintf("Number of games; more than one runs an experiment (the classic run is %d)", meta.NUM_GAMES))
	fs.IntVar(&cfg.Depth, "depth", 0, "Search depth override, 0 keeps each strategy's default")
	fs.StringVar(&cfg.BlackURL, "black-url", "", "Othello server that plays X with the -black strategy")
	fs.StringVar(&cfg.WhiteURL, "white-url", "", "Othello server that plays O with the -white strategy")
	fs.BoolVar(&cfg.Alternate, "alternate", false, "Swap colours every other game of an experiment")
	fs.BoolVar(&cfg.FixedWindow, "fixed-window", false, "Alpha-beta keeps its window fixed instead of narrowing it")
	fs.Uint64Var(&cfg.Seed, "seed", uint64(time.Now().UnixNano()), "Seed for random players")
	fs.StringVar(&cfg.Out, "out", "", "Directory for experiment records")
	fs.StringVar(&cfg.Serve, "serve", "", "Serve the HTTP API on host:port instead of playing")
	fs.IntVar(&cfg.Throughput, "throughput", 0, "Compare searcher node counts up to this depth instead of playing")
	fs.StringVar(&cfg.LogLevel, "log-level", "info", "Log level")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colors")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if err := validate.Struct(cfg); err != nil {
		return cfg, errors.Wrap(err, "invalid flags")
	}
	if cfg.Games > 1 && (cfg.Black == string(agent.Human) || cfg.White == string(agent.Human)) {
		return cfg, errors.New("human players can only play single games")
	}
	if (cfg.BlackURL != "" && cfg.Black == string(agent.Human)) || (cfg.WhiteURL != "" && cfg.White == string(agent.Human)) {
		return cfg, errors.New("remote players cannot be human")
	}
	if cfg.Depth > meta.SEARCH_DEPTH_LIMIT {
		return cfg, errors.Errorf("depth %d exceeds %d", cfg.Depth, meta.SEARCH_DEPTH_LIMIT)
	}
	return cfg, nil
}

func setupLogging(level string, w io.Writer, noColor bool) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: noColor})
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := parseConfig(args, stderr)
	if err != nil {
		return err
	}
	setupLogging(cfg.LogLevel, stderr, cfg.NoColor)
	au := aurora.NewAurora(!cfg.NoColor)

	switch {
	case cfg.Serve != "":
		return serve(cfg.Serve)
	case cfg.Throughput > 0:
		return throughput(cfg, stdout)
	case cfg.Games > 1:
		return experiment(cfg, stdout, stderr)
	}
	return playGame(cfg, au, stdin, stdout)
}

func agentOptions(cfg config, seed uint64, source agent.MoveSource) []agent.Option {
	options := []agent.Option{agent.WithSeed(seed), agent.WithMoveSource(source)}
	if cfg.Depth > 0 {
		options = append(options, agent.WithSearchOptions(searcher.WithDepth(cfg.Depth)))
	}
	if cfg.FixedWindow {
		options = append(options, agent.WithSearchOptions(searcher.WithFixedWindow()))
	}
	return options
}

// newAgent builds an in-process agent, or a remote one when url is set.
func newAgent(cfg config, strategy, url string, seed uint64, source agent.MoveSource) (agent.Agent, error) {
	if url != "" {
		remote := engine.NewRemoteAgent(url, strategy)
		remote.Depth = cfg.Depth
		return remote, nil
	}
	return agent.New(agent.Strategy(strategy), agentOptions(cfg, seed, source)...)
}

func playGame(cfg config, au aurora.Aurora, stdin io.Reader, stdout io.Writer) error {
	board, err := game.NewBoard(cfg.Layout)
	if err != nil {
		return err
	}
	// Both sides read from one source so line buffering is shared
	source := agent.NewReaderSource(stdin, stdout)
	black, err := newAgent(cfg, cfg.Black, cfg.BlackURL, cfg.Seed, source)
	if err != nil {
		return err
	}
	white, err := newAgent(cfg, cfg.White, cfg.WhiteURL, cfg.Seed+1, source)
	if err != nil {
		return err
	}

	renderBoard(stdout, au, board, board.LegalMoves(game.Black))
	e := engine.New(black, white, board, engine.WithObserver(func(u engine.Update) {
		renderUpdate(stdout, au, u)
	}))
	outcome, _, _, err := e.Run()
	if err != nil {
		return err
	}
	renderOutcome(stdout, au, outcome)
	return nil
}

func experiment(cfg config, stdout, stderr io.Writer) error {
	summary, err := experiments.Run(experiments.Config{
		Games:     cfg.Games,
		Layout:    cfg.Layout,
		First:     metrics.AgentConfig{ID: 0, Strategy: cfg.Black, Depth: cfg.Depth, Seed: cfg.Seed, FixedWindow: cfg.FixedWindow, URL: cfg.BlackURL},
		Second:    metrics.AgentConfig{ID: 1, Strategy: cfg.White, Depth: cfg.Depth, Seed: cfg.Seed + 1, FixedWindow: cfg.FixedWindow, URL: cfg.WhiteURL},
		Alternate: cfg.Alternate,
		OutDir:    cfg.Out,
		Progress:  stderr,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%d games: agent 0 (%s, X first) won %d, agent 1 (%s) won %d, %d ties\n",
		summary.Games, cfg.Black, summary.Wins[0], cfg.White, summary.Wins[1], summary.Ties)
	if summary.Dir != "" {
		fmt.Fprintf(stdout, "records written to %s\n", summary.Dir)
	}
	return nil
}

func throughput(cfg config, stdout io.Writer) error {
	results, err := experiments.RunThroughputExperiment(cfg.Throughput, cfg.Seed)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%-18s %5s %10s %10s %12s\n", "searcher", "depth", "nodes", "cutoffs", "nodes/s")
	for _, r := range results {
		fmt.Fprintf(stdout, "%-18s %5d %10d %10d %12.0f\n", r.Searcher, r.Depth, r.Nodes, r.Cutoffs, r.NodesPerSecond())
	}
	return nil
}

func serve(addr string) error {
	gin.SetMode(gin.ReleaseMode)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: server.NewServer().Engine(),
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Msgf("http server started on %s", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	log.Info().Msg("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "server forced to shutdown")
	}
	log.Info().Msg("server exiting")
	return nil
}
