package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	gq "nickandperla.net/genetic_queens"
	"nickandperla.net/genetic_queens/monitoring"
)

type runFlags struct {
	board       int
	population  int
	generations int
	cut         int
	mutation    int
	selection   string
	fitterWins  bool
	elitism     int
	variant     string
	gridPath    string
	ceiling     int
	seed        int64
	ledger      bool
	metricsAddr string
	logLevel    string
	logFormat   string
}

func (rf *runFlags) register(fs *pflag.FlagSet) {
	fs.IntVarP(&rf.board, "board", "n", 0, "Board size N")
	fs.IntVarP(&rf.population, "population", "p", 0, "Population size")
	fs.IntVarP(&rf.generations, "generations", "g", 0, "Maximum number of generations")
	fs.IntVar(&rf.cut, "cut", 0, "Crossover cut point, in (0, N)")
	fs.IntVarP(&rf.mutation, "mutation", "m", 0, "Mutation rate percentage (0-100)")
	fs.StringVarP(&rf.selection, "selection", "s", "", "Selection method: roulette or tournament")
	fs.BoolVar(&rf.fitterWins, "fitter-wins", false, "Tournament returns the fitter competitor")
	fs.IntVarP(&rf.elitism, "elitism", "e", 0, "Individuals carried over unchanged each generation")
	fs.StringVar(&rf.variant, "variant", "", "Fitness variant: collision or weighted")
	fs.StringVar(&rf.gridPath, "grid", "", "TOML file holding the N x N cost grid")
	fs.IntVar(&rf.ceiling, "ceiling", 0, "Collision fitness ceiling (0 derives it)")
	fs.Int64Var(&rf.seed, "seed", 0, "Random seed (0 uses the clock)")
	fs.BoolVar(&rf.ledger, "ledger", false, "Record the run in the SQLite ledger")
	fs.StringVar(&rf.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	fs.StringVar(&rf.logLevel, "log-level", "", "Log level")
	fs.StringVar(&rf.logFormat, "log-format", "", "Log format: text or json")
}

// apply copies every flag the user set over cfg.
func (rf *runFlags) apply(fs *pflag.FlagSet, cfg *gq.Config) error {
	set := func(name string, fn func()) {
		if fs.Changed(name) {
			fn()
		}
	}
	set("board", func() { cfg.BoardSize = rf.board })
	set("population", func() { cfg.PopulationSize = rf.population })
	set("generations", func() { cfg.Generations = rf.generations })
	set("cut", func() { cfg.CrossoverCut = rf.cut })
	set("mutation", func() { cfg.MutationRate = rf.mutation })
	set("selection", func() { cfg.Selection = rf.selection })
	set("fitter-wins", func() { cfg.TournamentFitterWins = rf.fitterWins })
	set("elitism", func() { cfg.Elitism = rf.elitism })
	set("variant", func() { cfg.Variant = gq.Variant(rf.variant) })
	set("ceiling", func() { cfg.Ceiling = rf.ceiling })
	set("seed", func() { cfg.Seed = rf.seed })
	set("ledger", func() { cfg.Ledger.Enabled = rf.ledger })
	set("metrics-addr", func() { cfg.MetricsAddr = rf.metricsAddr })
	set("log-level", func() { cfg.Log.Level = rf.logLevel })
	set("log-format", func() { cfg.Log.Format = rf.logFormat })
	if rf.gridPath != "" {
		grid, err := gq.DecodeGrid(rf.gridPath)
		if err != nil {
			return err
		}
		cfg.Grid = grid
	}
	return nil
}

func newRunCommand() *cobra.Command {
	rf := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evolve a population with parameters from config, environment and flags",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := gq.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if err := rf.apply(cmd.Flags(), cfg); err != nil {
				return err
			}
			return execute(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}
	rf.register(cmd.Flags())
	return cmd
}

// execute builds the engine and its reporters from cfg, runs it, and prints
// the winning board to out.
func execute(ctx context.Context, cfg *gq.Config, out io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, err := cfg.Log.NewLogger()
	if err != nil {
		return err
	}

	engine, err := cfg.NewEngine()
	if err != nil {
		return err
	}

	reporters := gq.Reporters{gq.NewLogReporter(logger)}

	if cfg.MetricsAddr != "" {
		srv := &http.Server{Addr: cfg.MetricsAddr, Handler: monitoring.Handler()}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.WithError(err).Error("Metrics server failed")
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()
		reporters = append(reporters, monitoring.NewReporter())
		logger.WithField("addr", cfg.MetricsAddr).Info("Serving metrics")
	}

	if cfg.Ledger.Enabled {
		ledger, err := gq.NewLedger(&cfg.Ledger)
		if err != nil {
			return err
		}
		defer ledger.Shutdown()
		reporters = append(reporters, ledger.Recorder(cfg))
	}
	engine.SetReporter(reporters)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.WithFields(log.Fields{
		"variant":    cfg.Variant,
		"board":      cfg.BoardSize,
		"population": cfg.PopulationSize,
		"ceiling":    engine.Ceiling(),
		"selection":  cfg.Selection,
	}).Info("Starting run")

	result, err := engine.Run(ctx, cfg.RunParams())
	if result != nil && result.Best != nil {
		fmt.Fprintf(out, "Winning solution (%s after %d generations):\n", result.Reason, result.Generations)
		fmt.Fprintln(out, gq.RenderBoard(result.Best))
	}
	if errors.Is(err, context.Canceled) {
		logger.Warn("Run interrupted")
		return nil
	}
	return err
}
