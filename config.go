package genetic_queens

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
)

const EnvPrefix = "QUEENS_"

type LogConfig struct {
	Level  string `toml:"level" env:"LEVEL" validate:"oneof=trace debug info warn warning error"`
	Format string `toml:"format" env:"FORMAT" validate:"oneof=text json"`
}

// Config holds everything needed to build an Engine and drive one run.
type Config struct {
	BoardSize            int     `toml:"board_size" env:"BOARD_SIZE" validate:"gt=0"`
	PopulationSize       int     `toml:"population_size" env:"POPULATION_SIZE" validate:"gt=0"`
	Generations          int     `toml:"generations" env:"GENERATIONS" validate:"gte=0"`
	CrossoverCut         int     `toml:"crossover_cut" env:"CROSSOVER_CUT" validate:"gte=0,ltefield=BoardSize"`
	MutationRate         int     `toml:"mutation_rate" env:"MUTATION_RATE" validate:"gte=0,lte=100"`
	Selection            string  `toml:"selection" env:"SELECTION" validate:"oneof=roulette tournament roleta torneio"`
	TournamentFitterWins bool    `toml:"tournament_fitter_wins" env:"TOURNAMENT_FITTER_WINS"`
	Elitism              int     `toml:"elitism" env:"ELITISM" validate:"gte=0,ltfield=PopulationSize"`
	Variant              Variant `toml:"variant" env:"VARIANT" validate:"oneof=collision weighted"`
	// Ceiling overrides the collision target. 0 derives it from the grid
	// total, or from the pair count when no grid is given.
	Ceiling     int          `toml:"ceiling" env:"CEILING" validate:"gte=0"`
	Grid        CostGrid     `toml:"grid"`
	Seed        int64        `toml:"seed" env:"SEED"`
	MetricsAddr string       `toml:"metrics_addr" env:"METRICS_ADDR"`
	Log         LogConfig    `toml:"log" envPrefix:"LOG_"`
	Ledger      LedgerConfig `toml:"ledger" envPrefix:"LEDGER_"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// DefaultConfig mirrors the classic driver: 8 queens, roulette, elitism 1.
func DefaultConfig() *Config {
	return &Config{
		BoardSize:      8,
		PopulationSize: 100,
		Generations:    1000,
		CrossoverCut:   4,
		MutationRate:   10,
		Selection:      string(DefaultSelection),
		Elitism:        DefaultElitism,
		Variant:        CollisionVariant,
		Log:            LogConfig{Level: "info", Format: "text"},
		Ledger:         DefaultLedgerConfig(),
	}
}

// LoadConfig layers the TOML file at path (if any) and QUEENS_* environment
// variables over the defaults. The result is not validated; callers apply
// their own overrides first and then call Validate.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
		}
	}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// DecodeGrid reads a cost grid TOML document of the form `grid = [[...]]`.
func DecodeGrid(path string) (CostGrid, error) {
	var doc struct {
		Grid CostGrid `toml:"grid"`
	}
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode grid %s: %w", path, err)
	}
	return doc.Grid, nil
}

// Validate fails fast on anything the engine would otherwise accept
// silently. Every error wraps ErrInvalidConfig.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, len(verrs))
			for i, fe := range verrs {
				msgs[i] = describeFieldError(fe)
			}
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Variant == WeightedVariant && len(c.Grid) == 0 {
		return fmt.Errorf("%w: weighted variant requires a cost grid", ErrInvalidConfig)
	}
	if len(c.Grid) > 0 {
		if err := c.Grid.Validate(c.BoardSize); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

func describeFieldError(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fmt.Sprintf("%s failed %q (got %v)", fe.Namespace(), fe.Tag(), fe.Value())
	}
	return fmt.Sprintf("%s failed %q %s (got %v)", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value())
}

// Objective builds the fitness function for the configured variant.
func (c *Config) Objective() Objective {
	if c.Variant == WeightedVariant {
		return NewWeightedObjective(c.Grid)
	}
	switch {
	case c.Ceiling > 0:
		return NewCollisionObjective(c.Ceiling)
	case len(c.Grid) > 0:
		return NewCollisionObjectiveFromGrid(c.Grid)
	default:
		return NewCollisionObjective(PairCeiling(c.BoardSize))
	}
}

func (c *Config) RunParams() RunParams {
	return RunParams{
		Generations:  c.Generations,
		CrossoverCut: c.CrossoverCut,
		MutationRate: c.MutationRate,
		Selection: SelectorConfig{
			Method:     SelectionMethod(c.Selection),
			FitterWins: c.TournamentFitterWins,
		},
		Elitism: c.Elitism,
	}
}

// NewEngine validates c and synthesizes the initial population.
func (c *Config) NewEngine() (*Engine, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return NewEngine(c.BoardSize, c.PopulationSize, c.Objective(), NewRand(c.Seed))
}

// NewLogger builds a logrus logger writing to stderr.
func (lc LogConfig) NewLogger() (*log.Logger, error) {
	logger := log.New()
	logger.SetOutput(os.Stderr)
	level, err := log.ParseLevel(lc.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	logger.SetLevel(level)
	if lc.Format == "json" {
		logger.SetFormatter(&log.JSONFormatter{})
	} else {
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return logger, nil
}
