package genetic_queens

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite"
	gorm "gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type LedgerConfig struct {
	Enabled       bool     `toml:"enabled" env:"ENABLED"`
	Name          string   `toml:"name" env:"NAME"`
	Path          string   `toml:"path" env:"PATH"`
	SQLitePragmas []string `toml:"sqlite_pragmas"`
}

func DefaultLedgerConfig() LedgerConfig {
	return LedgerConfig{
		Name:          "nqueens.db",
		Path:          ".",
		SQLitePragmas: []string{"journal_mode(WAL)", "busy_timeout(5000)"},
	}
}

// RunRecord is one finished run: its parameters, its outcome and the
// per-generation stats. Populations themselves are never stored.
type RunRecord struct {
	ID                uint `gorm:"primaryKey"`
	CreatedAt         time.Time
	Variant           string
	BoardSize         int
	PopulationSize    int
	MaxGenerations    int
	CrossoverCut      int
	MutationRate      int
	Selection         string
	Elitism           int
	Seed              int64
	Ceiling           int
	GenerationsRun    int
	Reason            string
	Solved            bool
	BestFitness       int
	BestInfeasible    bool
	BestGenotype      string
	GenerationRecords []GenerationRecord `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE"`
}

type GenerationRecord struct {
	ID             uint `gorm:"primaryKey"`
	RunID          uint `gorm:"index"`
	Generation     int
	PopulationSize int
	MeanFitness    float64
	StdDev         float64
	Diversity      float64
	Infeasible     int
	BestFitness    int
	BestInfeasible bool
	BestGenotype   string
}

// Ledger stores run history in SQLite.
type Ledger struct {
	Config *LedgerConfig
	DB     *gorm.DB
}

func NewLedger(config *LedgerConfig) (*Ledger, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if len(config.Path) == 0 {
		return nil, fmt.Errorf("Path to database must be defined")
	}
	if len(config.Name) == 0 {
		return nil, fmt.Errorf("Name of database must be defined")
	}
	if err := os.MkdirAll(config.Path, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create ledger directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(config.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	db = db.Session(&gorm.Session{CreateBatchSize: 500})

	l := &Ledger{Config: config, DB: db}
	if err := l.initialize(); err != nil {
		l.Shutdown()
		return nil, err
	}
	return l, nil
}

// DSN joins the database path with its pragmas.
func (lc *LedgerConfig) DSN() string {
	var path strings.Builder
	path.WriteString(filepath.Join(lc.Path, lc.Name))
	for i, prag := range lc.SQLitePragmas {
		if i == 0 {
			path.WriteRune('?')
		} else {
			path.WriteRune('&')
		}
		path.WriteString("_pragma=")
		path.WriteString(prag)
	}
	return path.String()
}

func (l *Ledger) initialize() error {
	if err := l.DB.AutoMigrate(&RunRecord{}, &GenerationRecord{}); err != nil {
		return fmt.Errorf("failed to migrate ledger: %w", err)
	}
	return nil
}

func (l *Ledger) Shutdown() error {
	sqldb, err := l.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to retrieve raw DB: %w", err)
	}
	return sqldb.Close()
}

// SaveRun inserts run together with its generation records.
func (l *Ledger) SaveRun(run *RunRecord) error {
	if run == nil {
		return fmt.Errorf("run cannot be nil")
	}
	if result := l.DB.Create(run); result.Error != nil {
		return fmt.Errorf("failed to save run: %w", result.Error)
	}
	return nil
}

// ListRuns returns the most recent runs first, without generations. A limit
// of 0 returns every run.
func (l *Ledger) ListRuns(limit int) ([]RunRecord, error) {
	var runs []RunRecord
	q := l.DB.Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// LoadRun returns a run with its generation records in order.
func (l *Ledger) LoadRun(id uint) (*RunRecord, error) {
	var run RunRecord
	err := l.DB.Preload("GenerationRecords", func(db *gorm.DB) *gorm.DB {
		return db.Order("generation ASC")
	}).First(&run, id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load run %d: %w", id, err)
	}
	return &run, nil
}

// Recorder returns a Reporter that collects a run and saves it when the run
// finishes.
func (l *Ledger) Recorder(config *Config) *RunRecorder {
	return &RunRecorder{
		ledger: l,
		run: RunRecord{
			Variant:        string(config.Variant),
			BoardSize:      config.BoardSize,
			PopulationSize: config.PopulationSize,
			MaxGenerations: config.Generations,
			CrossoverCut:   config.CrossoverCut,
			MutationRate:   config.MutationRate,
			Selection:      config.Selection,
			Elitism:        config.Elitism,
			Seed:           config.Seed,
		},
	}
}

type RunRecorder struct {
	ledger *Ledger
	run    RunRecord
}

func (rr *RunRecorder) Generation(stats *GenerationStats) error {
	rec := GenerationRecord{
		Generation:     stats.Generation,
		PopulationSize: stats.PopulationSize,
		MeanFitness:    stats.MeanFitness,
		StdDev:         stats.StdDev,
		Diversity:      stats.Diversity,
		Infeasible:     stats.Infeasible,
	}
	best := stats.BestFitness()
	rec.BestFitness, rec.BestInfeasible = best.Value, best.Infeasible
	if stats.Best != nil {
		rec.BestGenotype = stats.Best.Genotype.String()
	}
	rr.run.GenerationRecords = append(rr.run.GenerationRecords, rec)
	return nil
}

func (rr *RunRecorder) Finish(result *Result) error {
	rr.run.Ceiling = result.Ceiling
	rr.run.GenerationsRun = result.Generations
	rr.run.Reason = string(result.Reason)
	rr.run.Solved = result.Solved
	if result.Best != nil {
		rr.run.BestFitness = result.Best.Fitness.Value
		rr.run.BestInfeasible = result.Best.Fitness.Infeasible
		rr.run.BestGenotype = result.Best.Genotype.String()
	}
	return rr.ledger.SaveRun(&rr.run)
}

// Run exposes the record after Finish, including its assigned ID.
func (rr *RunRecorder) Run() *RunRecord {
	return &rr.run
}
