package genetic_queens

import (
	"errors"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	log "github.com/sirupsen/logrus"
)

// Reporter receives one call per generation and one when the run ends.
type Reporter interface {
	Generation(stats *GenerationStats) error
	Finish(result *Result) error
}

// Reporters fans out to every member and joins their errors.
type Reporters []Reporter

func (rs Reporters) Generation(stats *GenerationStats) error {
	var errs []error
	for _, r := range rs {
		if err := r.Generation(stats); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (rs Reporters) Finish(result *Result) error {
	var errs []error
	for _, r := range rs {
		if err := r.Finish(result); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogReporter writes generation summaries and the winning board through
// logrus. Boards of intermediate generations go out at debug level.
type LogReporter struct {
	Logger log.FieldLogger
}

func NewLogReporter(logger log.FieldLogger) *LogReporter {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &LogReporter{Logger: logger}
}

func (lr *LogReporter) Generation(stats *GenerationStats) error {
	entry := lr.Logger.WithFields(log.Fields{
		"generation":   stats.Generation,
		"population":   stats.PopulationSize,
		"mean_fitness": stats.MeanFitness,
		"stddev":       stats.StdDev,
		"diversity":    stats.Diversity,
		"infeasible":   stats.Infeasible,
		"best_fitness": stats.BestFitness().String(),
	})
	if stats.Best != nil {
		entry = entry.WithField("best", stats.Best.Genotype.String())
	}
	entry.Info("Generation")
	if stats.Best != nil {
		lr.Logger.Debugf("Best individual:\n%s", RenderBoard(stats.Best))
	}
	return nil
}

func (lr *LogReporter) Finish(result *Result) error {
	entry := lr.Logger.WithFields(log.Fields{
		"generations": result.Generations,
		"reason":      result.Reason,
		"solved":      result.Solved,
		"ceiling":     result.Ceiling,
	})
	if result.Best == nil {
		entry.Warn("Run finished without a solution")
		return nil
	}
	entry.WithFields(log.Fields{
		"best":         result.Best.Genotype.String(),
		"best_fitness": result.Best.Fitness.String(),
	}).Info("Winning solution")
	lr.Logger.Infof("Winning solution:\n%s", RenderBoard(result.Best))
	return nil
}

// RenderBoard draws the genotype, the phenotype board and the fitness of
// ind as a table.
func RenderBoard(ind *Individual) string {
	board := ind.Phenotype()
	n := len(ind.Genotype)

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.SetTitle("Genotype: " + ind.Genotype.String())

	header := table.Row{""}
	for c := 0; c < n; c++ {
		header = append(header, c)
	}
	t.AppendHeader(header)

	for r, line := range board {
		row := table.Row{r}
		for _, cell := range line {
			row = append(row, cell)
		}
		t.AppendRow(row)
	}

	footer := table.Row{"Fitness", ind.Fitness.String()}
	t.AppendFooter(footer)

	colConfigs := make([]table.ColumnConfig, 0, n+1)
	for c := 1; c <= n+1; c++ {
		colConfigs = append(colConfigs, table.ColumnConfig{Number: c, Align: text.AlignCenter})
	}
	t.SetColumnConfigs(colConfigs)
	return t.Render()
}

func formatFitness(value int, infeasible bool) string {
	if infeasible {
		return InfeasibleFitness.String()
	}
	return strconv.Itoa(value)
}
