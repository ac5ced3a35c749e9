package genetic_queens

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/xuri/excelize/v2"
)

const (
	runsSheet        = "Runs"
	generationsSheet = "Generations"
)

var runHeaders = []string{"Run", "Created", "Variant", "Board", "Population", "Max generations",
	"Cut", "Mutation %", "Selection", "Elitism", "Seed", "Ceiling", "Generations run",
	"Reason", "Solved", "Best fitness", "Best genotype"}

var generationHeaders = []string{"Run", "Generation", "Population", "Mean fitness", "Std dev",
	"Diversity", "Infeasible", "Best fitness", "Best genotype"}

func runValues(r *RunRecord) []interface{} {
	return []interface{}{
		r.ID,
		r.CreatedAt.Format("2006-01-02 15:04:05"),
		r.Variant,
		r.BoardSize,
		r.PopulationSize,
		r.MaxGenerations,
		r.CrossoverCut,
		r.MutationRate,
		r.Selection,
		r.Elitism,
		r.Seed,
		r.Ceiling,
		r.GenerationsRun,
		r.Reason,
		r.Solved,
		formatFitness(r.BestFitness, r.BestInfeasible),
		r.BestGenotype,
	}
}

// ExportWorkbook writes runs to an xlsx file: one row per run on the Runs
// sheet and, for runs loaded with their generations, one row per generation
// on the Generations sheet.
func ExportWorkbook(path string, runs []RunRecord) error {
	fx := excelize.NewFile()
	defer fx.Close()

	if err := fx.SetSheetName(fx.GetSheetName(0), runsSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := fx.NewSheet(generationsSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	headStyle, err := fx.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := writeHeader(fx, runsSheet, runHeaders, headStyle); err != nil {
		return err
	}
	if err := writeHeader(fx, generationsSheet, generationHeaders, headStyle); err != nil {
		return err
	}

	genRow := 2
	for i := range runs {
		r := &runs[i]
		if err := writeRow(fx, runsSheet, i+2, runValues(r)); err != nil {
			return err
		}
		for _, g := range r.GenerationRecords {
			values := []interface{}{
				r.ID,
				g.Generation,
				g.PopulationSize,
				g.MeanFitness,
				g.StdDev,
				g.Diversity,
				g.Infeasible,
				formatFitness(g.BestFitness, g.BestInfeasible),
				g.BestGenotype,
			}
			if err := writeRow(fx, generationsSheet, genRow, values); err != nil {
				return err
			}
			genRow++
		}
	}

	if err := fx.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func writeHeader(fx *excelize.File, sheet string, headers []string, style int) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := fx.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		if err := fx.SetCellStyle(sheet, cell, cell, style); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(fx *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := fx.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}

// RenderRuns formats runs as a text table for the terminal.
func RenderRuns(runs []RunRecord) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"RUN", "CREATED", "VARIANT", "N", "POP", "SELECTION", "GENS", "REASON", "BEST", "GENOTYPE"})
	solved := 0
	for _, r := range runs {
		if r.Solved {
			solved++
		}
		t.AppendRow(table.Row{
			r.ID,
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.Variant,
			r.BoardSize,
			r.PopulationSize,
			r.Selection,
			fmt.Sprintf("%d/%d", r.GenerationsRun, r.MaxGenerations),
			r.Reason,
			fmt.Sprintf("%s/%d", formatFitness(r.BestFitness, r.BestInfeasible), r.Ceiling),
			r.BestGenotype,
		})
	}
	t.AppendFooter(table.Row{"", "", "", "", "", "", "", "SOLVED", fmt.Sprintf("%d/%d", solved, len(runs))})
	return t.Render()
}

// RenderGenerations formats the generation history of one run.
func RenderGenerations(run *RunRecord) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.SetTitle(fmt.Sprintf("Run %d (%s, N=%d)", run.ID, run.Variant, run.BoardSize))
	t.AppendHeader(table.Row{"GEN", "POP", "MEAN", "STDDEV", "DIVERSITY", "INFEASIBLE", "BEST", "GENOTYPE"})
	for _, g := range run.GenerationRecords {
		t.AppendRow(table.Row{
			g.Generation,
			g.PopulationSize,
			fmt.Sprintf("%.2f", g.MeanFitness),
			fmt.Sprintf("%.2f", g.StdDev),
			fmt.Sprintf("%.3f", g.Diversity),
			g.Infeasible,
			formatFitness(g.BestFitness, g.BestInfeasible),
			g.BestGenotype,
		})
	}
	return t.Render()
}
