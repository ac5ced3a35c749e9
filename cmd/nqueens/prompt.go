package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	gq "nickandperla.net/genetic_queens"
)

func newPromptCommand() *cobra.Command {
	var weighted, readGrid bool
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Ask for the run parameters interactively, then run with roulette and elitism 1",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := gq.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if weighted {
				cfg.Variant = gq.WeightedVariant
			}
			cfg.Selection = string(gq.Roulette)
			cfg.Elitism = gq.DefaultElitism
			if err := promptConfig(cmd.InOrStdin(), cmd.OutOrStdout(), cfg, weighted || readGrid); err != nil {
				return err
			}
			return execute(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&weighted, "weighted", false, "Use the weighted-assignment variant")
	cmd.Flags().BoolVar(&readGrid, "read-grid", false, "Read a cost grid for the collision ceiling")
	return cmd
}

// promptConfig asks for board size, population size, generations, crossover
// cut and mutation rate, then every grid cell when readGrid is set.
func promptConfig(in io.Reader, out io.Writer, cfg *gq.Config, readGrid bool) error {
	scanner := bufio.NewScanner(in)
	scanner.Split(bufio.ScanWords)

	ask := func(question string) (int, error) {
		fmt.Fprint(out, question)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, err
			}
			return 0, io.ErrUnexpectedEOF
		}
		v, err := strconv.Atoi(scanner.Text())
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not an integer", gq.ErrInvalidConfig, scanner.Text())
		}
		return v, nil
	}

	fields := []struct {
		question string
		target   *int
	}{
		{"Board size: ", &cfg.BoardSize},
		{"Population size: ", &cfg.PopulationSize},
		{"Number of generations: ", &cfg.Generations},
		{"Crossover cut: ", &cfg.CrossoverCut},
		{"Mutation rate (0-100): ", &cfg.MutationRate},
	}
	for _, f := range fields {
		v, err := ask(f.question)
		if err != nil {
			return err
		}
		*f.target = v
	}

	if !readGrid {
		return nil
	}
	if cfg.BoardSize <= 0 {
		return fmt.Errorf("%w: board size must be > 0 (got %d)", gq.ErrInvalidConfig, cfg.BoardSize)
	}
	grid := make(gq.CostGrid, cfg.BoardSize)
	for i := range grid {
		grid[i] = make([]int, cfg.BoardSize)
		for j := range grid[i] {
			v, err := ask(fmt.Sprintf("Grid cell [%d][%d]: ", i, j))
			if err != nil {
				return err
			}
			grid[i][j] = v
		}
	}
	cfg.Grid = grid
	return nil
}
