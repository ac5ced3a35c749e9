package main

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var configPath string

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "nqueens",
		Short:         "Genetic algorithm for N-Queens and weighted queen placement",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "TOML config file")

	root.AddCommand(newRunCommand())
	root.AddCommand(newPromptCommand())
	root.AddCommand(newHistoryCommand())
	return root
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Fatalf("nqueens: %v", err)
	}
}
