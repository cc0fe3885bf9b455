package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/quiz-arcade/internal/config"
)

var flagCatalogFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the quiz catalog into the database",
	Long: `Load categories, quizzes, questions and options from a catalog YAML,
or the built-in catalog when --file is not given. Seeding is idempotent:
existing categories and quizzes keep their ids and their questions are
replaced.

Examples:
  quizhub seed
  quizhub seed --file ./catalog.yaml`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&flagCatalogFile, "file", "", "Catalog YAML (default: built-in catalog)")
}

func runSeed(cmd *cobra.Command, _ []string) error {
	_, logger, store, err := setup()
	if err != nil {
		return err
	}
	defer store.Close()

	catalog, err := config.LoadCatalog(flagCatalogFile)
	if err != nil {
		return err
	}
	res, err := store.SeedCatalog(cmd.Context(), catalog)
	if err != nil {
		return err
	}
	logger.Info("catalog seeded", "categories", res.Categories, "quizzes", res.Quizzes, "questions", res.Questions)
	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d categories, %d quizzes, %d questions.\n",
		res.Categories, res.Quizzes, res.Questions)
	return nil
}
