package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/hdbank-ai/card-advisor/internal/ingest"
)

var (
	corpusSource string
	corpusOut    string
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Manage the QA corpus",
}

var corpusBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generate the QA corpus from scraped card data",
	Long: `Expands scraped card data into question/answer pairs: per-card
descriptions, benefits, conditions, fees and FAQs, plus greeting seeds,
question paraphrase variations and answer embellishment.`,
	RunE: runCorpusBuild,
}

func init() {
	corpusBuildCmd.Flags().StringVarP(&corpusSource, "source", "s", "training_card_data.json", "scraped card data file")
	corpusBuildCmd.Flags().StringVarP(&corpusOut, "out", "o", "training_data.json", "output corpus file")
	corpusCmd.AddCommand(corpusBuildCmd)
	rootCmd.AddCommand(corpusCmd)
}

func runCorpusBuild(cmd *cobra.Command, args []string) error {
	if noColor {
		color.NoColor = true
	}

	totalCards, err := countSourceCards(corpusSource)
	if err != nil {
		return err
	}

	bar := progressbar.NewOptions(totalCards,
		progressbar.OptionSetDescription("Expanding card data"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
	)

	gen := ingest.NewGenerator(nil)
	result, err := gen.Build(corpusSource, corpusOut, func() {
		_ = bar.Add(1)
	})
	if err != nil {
		return err
	}

	color.Green("Generated %d QA pairs from %d cards into %s", result.QAPairs, result.Cards, corpusOut)
	return nil
}

func countSourceCards(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read card data: %w", err)
	}
	var src ingest.SourceFile
	if err := json.Unmarshal(data, &src); err != nil {
		return 0, fmt.Errorf("parse card data: %w", err)
	}
	return len(src.CardsData), nil
}
