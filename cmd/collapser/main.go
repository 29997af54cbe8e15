// Command collapser builds the stuck-at fault equivalence/dominance
// forest for an ISCAS-bench circuit and writes the collapsed reports.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/fyerfyer/rothforest/pkg/algorithm"
	"github.com/fyerfyer/rothforest/pkg/report"
	"github.com/fyerfyer/rothforest/pkg/utils"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "collapser <circuit-file> <out-basename>",
	Short: "Collapse single stuck-at faults into an equivalence/dominance forest",
	Args:  cobra.ExactArgs(2),
	RunE:  runCollapser,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "trace-level logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCollapser(cmd *cobra.Command, args []string) error {
	circuitFile, outBase := args[0], args[1]

	logger := newLogger(verbose)

	logger.Info("parsing circuit from %s", circuitFile)
	c, err := utils.ParseBenchFile(circuitFile)
	if err != nil {
		return fmt.Errorf("collapser: %w", err)
	}
	logger.Circuit("%s: %d gates, %d primary inputs, %d primary outputs",
		c.Name, len(c.Gates), len(c.InputOrder), len(c.Outputs))

	col := algorithm.NewCollapser(c, logger)
	roots := col.Collapse()
	order := algorithm.Order(roots)
	notDominating := algorithm.NotDominating(roots)
	notDominatingCheckpoint := algorithm.NotDominatingCheckpoint(roots, c)

	if err := writeReport(outBase+".fclass", func(w *os.File) error {
		return report.WriteFClass(w, roots)
	}); err != nil {
		return err
	}
	if err := writeReport(outBase+".order", func(w *os.File) error {
		return report.WriteOrder(w, order)
	}); err != nil {
		return err
	}
	if err := writeReport(outBase+".not_dominating", func(w *os.File) error {
		return report.WriteNotDominating(w, notDominating)
	}); err != nil {
		return err
	}
	if err := writeReport(outBase+".not_dominating_checkpoint", func(w *os.File) error {
		return report.WriteNotDominating(w, notDominatingCheckpoint)
	}); err != nil {
		return err
	}
	if err := writeReport(outBase+".analysis", func(w *os.File) error {
		return report.WriteAnalysis(w, notDominating, notDominatingCheckpoint)
	}); err != nil {
		return err
	}

	logger.Info("collapse complete: %d root classes, %d ordered entries", len(roots), len(order))
	return nil
}

func writeReport(path string, fn func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("collapser: %w", err)
	}
	defer f.Close()
	return fn(f)
}

func newLogger(verbose bool) *utils.Logger {
	if verbose {
		return utils.NewLogger(zerolog.TraceLevel)
	}
	return utils.NewLogger(zerolog.InfoLevel)
}
