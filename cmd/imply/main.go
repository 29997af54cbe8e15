// Command imply drives the implication-and-check engine over a parsed
// circuit from a command script, writing a single .result report.
package main

import (
	"fmt"
	"os"

	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/fyerfyer/rothforest/pkg/algorithm"
	"github.com/fyerfyer/rothforest/pkg/circuit"
	"github.com/fyerfyer/rothforest/pkg/report"
	"github.com/fyerfyer/rothforest/pkg/utils"
)

var (
	uniqueDDrive bool
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "imply <circuit-file> <command-file> <out-basename>",
	Short: "Run a command script through the implication-and-check engine",
	Args:  cobra.ExactArgs(3),
	RunE:  runImply,
}

func init() {
	rootCmd.Flags().BoolVarP(&uniqueDDrive, "unique", "u", false, "enable unique D-drive")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "trace-level logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runImply(cmd *cobra.Command, args []string) error {
	circuitFile, commandFile, outBase := args[0], args[1], args[2]

	logger := newLogger(verbose)

	logger.Info("parsing circuit from %s", circuitFile)
	c, err := utils.ParseBenchFile(circuitFile)
	if err != nil {
		return fmt.Errorf("imply: %w", err)
	}
	logger.Circuit("%s: %d gates, %d primary inputs, %d primary outputs",
		c.Name, len(c.Gates), len(c.InputOrder), len(c.Outputs))

	commands, err := utils.ParseCommandFile(commandFile)
	if err != nil {
		return fmt.Errorf("imply: %w", err)
	}

	engine := algorithm.NewEngine(c, logger)
	engine.UniqueDDrive = uniqueDDrive

	resultFile, err := os.Create(outBase + ".result")
	if err != nil {
		return fmt.Errorf("imply: %w", err)
	}
	defer resultFile.Close()

	log := &report.ResultLog{}
	for i, command := range commands {
		if err := runCommand(c, engine, log, i, command); err != nil {
			log.Conflict(i)
			log.Write(resultFile)
			fmt.Fprintf(os.Stderr, "imply: conflict at command %d: %v\n", i, err)
			os.Exit(1)
		}
	}

	return log.Write(resultFile)
}

func runCommand(c *circuit.Circuit, engine *algorithm.Engine, log *report.ResultLog, index int, command utils.Command) error {
	switch command.Kind {
	case utils.FaultCmd:
		polarity := 0
		if command.Value == circuit.One {
			polarity = 1
		}
		f := circuit.NewStemFault(polarity, command.Gate)
		engine.AddFault(f)
		log.Command(index, fmt.Sprintf("Fault %s -> active fault list", f))
	case utils.ImplyCmd:
		ok := engine.ImplyAndCheck(command.Gate, command.Value, algorithm.Both)
		if !ok {
			return fmt.Errorf("%w: imply %s=%s", algorithm.ErrConflict, command.Gate, command.Value)
		}
		log.Command(index, fmt.Sprintf("Imply %s=%s", command.Gate, command.Value))
	case utils.JfrontCmd:
		var buf strings.Builder
		report.WriteJFrontier(&buf, algorithm.JFrontier(c))
		log.Command(index, "Jfront\n"+buf.String())
	case utils.DfrontCmd:
		var buf strings.Builder
		report.WriteDFrontier(&buf, algorithm.DFrontier(c))
		log.Command(index, "Dfront\n"+buf.String())
	case utils.XpathCmd:
		var buf strings.Builder
		report.WriteXPath(&buf, algorithm.XPath(c))
		log.Command(index, "Xpath\n"+buf.String())
	case utils.DisplayCmd:
		var buf strings.Builder
		report.WriteDisplay(&buf, c)
		log.Command(index, "Display\n"+buf.String())
	}
	return nil
}

func newLogger(verbose bool) *utils.Logger {
	if verbose {
		return utils.NewLogger(zerolog.TraceLevel)
	}
	return utils.NewLogger(zerolog.InfoLevel)
}
