// Package report serializes the collapser's forest and the implication
// engine's state into the plain-UTF-8 report formats of spec §6.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fyerfyer/rothforest/pkg/circuit"
)

// WriteFClass writes the .fclass report: each root class, then
// recursively its dominance subtree, each node's equivalent faults
// followed by its dominated children, in an indented/bracketed form.
func WriteFClass(w io.Writer, roots []*circuit.FaultClass) error {
	for _, root := range roots {
		if err := writeClassNode(w, root, 0); err != nil {
			return err
		}
	}
	return nil
}

func writeClassNode(w io.Writer, fc *circuit.FaultClass, depth int) error {
	indent := strings.Repeat("  ", depth)
	var faults []string
	for _, f := range fc.Equivalent {
		faults = append(faults, f.String())
	}
	if _, err := fmt.Fprintf(w, "%s[%s]\n", indent, strings.Join(faults, ", ")); err != nil {
		return err
	}
	for _, child := range fc.Dominated {
		if err := writeClassNode(w, child, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func writeNumberedFaultList(w io.Writer, classes []*circuit.FaultClass) error {
	for i, fc := range classes {
		if _, err := fmt.Fprintf(w, "%5d: %s\n", i+1, fc.Representative()); err != nil {
			return err
		}
	}
	return nil
}

// WriteOrder writes the .order report: one numbered line per class in
// the collapser's pre-order linearization.
func WriteOrder(w io.Writer, order []*circuit.FaultClass) error {
	return writeNumberedFaultList(w, order)
}

// WriteNotDominating writes the .not_dominating (or, with the
// checkpoint listing, .not_dominating_checkpoint) report.
func WriteNotDominating(w io.Writer, classes []*circuit.FaultClass) error {
	return writeNumberedFaultList(w, classes)
}

// WriteAnalysis writes the .analysis report: the set difference between
// the plain and checkpoint not-dominating listings (by representative
// fault), followed by an explanatory trailer line. Grounded in
// collapser.py's main(), which emits this same difference with a
// one-sentence explanation of why the checkpoint set is smaller.
func WriteAnalysis(w io.Writer, plain, checkpoint []*circuit.FaultClass) error {
	inCheckpoint := make(map[circuit.Fault]bool, len(checkpoint))
	for _, fc := range checkpoint {
		inCheckpoint[fc.Representative()] = true
	}

	var diff []*circuit.FaultClass
	for _, fc := range plain {
		if !inCheckpoint[fc.Representative()] {
			diff = append(diff, fc)
		}
	}

	if err := writeNumberedFaultList(w, diff); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w,
		"\nThese faults are in the plain not-dominating listing but not in the "+
			"checkpoint listing because each sits on an internal, non-branch line "+
			"whose dominance walk continued past it to a branch or primary-input "+
			"fault instead of stopping here.\n")
	return err
}

func writeFrontierSection(w io.Writer, header string, gates []*circuit.Gate) error {
	if _, err := fmt.Fprintf(w, "%s\n", header); err != nil {
		return err
	}
	for _, g := range gates {
		if _, err := fmt.Fprintf(w, "%s\n", g.Name); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "$\n\n")
	return err
}

// WriteJFrontier writes the J-Frontier section.
func WriteJFrontier(w io.Writer, gates []*circuit.Gate) error {
	return writeFrontierSection(w, "J-Frontier", gates)
}

// WriteDFrontier writes the D-Frontier section.
func WriteDFrontier(w io.Writer, gates []*circuit.Gate) error {
	return writeFrontierSection(w, "D-Frontier", gates)
}

// WriteXPath writes the X-PATH section.
func WriteXPath(w io.Writer, gates []*circuit.Gate) error {
	return writeFrontierSection(w, "X-PATH", gates)
}

// WriteDisplay writes a full circuit-state dump, for the Display command.
func WriteDisplay(w io.Writer, c *circuit.Circuit) error {
	_, err := io.WriteString(w, c.Dump())
	return err
}

// ResultLog accumulates one entry per processed command, for the
// .result report produced by the imply CLI. An entry is a single line,
// except for frontier, X-path and Display commands, whose entry carries
// the multi-line section after the command name.
type ResultLog struct {
	lines []string
}

// Command appends a processed command's summary line.
func (r *ResultLog) Command(index int, description string) {
	r.lines = append(r.lines, fmt.Sprintf("%3d: %s", index, description))
}

// Conflict appends the final abort line for a conflict at command index.
func (r *ResultLog) Conflict(index int) {
	r.lines = append(r.lines, fmt.Sprintf("%3d: CONFLICT -- aborting command stream", index))
}

// Write emits the accumulated log to w.
func (r *ResultLog) Write(w io.Writer) error {
	for _, line := range r.lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
