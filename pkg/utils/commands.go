package utils

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fyerfyer/rothforest/pkg/circuit"
)

// CommandKind names one of the six command-script verbs of §6.
type CommandKind int

const (
	FaultCmd CommandKind = iota
	ImplyCmd
	JfrontCmd
	DfrontCmd
	XpathCmd
	DisplayCmd
)

func (k CommandKind) String() string {
	switch k {
	case FaultCmd:
		return "Fault"
	case ImplyCmd:
		return "Imply"
	case JfrontCmd:
		return "Jfront"
	case DfrontCmd:
		return "Dfront"
	case XpathCmd:
		return "Xpath"
	case DisplayCmd:
		return "Display"
	default:
		return "Unknown"
	}
}

// Command is one line of the implication driver's command stream.
type Command struct {
	Kind  CommandKind
	Gate  string
	Value circuit.Value
}

// ParseCommandFile reads the line-oriented command script consumed by
// the implication driver. This is an external, shallow collaborator
// (§1): it decodes syntax only, carrying none of the engine's logic.
func ParseCommandFile(filename string) ([]Command, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCommand, err)
	}
	defer file.Close()

	var commands []Command
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cmd, err := parseCommandLine(line)
		if err != nil {
			return nil, err
		}
		commands = append(commands, cmd)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCommand, err)
	}
	return commands, nil
}

func parseCommandLine(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("%w: empty command line", ErrMalformedCommand)
	}

	switch strings.ToLower(fields[0]) {
	case "fault":
		if len(fields) != 3 {
			return Command{}, fmt.Errorf("%w: Fault wants gate and value, got %q", ErrMalformedCommand, line)
		}
		v, err := parseValueToken(fields[2])
		if err != nil {
			return Command{}, err
		}
		if v != circuit.Zero && v != circuit.One {
			return Command{}, fmt.Errorf("%w: Fault polarity must be 0 or 1, got %q", ErrMalformedCommand, fields[2])
		}
		return Command{Kind: FaultCmd, Gate: fields[1], Value: v}, nil
	case "imply":
		if len(fields) != 3 {
			return Command{}, fmt.Errorf("%w: Imply wants gate and value, got %q", ErrMalformedCommand, line)
		}
		v, err := parseValueToken(fields[2])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: ImplyCmd, Gate: fields[1], Value: v}, nil
	case "jfront":
		return Command{Kind: JfrontCmd}, nil
	case "dfront":
		return Command{Kind: DfrontCmd}, nil
	case "xpath":
		return Command{Kind: XpathCmd}, nil
	case "display":
		return Command{Kind: DisplayCmd}, nil
	default:
		return Command{}, fmt.Errorf("%w: unknown command %q", ErrMalformedCommand, fields[0])
	}
}

func parseValueToken(tok string) (circuit.Value, error) {
	switch tok {
	case "0":
		return circuit.Zero, nil
	case "1":
		return circuit.One, nil
	case "X", "x":
		return circuit.X, nil
	case "D":
		return circuit.D, nil
	case "D'", "Dnot", "d'":
		return circuit.Dnot, nil
	default:
		return circuit.X, fmt.Errorf("%w: invalid value %q", ErrMalformedCommand, tok)
	}
}
