package utils

import "errors"

// ErrMalformedCircuit is returned by ParseBenchFile when the gate-list
// file cannot be turned into a consistent graph.
var ErrMalformedCircuit = errors.New("utils: malformed circuit description")

// ErrMalformedCommand is returned by the command-script parser and by
// ParseFaultString when a line cannot be decoded.
var ErrMalformedCommand = errors.New("utils: malformed command")
