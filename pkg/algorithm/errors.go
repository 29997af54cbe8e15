package algorithm

import "errors"

// ErrConflict is returned when an implication contradicts the circuit's
// current state. The command driver treats it as final: the whole
// command stream aborts, no partial rollback is attempted.
var ErrConflict = errors.New("algorithm: implication conflict")
