package routing

import "fmt"

// EngineError surfaces a routing engine failure: unreachable endpoint,
// rejected inputs, or a malformed response. Any EngineError is fatal to the
// run; there is no partial-result fallback.
type EngineError struct {
	Stage string // "request", "status", "engine", "decode"
	Err   error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("routing engine %s error: %v", e.Stage, e.Err)
}

func (e *EngineError) Unwrap() error { return e.Err }
