package report

import "fmt"

// RenderError wraps a failure while writing an output artifact. The
// computed data is unaffected; only the artifact being written is lost.
type RenderError struct {
	Artifact string
	Err      error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Artifact, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
