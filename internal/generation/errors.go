package generation

import "fmt"

// StructuralError reports a completion that came back but could not be
// parsed into a blueprint. It carries the raw model output so callers can
// log or surface it; it is never retried, unlike transport errors.
type StructuralError struct {
	Raw string
	Err error
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("blueprint response is not valid JSON: %v", e.Err)
}

func (e *StructuralError) Unwrap() error {
	return e.Err
}
