package catalog

import "fmt"

// LoadError reports a catalog document that could not be decoded or failed
// its schema or consistency checks.
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("catalog: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("catalog: %s", e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
