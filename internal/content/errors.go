package content

import (
	"fmt"
	"strings"
)

// ValidationError reports why a content pack was rejected.
type ValidationError struct {
	Source   string
	Problems []string
	Err      error
}

func (e *ValidationError) Error() string {
	switch {
	case len(e.Problems) > 0:
		return fmt.Sprintf("invalid content pack %s: %s", e.Source, strings.Join(e.Problems, "; "))
	case e.Err != nil:
		return fmt.Sprintf("invalid content pack %s: %v", e.Source, e.Err)
	default:
		return fmt.Sprintf("invalid content pack %s", e.Source)
	}
}

func (e *ValidationError) Unwrap() error { return e.Err }
