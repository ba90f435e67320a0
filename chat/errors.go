package chat

import "fmt"

// Capability operations reported by CapabilityError.
const (
	OpEmbed    = "embed"
	OpSearch   = "search"
	OpGenerate = "generate"
)

// CapabilityError reports a failed call to an external capability. Front-end
// adapters inspect it to choose the user-visible message; the error itself
// must never reach a user.
type CapabilityError struct {
	Op  string
	Err error
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *CapabilityError) Unwrap() error {
	return e.Err
}
