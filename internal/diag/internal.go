package diag

import "fmt"

// InternalError signals a defect in the front end itself, such as a
// production invoked in a state its caller promised it would never see.
// It is never produced for bad input; bad input yields Diagnostics.
type InternalError struct {
	Message string
	Span    Span
	// Stack holds the goroutine stack captured where the error was recovered.
	Stack []byte
}

func (e *InternalError) Error() string {
	if e.Span.IsValid() {
		return fmt.Sprintf("internal parser error at %s: %s", e.Span, e.Message)
	}
	return "internal parser error: " + e.Message
}

// Bug panics with an InternalError. Callers recover it at the API boundary.
func Bug(span Span, format string, args ...any) {
	panic(&InternalError{
		Message: fmt.Sprintf(format, args...),
		Span:    span,
	})
}
