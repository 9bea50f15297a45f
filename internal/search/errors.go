package search

import "fmt"

// Kind is a stable error identifier exposed to callers. Messages are
// human-readable; kinds are what clients switch on.
type Kind string

const (
	KindEmptyQuery            Kind = "empty_query"
	KindInvalidRequest        Kind = "invalid_request"
	KindInvalidFilters        Kind = "invalid_filters"
	KindUnsupportedQueryType  Kind = "unsupported_query_type"
	KindIndexExecutionFailure Kind = "index_execution_failure"
)

// Error is a pipeline failure carrying a stable kind, a user-facing message,
// and (for filter validation) the individual issues found.
type Error struct {
	Kind    Kind
	Message string
	Issues  []string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}
