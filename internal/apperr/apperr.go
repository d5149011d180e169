// Package apperr defines the error kinds the memory core can raise.
package apperr

import "fmt"

// Kind categorizes an Error per the core's error-handling design.
type Kind string

const (
	// OutOfRange is raised when a numeric argument falls outside its declared bound.
	OutOfRange Kind = "OUT_OF_RANGE"
	// MissingRequired is raised when a required string is empty or whitespace-only.
	MissingRequired Kind = "MISSING_REQUIRED"
	// ClosedClient is raised when an operation is attempted after the service was closed.
	ClosedClient Kind = "CLOSED_CLIENT"
	// CompartmentInUse is raised deleting a compartment with resident memories and reassignMemories=false.
	CompartmentInUse Kind = "COMPARTMENT_IN_USE"
	// StoreError wraps anything propagated from the graph store.
	StoreError Kind = "STORE_ERROR"
	// NotFound marks a retrieval by id that matched nothing. GetMemory,
	// GetCompartment and the update/delete paths return an error of this kind;
	// a miss is not reported as a (nil, nil) result.
	NotFound Kind = "NOT_FOUND"
)

// Error is the sole error type raised by the core. It carries a Kind for
// programmatic dispatch (errors.As + Is* predicates below) and wraps the
// underlying cause when there is one.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap allows errors.Is/errors.As to see through to the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewOutOfRange reports a numeric argument outside its declared interval.
func NewOutOfRange(field string, value, min, max float64) error {
	return &Error{Kind: OutOfRange, Message: fmt.Sprintf("%s=%v out of range [%v,%v]", field, value, min, max)}
}

// NewMissingRequired reports an empty required string field.
func NewMissingRequired(field string) error {
	return &Error{Kind: MissingRequired, Message: fmt.Sprintf("%s is required", field)}
}

// NewClosedClient reports an operation attempted on a closed service.
func NewClosedClient() error {
	return &Error{Kind: ClosedClient, Message: "service is closed"}
}

// NewCompartmentInUse reports a blocked delete of a non-empty compartment.
func NewCompartmentInUse(compartmentID string, residents int) error {
	return &Error{Kind: CompartmentInUse, Message: fmt.Sprintf("compartment %s has %d resident memories", compartmentID, residents)}
}

// NewStoreError wraps an error surfaced by the graph store.
func NewStoreError(op string, err error) error {
	return &Error{Kind: StoreError, Message: fmt.Sprintf("store error during %s", op), Err: err}
}

// NewNotFound reports a lookup by id that matched nothing.
func NewNotFound(kind, id string) error {
	return &Error{Kind: NotFound, Message: fmt.Sprintf("%s %s not found", kind, id)}
}

// Is reports whether err is an *Error of the given Kind.
func Is(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}

func IsOutOfRange(err error) bool       { return Is(err, OutOfRange) }
func IsMissingRequired(err error) bool  { return Is(err, MissingRequired) }
func IsClosedClient(err error) bool     { return Is(err, ClosedClient) }
func IsCompartmentInUse(err error) bool { return Is(err, CompartmentInUse) }
func IsStoreError(err error) bool       { return Is(err, StoreError) }
func IsNotFound(err error) bool         { return Is(err, NotFound) }

// Wrap attaches additional context to err, preserving its Kind if it is
// already an *Error.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		return &Error{Kind: e.Kind, Message: fmt.Sprintf("%s: %s", message, e.Message), Err: e.Err}
	}
	return &Error{Kind: StoreError, Message: message, Err: err}
}
