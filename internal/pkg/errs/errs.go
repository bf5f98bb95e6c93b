package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Every error type in this package unwraps to exactly one of them,
// so callers can classify failures with errors.Is.
var (
	ErrObjectNotFound       = errors.New("object not found")
	ErrValueIsInvalid       = errors.New("value is invalid")
	ErrValueIsOutOfRange    = errors.New("value is out of range")
	ErrValueIsRequired      = errors.New("value is required")
	ErrStateConflict        = errors.New("state conflict")
	ErrInvalidTransition    = errors.New("invalid transition")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrNoActiveJob          = errors.New("no active job")
	ErrQuantityExceeded     = errors.New("quantity exceeded")
	ErrIncompleteAssignment = errors.New("incomplete assignment")
)

// sanitize flattens multi-line values so they render on a single log line.
func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}

// ObjectNotFoundError reports a referenced entity that does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports malformed input.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside of [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError reports a missing mandatory value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// StateConflictError reports an operation that is illegal for the current state of an entity,
// e.g. claiming a machine that is not free or cancelling a completed job.
type StateConflictError struct {
	Entity string
	Reason string
}

func NewStateConflictError(entity, reason string) *StateConflictError {
	return &StateConflictError{Entity: entity, Reason: reason}
}

func (e *StateConflictError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrStateConflict, e.Entity, e.Reason)
}

func (e *StateConflictError) Unwrap() error {
	return ErrStateConflict
}

// InvalidTransitionError is the StateConflictError raised by status machines when the requested
// status is not the single legal successor of the current one.
type InvalidTransitionError struct {
	Entity   string
	From     string
	To       string
	Expected string
}

func NewInvalidTransitionError(entity, from, to, expected string) *InvalidTransitionError {
	return &InvalidTransitionError{Entity: entity, From: from, To: to, Expected: expected}
}

func (e *InvalidTransitionError) Error() string {
	if e.Expected == "" {
		return fmt.Sprintf("%s: %s: %s cannot move to %s", ErrStateConflict, e.Entity, e.From, e.To)
	}
	return fmt.Sprintf("%s: %s: invalid transition %s -> %s, expected next status is %s",
		ErrStateConflict, e.Entity, e.From, e.To, e.Expected)
}

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrStateConflict
}

// InsufficientStockError reports a raw material whose stock cannot cover a requirement.
type InsufficientStockError struct {
	MaterialID any
	Required   float64
	Available  float64
}

func NewInsufficientStockError(materialID any, required, available float64) *InsufficientStockError {
	return &InsufficientStockError{MaterialID: materialID, Required: required, Available: available}
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: material %s requires %.3f, available %.3f",
		ErrInsufficientStock, e.MaterialID, e.Required, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// NoActiveJobError reports a production report for a machine that is not running any job.
type NoActiveJobError struct {
	MachineID any
}

func NewNoActiveJobError(machineID any) *NoActiveJobError {
	return &NoActiveJobError{MachineID: machineID}
}

func (e *NoActiveJobError) Error() string {
	return fmt.Sprintf("%s: machine %s is not running a job", ErrNoActiveJob, e.MachineID)
}

func (e *NoActiveJobError) Unwrap() error {
	return ErrNoActiveJob
}

// QuantityExceededError reports a requested quantity above what is still available for a product.
type QuantityExceededError struct {
	ProductID any
	Requested int
	Available int
}

func NewQuantityExceededError(productID any, requested, available int) *QuantityExceededError {
	return &QuantityExceededError{ProductID: productID, Requested: requested, Available: available}
}

func (e *QuantityExceededError) Error() string {
	return fmt.Sprintf("%s: product %s requested %d, available %d",
		ErrQuantityExceeded, e.ProductID, e.Requested, e.Available)
}

func (e *QuantityExceededError) Unwrap() error {
	return ErrQuantityExceeded
}

// IncompleteAssignmentError reports machine heads that have no product assigned.
type IncompleteAssignmentError struct {
	Heads []int
}

func NewIncompleteAssignmentError(heads []int) *IncompleteAssignmentError {
	return &IncompleteAssignmentError{Heads: heads}
}

func (e *IncompleteAssignmentError) Error() string {
	return fmt.Sprintf("%s: heads %v have no product assigned", ErrIncompleteAssignment, e.Heads)
}

func (e *IncompleteAssignmentError) Unwrap() error {
	return ErrIncompleteAssignment
}

// IsValidation reports whether err belongs to the validation family: malformed or missing input
// that must not be retried unchanged.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValueIsInvalid) ||
		errors.Is(err, ErrValueIsRequired) ||
		errors.Is(err, ErrValueIsOutOfRange) ||
		errors.Is(err, ErrQuantityExceeded) ||
		errors.Is(err, ErrIncompleteAssignment)
}
