// Package errs provides the error taxonomy of the production orchestrator.
//
// Every error type pairs a sentinel (ErrValueIsRequired, ErrStateConflict, ...) with a struct that
// carries the failing parameter, product, material or stage. Structs unwrap to their sentinel, so
// callers classify with errors.Is and inspect details with errors.As:
//   - validation: ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError,
//     QuantityExceededError, IncompleteAssignmentError
//   - ObjectNotFoundError
//   - StateConflictError and InvalidTransitionError
//   - InsufficientStockError
//   - NoActiveJobError
package errs
