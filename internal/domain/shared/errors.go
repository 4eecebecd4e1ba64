package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target is a DomainError carrying the same code, so
// errors.Is matches wrapped domain errors against the sentinels below.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a VALIDATION_FAILED error with a caller-facing message
func NewValidationError(message string) *DomainError {
	return NewDomainError("VALIDATION_FAILED", message)
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrValidation          = NewDomainError("VALIDATION_FAILED", "Validation failed")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInsufficientStock   = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
	ErrReferentialConflict = NewDomainError("REFERENTIAL_CONFLICT", "Record is referenced by other records")
	ErrMalformedRecord     = NewDomainError("MALFORMED_RECORD", "Stored record field failed to parse")
	ErrPersistenceFailure  = NewDomainError("PERSISTENCE_FAILURE", "Durable snapshot write failed")
)
