package services

// ErrorKind classifies a service failure. Controllers map kinds to HTTP
// status codes; services never format transport responses themselves.
type ErrorKind string

const (
	KindValidation         ErrorKind = "validation"
	KindNotFound           ErrorKind = "not_found"
	KindParentNotFound     ErrorKind = "parent_not_found"
	KindConflict           ErrorKind = "conflict"
	KindDuplicateCode      ErrorKind = "duplicate_code"
	KindInUse              ErrorKind = "in_use"
	KindInvalidCredentials ErrorKind = "invalid_credentials"
	KindInternal           ErrorKind = "internal"
)

// ServiceError is a typed failure outcome carrying the offending identifier
// where one exists (a colliding product code, a missing record id).
type ServiceError struct {
	Kind    ErrorKind
	Message string
	// Code is the product code that collided, for KindDuplicateCode.
	Code string
}

func (e *ServiceError) Error() string {
	return e.Message
}

func notFound(message string) *ServiceError {
	return &ServiceError{Kind: KindNotFound, Message: message}
}

func conflict(message string) *ServiceError {
	return &ServiceError{Kind: KindConflict, Message: message}
}

func internal(message string) *ServiceError {
	return &ServiceError{Kind: KindInternal, Message: message}
}

func duplicateCode(code string) *ServiceError {
	return &ServiceError{
		Kind:    KindDuplicateCode,
		Message: "product code already in use: " + code,
		Code:    code,
	}
}
