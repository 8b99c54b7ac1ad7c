package lead

import "blackarrow-backend/internal/model"

type ErrorCode string

const (
	ErrorCodeValidation ErrorCode = "validation_error"
	ErrorCodeNotFound   ErrorCode = "not_found"
	ErrorCodeInternal   ErrorCode = "internal_error"
)

type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

type CaptureParams struct {
	Name       string
	Email      string
	Phone      string
	Company    string
	Service    string
	Budget     string
	Message    string
	Region     string
	SourcePage string
}

type ListFilter struct {
	Status model.LeadStatus
	Kind   model.LeadKind
}
