package content

import "blackarrow-backend/internal/model"

type ErrorCode string

const (
	ErrorCodeValidation ErrorCode = "validation_error"
	ErrorCodeNotFound   ErrorCode = "not_found"
	ErrorCodeConflict   ErrorCode = "conflict"
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

// PostInput is used for create and patch; nil fields are left unchanged on patch.
type PostInput struct {
	Slug       *string
	Title      *string
	Excerpt    *string
	Body       *string
	CoverImage *string
	Tags       []string
	Region     *string
	Published  *bool
}

type RenderedPost struct {
	Post model.PostItem
	HTML string
}

type ProjectInput struct {
	Title    *string
	Client   *string
	Category *string
	Summary  *string
	ImageURL *string
	Link     *string
	Tags     []string
	Featured *bool
	Order    *int
}
