package errors

import "errors"

type Category string

const (
	CategoryInvalidInput    Category = "invalid_input"
	CategoryRecordNotFound  Category = "record_not_found"
	CategoryMalformedRecord Category = "malformed_record"
	CategoryIOFailure       Category = "io_failure"
	CategoryInternalFailure Category = "internal_failure"
)

type classifiedError struct {
	category Category
	code     string
	hint     string
	cause    error
}

func (e *classifiedError) Error() string {
	if e.cause == nil {
		return "unknown error"
	}
	return e.cause.Error()
}

func (e *classifiedError) Unwrap() error {
	return e.cause
}

func (e *classifiedError) Category() Category {
	return e.category
}

func (e *classifiedError) Code() string {
	return e.code
}

func (e *classifiedError) Hint() string {
	return e.hint
}

func Wrap(cause error, category Category, code, hint string) error {
	if cause == nil {
		return nil
	}
	return &classifiedError{
		category: category,
		code:     code,
		hint:     hint,
		cause:    cause,
	}
}

func CategoryOf(err error) Category {
	var classified *classifiedError
	if errors.As(err, &classified) {
		return classified.category
	}
	return ""
}

func CodeOf(err error) string {
	var classified *classifiedError
	if errors.As(err, &classified) {
		return classified.code
	}
	return ""
}

func HintOf(err error) string {
	var classified *classifiedError
	if errors.As(err, &classified) {
		return classified.hint
	}
	return ""
}

// IsNotFound reports whether err is classified as a missing required record.
func IsNotFound(err error) bool {
	return CategoryOf(err) == CategoryRecordNotFound
}

// IsMalformed reports whether err is classified as a malformed record.
func IsMalformed(err error) bool {
	return CategoryOf(err) == CategoryMalformedRecord
}
