package apperrors

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrValidation      = errors.New("validation failed")
	ErrAlreadyResolved = errors.New("application already resolved")
	ErrTooManyFiles    = errors.New("too many files in upload")
	ErrUploadFailed    = errors.New("media upload failed")
	ErrNotConfirmed    = errors.New("destructive action not confirmed")
)
