package core

import "errors"

// Sentinel errors returned (wrapped) by the services.
var (
	// ErrNullRequest means a required request object or identifier was nil.
	ErrNullRequest = errors.New("null request")

	// ErrDuplicate means a record with the same unique value already exists.
	ErrDuplicate = errors.New("duplicate record")

	// ErrNotFound means the targeted record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("validation failed")
)

// Upload errors returned by the country import path.
var (
	// ErrNoFile means the upload form carried no file.
	ErrNoFile = errors.New("no file provided")

	// ErrUnsupportedFile means the upload is not an xlsx workbook.
	ErrUnsupportedFile = errors.New("unsupported file")

	// ErrSheetNotFound means the workbook lacks the configured worksheet.
	ErrSheetNotFound = errors.New("worksheet not found")
)
