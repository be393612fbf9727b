package employee

import "errors"

var (
	ErrEmployeeNotFound      = errors.New("employee not found")
	ErrEmployeeIDTaken       = errors.New("employee id already allocated")
	ErrEmployeeIDExhausted   = errors.New("could not allocate a unique employee id")
	ErrAadhaarExists         = errors.New("aadhaar number already registered")
	ErrPANExists             = errors.New("PAN number already registered")
	ErrInvalidDocumentType   = errors.New("invalid document type")
	ErrDocumentNotFound      = errors.New("document not found")
	ErrInvalidFileType       = errors.New("invalid file type")
	ErrUnauthorized          = errors.New("unauthorized to access this employee")
	ErrEmployeeAlreadyExited = errors.New("employee is already terminated")
)
