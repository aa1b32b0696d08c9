package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeConstraint ErrorType = "CONSTRAINT_VIOLATION"
	ErrorTypeNotFound   ErrorType = "NOT_FOUND"
	ErrorTypeStorage    ErrorType = "STORAGE_UNAVAILABLE"
	ErrorTypeValidation ErrorType = "VALIDATION_ERROR"
	ErrorTypeInternal   ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidAmount    ErrorCode = "INVALID_AMOUNT"
	ErrCodeInvalidDate      ErrorCode = "INVALID_DATE"
	ErrCodeInvalidStatus    ErrorCode = "INVALID_STATUS"

	ErrCodeDuplicateUsername ErrorCode = "DUPLICATE_USERNAME"
	ErrCodeDuplicateRole     ErrorCode = "DUPLICATE_ROLE"

	ErrCodeRoleNotFound        ErrorCode = "ROLE_NOT_FOUND"
	ErrCodeStaffNotFound       ErrorCode = "STAFF_NOT_FOUND"
	ErrCodePatientNotFound     ErrorCode = "PATIENT_NOT_FOUND"
	ErrCodeAppointmentNotFound ErrorCode = "APPOINTMENT_NOT_FOUND"
	ErrCodeRecordNotFound      ErrorCode = "MEDICAL_RECORD_NOT_FOUND"
	ErrCodeTransactionNotFound ErrorCode = "TRANSACTION_NOT_FOUND"

	ErrCodePatientHasDependents ErrorCode = "PATIENT_HAS_DEPENDENTS"
	ErrCodeStorageUnavailable   ErrorCode = "STORAGE_UNAVAILABLE"
)

// AppError is the structured error every write operation of the data store
// surfaces to its callers. Read operations log and fail soft instead.
type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithCause returns a copy carrying the underlying error, so the shared
// sentinel values stay immutable.
func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func NewConstraintError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConstraint,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeValidationFailed,
		Message:    "Validation failed",
		StatusCode: http.StatusBadRequest,
		Details: ValidationErrors{
			Errors: []ValidationError{
				{Field: field, Message: message, Code: string(code)},
			},
		},
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewStorageError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeStorage,
		Code:       ErrCodeStorageUnavailable,
		Message:    message,
		StatusCode: http.StatusServiceUnavailable,
		Cause:      cause,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

var (
	ErrRoleNotFound        = NewNotFoundError("role not found", ErrCodeRoleNotFound)
	ErrStaffNotFound       = NewNotFoundError("staff member not found", ErrCodeStaffNotFound)
	ErrPatientNotFound     = NewNotFoundError("patient not found", ErrCodePatientNotFound)
	ErrAppointmentNotFound = NewNotFoundError("appointment not found", ErrCodeAppointmentNotFound)
	ErrRecordNotFound      = NewNotFoundError("medical record not found", ErrCodeRecordNotFound)
	ErrTransactionNotFound = NewNotFoundError("financial record not found", ErrCodeTransactionNotFound)

	ErrDuplicateUsername = NewConstraintError("username already exists", ErrCodeDuplicateUsername)
	ErrDuplicateRole     = NewConstraintError("role name already exists", ErrCodeDuplicateRole)

	ErrPatientHasDependents = NewConstraintError(
		"patient has dependent appointments, records or transactions", ErrCodePatientHasDependents)

	ErrStorageUnavailable = NewStorageError("storage engine unavailable", nil)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
