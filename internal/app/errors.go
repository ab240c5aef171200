package app

import (
	"fmt"
	"net/http"

	"github.com/molpadia/molpaclip/internal/envelope"
	"github.com/molpadia/molpaclip/internal/validation"
)

type ErrorKind int

const (
	MalformedRequest ErrorKind = iota + 1
	MissingAuthToken
	InvalidOrExpiredToken
	DecodeFailure
	EmptyRequiredField
	FieldValidationFailure
	EmptyResultSet
	IdentityNotFound
	PersistenceFailure
	Timeout
	RouteNotFound
	MethodNotAllowed
)

var kindNames = map[ErrorKind]string{
	MalformedRequest:       "malformed_request",
	MissingAuthToken:       "missing_auth_token",
	InvalidOrExpiredToken:  "invalid_or_expired_token",
	DecodeFailure:          "decode_failure",
	EmptyRequiredField:     "empty_required_field",
	FieldValidationFailure: "field_validation_failure",
	EmptyResultSet:         "empty_result_set",
	IdentityNotFound:       "identity_not_found",
	PersistenceFailure:     "persistence_failure",
	Timeout:                "timeout",
	RouteNotFound:          "route_not_found",
	MethodNotAllowed:       "method_not_allowed",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

const (
	msgMalformedRequest = "API cannot receive request parameters"
	msgMissingToken     = "Forbidden access. API cannot receive authorization token"
	msgCreateFailed     = "Error. Something wrong in video create. Try again."
	msgListFailed       = "Error. Something wrong in video list. Try again."
	msgEmptyField       = "Any field from create video form is empty."
	msgEmptyCollection  = "Ops nothing to see. Create a new video"
	msgTimeout          = "Error. The request took too long. Try again."
	msgVideoCreated     = "The video was recorded successfully!!"
	msgVideoList        = "Videos list"
)

// AppError is a failure that has already been classified for the client.
type AppError struct {
	Kind    ErrorKind
	Code    int
	Message string
	Detail  string
	// Field is set for FieldValidationFailure and EmptyRequiredField.
	Field string
	Err   error
}

func (e *AppError) Error() string {
	if e.Detail == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Detail)
}

func (e *AppError) Unwrap() error { return e.Err }

// Is matches AppErrors of the same kind.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Kind == e.Kind
}

// Envelope renders the error as a response body.
func (e *AppError) Envelope() envelope.Envelope {
	return envelope.Failure(e.Code, e.Message, e.Detail)
}

// Sentinels for errors.Is; their messages are not used for responses.
var (
	ErrMalformedRequest       = &AppError{Kind: MalformedRequest}
	ErrMissingAuthToken       = &AppError{Kind: MissingAuthToken}
	ErrInvalidOrExpiredToken  = &AppError{Kind: InvalidOrExpiredToken}
	ErrDecodeFailure          = &AppError{Kind: DecodeFailure}
	ErrEmptyRequiredField     = &AppError{Kind: EmptyRequiredField}
	ErrFieldValidationFailure = &AppError{Kind: FieldValidationFailure}
	ErrEmptyResultSet         = &AppError{Kind: EmptyResultSet}
	ErrIdentityNotFound       = &AppError{Kind: IdentityNotFound}
	ErrPersistenceFailure     = &AppError{Kind: PersistenceFailure}
	ErrTimeout                = &AppError{Kind: Timeout}
)

func errMalformedRequest() *AppError {
	return &AppError{Kind: MalformedRequest, Code: http.StatusBadRequest, Message: msgMalformedRequest}
}

func errMissingAuthToken() *AppError {
	return &AppError{Kind: MissingAuthToken, Code: http.StatusBadRequest, Message: msgMissingToken}
}

func errInvalidToken(message, detail string, err error) *AppError {
	return &AppError{Kind: InvalidOrExpiredToken, Code: http.StatusBadRequest, Message: message, Detail: detail, Err: err}
}

func errDecodeFailure(err error) *AppError {
	return &AppError{Kind: DecodeFailure, Code: http.StatusBadRequest, Message: msgCreateFailed, Detail: err.Error(), Err: err}
}

func errEmptyField(fe *validation.FieldError) *AppError {
	return &AppError{Kind: EmptyRequiredField, Code: http.StatusBadRequest, Message: msgEmptyField, Field: fe.Field, Err: fe}
}

func errInvalidField(fe *validation.FieldError) *AppError {
	return &AppError{
		Kind:    FieldValidationFailure,
		Code:    http.StatusBadRequest,
		Message: fmt.Sprintf("%s field is not valid", fe.Field),
		Detail:  fe.Reason,
		Field:   fe.Field,
		Err:     fe,
	}
}

func errEmptyResultSet() *AppError {
	return &AppError{Kind: EmptyResultSet, Code: http.StatusBadRequest, Message: msgEmptyCollection}
}

func errIdentityNotFound(err error) *AppError {
	return &AppError{Kind: IdentityNotFound, Code: http.StatusBadRequest, Message: msgCreateFailed, Detail: "account not found", Err: err}
}

func errPersistence(message string, err error) *AppError {
	return &AppError{Kind: PersistenceFailure, Code: http.StatusInternalServerError, Message: message, Detail: "storage is unavailable", Err: err}
}

func errTimeout(err error) *AppError {
	return &AppError{Kind: Timeout, Code: http.StatusInternalServerError, Message: msgTimeout, Detail: "deadline exceeded", Err: err}
}

func errRouteNotFound(path string) *AppError {
	return &AppError{Kind: RouteNotFound, Code: http.StatusNotFound, Message: "Route not found", Detail: path}
}

func errMethodNotAllowed(method string) *AppError {
	return &AppError{Kind: MethodNotAllowed, Code: http.StatusMethodNotAllowed, Message: "Method not allowed", Detail: method}
}
