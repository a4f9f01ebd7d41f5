package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies failures of the assistant pipeline.
type Code string

const (
	MissingCredential       Code = "missing_credential"
	UnsupportedDocumentType Code = "unsupported_document_type"
	DocumentReadFailure     Code = "document_read_failure"
	ProviderCallFailure     Code = "provider_call_failure"
	MalformedModelOutput    Code = "malformed_model_output"
	NotFound                Code = "not_found"
	InvalidRequest          Code = "invalid_request"
)

// Error carries a Code, a human readable message and, for model output
// failures, the raw text the model produced.
type Error struct {
	Code    Code
	Message string
	Raw     string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return string(e.Code)
	}
}

func (e *Error) Unwrap() error { return e.Err }

func New(code Code, msg string, err error) *Error {
	return &Error{Code: code, Message: msg, Err: err}
}

// Malformed wraps a parse failure and keeps the offending model output.
func Malformed(raw string, err error) *Error {
	return &Error{Code: MalformedModelOutput, Message: "resposta do modelo não é um JSON válido", Raw: raw, Err: err}
}

// CodeOf returns the Code of the first *Error in err's chain, or "" if none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// RawOf returns the raw model output attached to err, if any.
func RawOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Raw
	}
	return ""
}

// Status maps a Code to the HTTP status the route layer answers with.
func Status(code Code) int {
	switch code {
	case NotFound:
		return http.StatusNotFound
	case InvalidRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
