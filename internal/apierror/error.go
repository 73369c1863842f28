package apierror

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies why a request was rejected.
type Kind string

const (
	KindMalformedRequest Kind = "MalformedRequestException"
	KindIllegalOperation Kind = "IllegalOperationException"
	KindNotFound         Kind = "NotFoundException"
	KindNoHandler        Kind = "NoHandlerException"
	KindService          Kind = "ServiceException"
	KindTransport        Kind = "TransportException"
)

var (
	ErrMalformedRequest = errors.New("malformed_request")
	ErrIllegalOperation = errors.New("illegal_operation")
	ErrNotFound         = errors.New("not_found")
	ErrNoHandler        = errors.New("no_applicable_handler")
	ErrService          = errors.New("service_error")
	ErrTransport        = errors.New("transport_error")
)

var sentinels = map[Kind]error{
	KindMalformedRequest: ErrMalformedRequest,
	KindIllegalOperation: ErrIllegalOperation,
	KindNotFound:         ErrNotFound,
	KindNoHandler:        ErrNoHandler,
	KindService:          ErrService,
	KindTransport:        ErrTransport,
}

// Error is a caller-correctable rejection with a human readable reason.
// Field is empty when the reason is not tied to a single field.
type Error struct {
	Kind    Kind
	Field   string
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is matches the sentinel for the error kind.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	sentinel, ok := sentinels[e.Kind]
	return ok && sentinel == target
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func MalformedRequest(field, message string) *Error {
	return &Error{Kind: KindMalformedRequest, Field: field, Message: message}
}

func IllegalOperation(field, message string) *Error {
	return &Error{Kind: KindIllegalOperation, Field: field, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func NoHandler(value any) *Error {
	return &Error{Kind: KindNoHandler, Message: fmt.Sprintf("no applicable handler for %T", value)}
}

// Transport wraps a failure that happened before a service response was read.
func Transport(message string, cause error) *Error {
	return &Error{Kind: KindTransport, Message: message, cause: cause}
}

// FromServiceInfo converts an error info reported by the service.
func FromServiceInfo(id, message string) *Error {
	id = strings.TrimSpace(id)
	message = strings.TrimSpace(message)
	switch Kind(id) {
	case KindMalformedRequest, KindIllegalOperation, KindNotFound:
		return &Error{Kind: Kind(id), Message: message}
	}
	if id == "" {
		return &Error{Kind: KindService, Message: message}
	}
	return &Error{Kind: KindService, Message: id + ": " + message}
}

// KindOf returns the kind of err, or an empty kind when err is not an *Error.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}
