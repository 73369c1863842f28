package mockserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/netlicensing/internal/apierror"
	"github.com/smallbiznis/netlicensing/internal/form"
	"github.com/smallbiznis/netlicensing/internal/mockserver/store"
	"github.com/smallbiznis/netlicensing/pkg/rest"
)

// Exception ids the service reports for failures outside the validation
// taxonomy.
const (
	exceptionNotAuthorized = "NotAuthorizedException"
	exceptionAccessDenied  = "AccessDeniedException"
	exceptionInternal      = "ServiceException"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// ErrorHandlingMiddleware renders the last handler error as an error
// envelope unless the handler already wrote a response.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, info := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, rest.Envelope{Infos: rest.Infos{Info: []rest.Info{info}}})
	}
}

// AbortWithError records err for ErrorHandlingMiddleware and stops the chain.
func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, rest.Info) {
	info := func(id, message string) rest.Info {
		return rest.Info{ID: id, Type: rest.InfoError, Value: message}
	}

	var apiErr *apierror.Error
	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, info(exceptionNotAuthorized, "Authentication is required.")
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, info(exceptionAccessDenied, "Access to the requested operation is denied.")
	case errors.Is(err, store.ErrUnknownResource):
		return http.StatusNotFound, info(string(apierror.KindNotFound), "Requested resource does not exist.")
	case errors.Is(err, form.ErrDecode):
		return http.StatusBadRequest, info(string(apierror.KindMalformedRequest), err.Error())
	case errors.As(err, &apiErr):
		return statusForKind(apiErr.Kind), info(string(apiErr.Kind), apiErr.Message)
	default:
		return http.StatusInternalServerError, info(exceptionInternal, "Internal service error.")
	}
}

func statusForKind(kind apierror.Kind) int {
	switch kind {
	case apierror.KindMalformedRequest, apierror.KindIllegalOperation:
		return http.StatusBadRequest
	case apierror.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// classifyErrorForLog returns the error type and code logged per request.
func classifyErrorForLog(err error) (string, string) {
	var apiErr *apierror.Error
	switch {
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrForbidden):
		return "auth_error", err.Error()
	case errors.As(err, &apiErr):
		switch apiErr.Kind {
		case apierror.KindMalformedRequest, apierror.KindIllegalOperation:
			return "validation_error", string(apiErr.Kind)
		case apierror.KindNotFound:
			return "not_found", string(apiErr.Kind)
		}
		return "service_error", string(apiErr.Kind)
	case errors.Is(err, form.ErrDecode):
		return "validation_error", string(apierror.KindMalformedRequest)
	default:
		return "internal_error", "internal_error"
	}
}
