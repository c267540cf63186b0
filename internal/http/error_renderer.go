package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/shutterdesk/studio/internal/errors"
	"github.com/shutterdesk/studio/internal/mutation"
	"github.com/shutterdesk/studio/internal/validation"
)

const (
	errMsgFixBelow = "Please fix the errors below."
	errMsgGeneric  = "An error occurred. Please try again."
)

// kindStatus maps failure kinds to HTTP status codes.
var kindStatus = map[mutation.Kind]int{
	mutation.KindValidation:    http.StatusBadRequest,
	mutation.KindNotFound:      http.StatusNotFound,
	mutation.KindConflict:      http.StatusConflict,
	mutation.KindAuthorization: http.StatusForbidden,
	mutation.KindNetwork:       http.StatusBadGateway,
	mutation.KindInternal:      http.StatusInternalServerError,
}

// renderError converts a service error into ErrorParams. Internal failures get a generic
// message so backend details do not leak to clients.
func renderError(err error) ErrorParams {
	var verr *validation.Error
	if errors.As(err, &verr) {
		return ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "validation_failed",
			Err:     err,
			Message: errMsgFixBelow,
			Fields:  verr.Fields,
		}
	}

	kind := mutation.KindOf(err)
	status, ok := kindStatus[kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	p := ErrorParams{Code: status, ErrCode: string(kind), Err: err, Message: apperrors.Message(unwrapMutation(err))}
	if field := apperrors.GetField(err); field != "" {
		p.Fields = map[string]string{field: p.Message}
	}
	if kind == mutation.KindInternal {
		p.Message = errMsgGeneric
	}
	return p
}

func unwrapMutation(err error) error {
	var merr *mutation.Error
	if errors.As(err, &merr) && merr.Err != nil {
		return merr.Err
	}
	return err
}

// WriteServiceError renders err and logs it; server-side failures log at error level.
func WriteServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	p := renderError(err)
	if logger != nil {
		attrs := []any{"method", r.Method, "path", r.URL.Path, "status", p.Code, "error", err}
		if p.Code >= http.StatusInternalServerError {
			logger.ErrorContext(r.Context(), "request failed", attrs...)
		} else {
			logger.DebugContext(r.Context(), "request rejected", attrs...)
		}
	}
	WriteError(w, p)
}
