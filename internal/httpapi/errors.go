package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"jobfilter-engine/internal/config"
	"jobfilter-engine/internal/route"
)

// ErrorCode is the machine readable code of an APIError.
type ErrorCode string

const (
	CodeInvalidID         ErrorCode = "invalid_id"
	CodeModuleNotFound    ErrorCode = "module_not_found"
	CodeRouteMissing      ErrorCode = "route_missing"
	CodeRenderFailed      ErrorCode = "render_failed"
	CodeFilterFailed      ErrorCode = "filter_failed"
	CodeSeedFailed        ErrorCode = "seed_failed"
	CodeCanceled          ErrorCode = "canceled"
	CodeRateLimited       ErrorCode = "rate_limited"
	CodeInvalidJSON       ErrorCode = "invalid_json"
	CodeSaveFailed        ErrorCode = "save_failed"
	CodeReloadFailed      ErrorCode = "reload_failed"
	CodeMethodNotAllowed  ErrorCode = "method_not_allowed"
	CodeStreamUnsupported ErrorCode = "stream_unsupported"
	CodeForbidden         ErrorCode = "forbidden"
	CodeUnauthorized      ErrorCode = "unauthorized"
	CodeInternal          ErrorCode = "internal_error"
)

type APIError struct {
	Error struct {
		Code      ErrorCode `json:"code"`
		Message   string    `json:"message"`
		RequestID string    `json:"request_id,omitempty"`
	} `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, code ErrorCode, message string) {
	var e APIError
	e.Error.Code = code
	e.Error.Message = message
	e.Error.RequestID = RequestIDFrom(r.Context())
	WriteJSON(w, status, e)
}

// filterFailure maps an error from rendering or filtering to a status and
// code. fallback is used for storage and template errors.
func filterFailure(err error, fallback ErrorCode) (int, ErrorCode) {
	switch {
	case errors.Is(err, config.ErrModuleNotFound):
		return http.StatusNotFound, CodeModuleNotFound
	case errors.Is(err, route.ErrNotFound):
		return http.StatusInternalServerError, CodeRouteMissing
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, CodeCanceled
	default:
		return http.StatusInternalServerError, fallback
	}
}

// writeFilterError answers a failed filter request through filterFailure.
func writeFilterError(w http.ResponseWriter, r *http.Request, err error, fallback ErrorCode) {
	status, code := filterFailure(err, fallback)
	WriteError(w, r, status, code, err.Error())
}
