package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// Error codes carried in every error body.
const (
	codeValidation  = "validation_error"
	codeNotFound    = "not_found"
	codePersistence = "persistence_error"
	codeTooLarge    = "request_too_large"
	codeInternal    = "internal_error"
)

// ErrorDetail is the payload of an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx response:
// {"error":{"code":"...","message":"..."}}.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// errRequest marks a request rejected before reaching the service layer,
// e.g. a malformed JSON body.
var errRequest = errors.New("bad request")

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // the client has gone if this fails; nothing to do.
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// respondError maps a service error onto an HTTP error response.
// what names the resource for 404 messages, e.g. "trip", unless the error
// carries a *domain.NotFoundError naming a different one.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, what string) {
	var (
		tooLarge *http.MaxBytesError
		missing  *domain.NotFoundError
	)
	switch {
	case errors.As(err, &tooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, codeTooLarge,
			fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
	case errors.Is(err, errRequest):
		writeError(w, http.StatusUnprocessableEntity, codeValidation, requestMessage(err))
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, codeValidation, domain.ValidationMessage(err))
	case errors.As(err, &missing):
		writeError(w, http.StatusNotFound, codeNotFound, missing.Resource+" not found")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, what+" not found")
	case errors.Is(err, domain.ErrPersistence):
		s.logger.ErrorContext(r.Context(), "persistence failure", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusServiceUnavailable, codePersistence, "the change could not be saved, please try again")
	default:
		s.logger.ErrorContext(r.Context(), "unhandled error", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, codeInternal, "internal server error")
	}
}

// decodeBody decodes the JSON request body into dst and validates it.
// An empty body is an error unless optional is set, in which case dst is
// left untouched.
func (s *Server) decodeBody(r *http.Request, dst any, optional bool) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	switch {
	case errors.Is(err, io.EOF):
		if !optional {
			return fmt.Errorf("%w: request body is required", errRequest)
		}
	case err != nil:
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return fmt.Errorf("%w: invalid request body: %s", errRequest, err.Error())
	}
	if err := s.validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %s", errRequest, describeValidation(err))
	}
	return nil
}

// describeValidation turns the first validator failure into a short message
// such as "destinations[0].lat must be <= 90".
func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	_, field, found := strings.Cut(fe.Namespace(), ".")
	if !found {
		field = fe.Field()
	}
	switch fe.Tag() {
	case "required", "required_without":
		return field + " is required"
	case "min", "gte":
		return fmt.Sprintf("%s must be >= %s", field, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be <= %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}

// requestMessage strips the errRequest marker from a request error.
// e.g. "bad request: request body is required" → "request body is required"
func requestMessage(err error) string {
	msg := err.Error()
	prefix := errRequest.Error() + ": "
	if i := strings.Index(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	return msg
}
