package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"

	internal_errors "github.com/talkboard/talkboard/internal/errors"
	"github.com/talkboard/talkboard/internal/logger"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// WriteErrorAndStatusCode maps service errors onto HTTP responses.
// Validation errors carry the offending field; a degraded search index is
// reported as 503 so callers can tell it apart from an empty result.
func WriteErrorAndStatusCode(w http.ResponseWriter, err error) {
	var verr *internal_errors.ValidationError
	if errors.As(err, &verr) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"field": verr.Field, "error": verr.Message})
		return
	}

	var serr *internal_errors.SearchUnavailableError
	if errors.As(err, &serr) {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	var sc *internal_errors.ErrorWithStatusCode
	if errors.As(err, &sc) {
		http.Error(w, err.Error(), sc.StatusCode)
		return
	}

	// default error is 500
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

// DecodeValidate decodes a JSON body into the given DTO and runs its
// `validate` struct tags. All caller-supplied mutation goes through an
// explicit allow-list DTO, never a free-form map.
func DecodeValidate(r io.ReadCloser, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		logger.Log.Debug("invalid request body", "err", err)
		return &internal_errors.ErrorWithStatusCode{Message: "Body is invalid json", StatusCode: http.StatusBadRequest}
	}
	if err := validate.Struct(body); err != nil {
		return &internal_errors.ErrorWithStatusCode{Message: fmt.Sprintf("Body failed validation: %v", err), StatusCode: http.StatusBadRequest}
	}
	return nil
}
