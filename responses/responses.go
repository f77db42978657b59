package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"frozo-api/apperrors"
	"frozo-api/logger"
)

// Payload holds the fields written next to "success" in a response body.
type Payload map[string]any

func WriteSuccess(w http.ResponseWriter, payload Payload) {
	WriteSuccessStatus(w, http.StatusOK, payload)
}

func WriteSuccessStatus(w http.ResponseWriter, status int, payload Payload) {
	writeJSON(w, status, withSuccess(payload, true))
}

// WriteFailureStatus writes {success:false, ...payload} for failures that carry
// structured data rather than an error message.
func WriteFailureStatus(w http.ResponseWriter, status int, payload Payload) {
	writeJSON(w, status, withSuccess(payload, false))
}

func withSuccess(payload Payload, success bool) map[string]any {
	body := make(map[string]any, len(payload)+1)
	for k, v := range payload {
		body[k] = v
	}
	body["success"] = success
	return body
}

type errorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

// WriteError renders err as {success:false, error}. Messages of client errors are
// passed through; internal errors are replaced by a generic message.
func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}

	typed := apperrors.As(err)
	if typed == nil {
		typed = apperrors.Wrap(apperrors.CodeInternal, err, "unexpected error")
	}
	meta := apperrors.MetadataFor(typed.Code())

	msg := meta.PublicMessage
	if meta.Exposed && typed.Message() != "" {
		msg = typed.Message()
	}

	if logg != nil {
		ctx = logg.WithFields(ctx, map[string]any{
			"error_code": string(typed.Code()),
			"status":     meta.HTTPStatus,
		})
		if typed.Code() == apperrors.CodeInternal {
			logg.Error(ctx, "request.error", err)
		} else {
			logg.Debug(logg.WithField(ctx, "error", err.Error()), "request.rejected")
		}
	}

	writeJSON(w, meta.HTTPStatus, errorBody{Success: false, Error: msg, Code: string(typed.Code())})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
