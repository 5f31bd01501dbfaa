package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/craftly-living/backend/errs"
	"github.com/rs/zerolog"
)

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

// WriteJSON sets the content type before the status so every response,
// including errors, is labelled as JSON.
func (r Responder) WriteJSON(w http.ResponseWriter, status int, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Internal Server Error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteError maps err onto a status and body. Client errors carry their own
// message and field list. Server errors are logged with their cause and
// answered with internalMessage only.
func (r Responder) WriteError(w http.ResponseWriter, err error, internalMessage string) {
	var apiErr *errs.ApiErr

	if !errors.As(err, &apiErr) {
		r.logger.Error().Err(err).Msg("unexpected error")
		r.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal Server Error"})
		return
	}

	if apiErr.StatusCode >= http.StatusInternalServerError {
		r.logger.Error().Str("error", apiErr.GetFullError()).Msg(internalMessage)
		if internalMessage == "" {
			internalMessage = "Internal Server Error"
		}
		r.WriteJSON(w, apiErr.StatusCode, ErrorResponse{Error: internalMessage})
		return
	}

	response := ErrorResponse{Error: apiErr.Message(), Details: apiErr.Fields}
	if len(response.Details) == 0 && apiErr.Field != "" && apiErr.Details != "" {
		response.Details = []errs.FieldError{{Field: apiErr.Field, Message: apiErr.Details}}
	}
	if apiErr.Cause != nil {
		r.logger.Debug().Str("error", apiErr.GetFullError()).Int("status", apiErr.StatusCode).Msg("request rejected")
	}
	r.WriteJSON(w, apiErr.StatusCode, response)
}

// readBody reads at most limit bytes of the request body.
func readBody(w http.ResponseWriter, req *http.Request, limit int64) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, req.Body, limit))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errs.NewMaxBodySizeExceededError(limit)
		}
		return nil, errs.NewMalformedPayloadError("request", err)
	}
	return body, nil
}
