// Package httputil translates coded domain errors into HTTP responses and
// writes JSON bodies for the gateway handlers.
package httputil

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	dErrors "xapi/pkg/domain-errors"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
	Field            string `json:"field,omitempty"`
}

// StatusFor maps an error code to its HTTP status.
func StatusFor(code dErrors.Code) int {
	switch code {
	case dErrors.CodeParse,
		dErrors.CodeFormat,
		dErrors.CodeMissingField,
		dErrors.CodeUnsupportedType,
		dErrors.CodeInvalidNesting,
		dErrors.CodeValidation,
		dErrors.CodeBadRequest:
		return http.StatusBadRequest
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeInvariantViolation:
		return http.StatusConflict
	case dErrors.CodeTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes err as a JSON envelope. Errors without a code, and
// internal errors, are reported without a description or field.
func WriteError(w http.ResponseWriter, err error) {
	var de *dErrors.Error
	if !errors.As(err, &de) || de.Code == dErrors.CodeInternal {
		WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: string(dErrors.CodeInternal)})
		return
	}

	desc := de.Message
	if de.Value != "" {
		desc = de.Message + ": " + de.Value
	}
	WriteJSON(w, StatusFor(de.Code), ErrorResponse{
		Error:            string(de.Code),
		ErrorDescription: desc,
		Field:            de.Field,
	})
}

// WriteJSON encodes v with HTML escaping disabled and writes it with status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	writeEncoded(w, status, v, false)
}

// WritePrettyJSON is WriteJSON with two-space indentation.
func WritePrettyJSON(w http.ResponseWriter, status int, v any) {
	writeEncoded(w, status, v, true)
}

func writeEncoded(w http.ResponseWriter, status int, v any, pretty bool) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		WriteRawJSON(w, http.StatusInternalServerError, []byte(`{"error":"internal_error"}`))
		return
	}
	WriteRawJSON(w, status, buf.Bytes())
}

// WriteRawJSON writes an already encoded JSON document.
func WriteRawJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
