package response

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
)

// The booking API answers with bare JSON documents on success and with the
// status text as a plain-text body on failure; there is no envelope.

// DecodeJSON decodes JSON from request body into the provided struct
func DecodeJSON(body io.ReadCloser, v interface{}) error {
	defer body.Close()
	return json.NewDecoder(body).Decode(v)
}

// JSON sends a JSON response
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Int("status", status).Msg("Failed to encode response")
	}
}

// OK sends a 200 OK JSON response
func OK(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, data)
}

// Status sends the status text of code as a plain-text body
func Status(w http.ResponseWriter, code int) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	_, _ = io.WriteString(w, http.StatusText(code))
}

// Created sends 201 "Created"
func Created(w http.ResponseWriter) {
	Status(w, http.StatusCreated)
}

// BadRequest sends 400 "Bad Request"
func BadRequest(w http.ResponseWriter) {
	Status(w, http.StatusBadRequest)
}

// Forbidden sends 403 "Forbidden"
func Forbidden(w http.ResponseWriter) {
	Status(w, http.StatusForbidden)
}

// NotFound sends 404 "Not Found"
func NotFound(w http.ResponseWriter) {
	Status(w, http.StatusNotFound)
}

// MethodNotAllowed sends 405 "Method Not Allowed"
func MethodNotAllowed(w http.ResponseWriter) {
	Status(w, http.StatusMethodNotAllowed)
}

// InternalError sends 500 "Internal Server Error"
func InternalError(w http.ResponseWriter) {
	Status(w, http.StatusInternalServerError)
}
