// pkg/functions/response.go
package functions

import (
	"encoding/json"
	"net/http"
)

// Response is the tagged result every operation returns: an HTTP-style
// status plus zero or more named fields serialized as one flat JSON object.
type Response struct {
	Status int
	Fields map[string]any
}

// OK is the plain 200 result with no fields.
func OK() Response {
	return Response{Status: http.StatusOK}
}

// OKWith is a 200 result carrying named fields.
func OKWith(fields map[string]any) Response {
	return Response{Status: http.StatusOK, Fields: fields}
}

// Exception models an internal failure surfaced to the caller as a 500 with
// a descriptive message.
func Exception(msg string) Response {
	return Error(http.StatusInternalServerError, msg)
}

// Validation is the 400 result for malformed or missing request fields.
func Validation(msg string) Response {
	return Error(http.StatusBadRequest, msg)
}

// Unauthorized is the 401 result. No detail is leaked about why.
func Unauthorized() Response {
	return Error(http.StatusUnauthorized, "Unauthorized")
}

// Conflict is the 409 result for duplicate-record rejections.
func Conflict(msg string) Response {
	return Error(http.StatusConflict, msg)
}

func Error(status int, msg string) Response {
	return Response{Status: status, Fields: map[string]any{"message": msg}}
}

// Message returns the "message" field when present.
func (r Response) Message() string {
	if r.Fields == nil {
		return ""
	}
	if m, ok := r.Fields["message"].(string); ok {
		return m
	}
	return ""
}

// JSON serializes the declared fields as a flat object. A field-less
// Response serializes as {}.
func (r Response) JSON() ([]byte, error) {
	if r.Fields == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(r.Fields)
}
