package api

import "github.com/danielgtaylor/huma/v2"

// Envelope is the versioned JSON wrapper around every typed API response.
type Envelope struct {
	V       int       `json:"v"`
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

// EnvelopeTransformer wraps response bodies in the envelope. Error
// values produced by the error handler carry their own envelope slot.
func EnvelopeTransformer(_ huma.Context, _ string, v any) (any, error) {
	if apiErr, ok := v.(*APIError); ok {
		return &Envelope{V: 1, Error: apiErr}, nil
	}
	return &Envelope{V: 1, Success: true, Data: v}, nil
}
