package output

import (
	"encoding/json"
	"fmt"
	"io"
)

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// JSON writes v to w as indented JSON.
func JSON(w io.Writer, v any) error {
	if err := encode(w, v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// ErrorResponse is the JSON envelope for structured error output.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}

// JSONError writes a structured error envelope to w. Encoding failures
// are swallowed: there is nowhere left to report them.
func JSONError(w io.Writer, code, msg string, details map[string]any) {
	_ = encode(w, ErrorResponse{Error: msg, Code: code, Details: details})
}

// BatchResult is the outcome of one operation within a batch.
type BatchResult struct {
	Ref   string `json:"ref"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	Code  string `json:"code,omitempty"`
}
