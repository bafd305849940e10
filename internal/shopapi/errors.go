package shopapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// APIError is a non-2xx answer from the shop API.
type APIError struct {
	Method string
	Path   string
	Status int
	Body   []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("shop api: %s %s: status %d", e.Method, e.Path, e.Status)
}

// Message is the human-readable text of the error body, or fallback.
func (e *APIError) Message(fallback string) string {
	return ErrorMessage(e.Body, fallback)
}

// ErrorMessage extracts what to show the user from an error body:
//   - a JSON string is used as is;
//   - a JSON object or array has all its values flattened, in the order the
//     body lists them, and joined by spaces ({"price":["must be positive"]} -> "must be positive");
//   - non-JSON text is used verbatim;
//   - anything else yields fallback.
func ErrorMessage(body []byte, fallback string) string {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return fallback
	}
	if !json.Valid(body) {
		return text
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return fallback
	}
	switch t := tok.(type) {
	case string:
		if t == "" {
			return fallback
		}
		return t
	case json.Delim:
		parts, err := flatten(dec, t, nil)
		if err != nil || len(parts) == 0 {
			return fallback
		}
		return strings.Join(parts, " ")
	}
	return fallback
}

// flatten appends the scalar values under tok, walking objects in document order.
func flatten(dec *json.Decoder, tok json.Token, out []string) ([]string, error) {
	switch t := tok.(type) {
	case nil:
		return out, nil
	case string:
		return append(out, t), nil
	case json.Number:
		return append(out, t.String()), nil
	case bool:
		return append(out, strconv.FormatBool(t)), nil
	case json.Delim:
		for dec.More() {
			if t == '{' {
				// key
				if _, err := dec.Token(); err != nil {
					return out, err
				}
			}
			next, err := dec.Token()
			if err != nil {
				return out, err
			}
			if out, err = flatten(dec, next, out); err != nil {
				return out, err
			}
		}
		// closing delimiter
		_, err := dec.Token()
		return out, err
	default:
		return append(out, fmt.Sprint(t)), nil
	}
}

// UserMessage is the text to show for a failed call: the API's own message when it
// answered, fallback when it could not be reached.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message(fallback)
	}
	return fallback
}

// StatusOf maps a failed call to the status the gateway answers with:
// client errors from the API pass through, everything else is a bad gateway.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
		return apiErr.Status
	}
	return http.StatusBadGateway
}
