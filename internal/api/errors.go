package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrUnauthenticated marks 401/403 responses. Handlers match it with
// errors.Is and route it through the session teardown path instead of
// rendering it inline.
var ErrUnauthenticated = errors.New("authentication required")

// Kind classifies how much the server told us about a failure.
type Kind int

const (
	// KindUnknown: no usable body; the UI shows a localized fallback.
	KindUnknown Kind = iota
	// KindStructured: JSON body with an error/message field, shown verbatim.
	KindStructured
	// KindPlainText: non-JSON body, shown verbatim.
	KindPlainText
)

// Error is the normalized form of every remote failure.
type Error struct {
	Status  int
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: %d", e.Status)
}

// Is lets errors.Is(err, ErrUnauthenticated) match auth failures.
func (e *Error) Is(target error) bool {
	return target == ErrUnauthenticated && (e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden)
}

const maxErrorBody = 64 << 10

// normalize turns a non-2xx response into *Error. The server is inconsistent
// about failure shapes: some endpoints send {"error": ...} or {"message": ...},
// some send a bare string, some send nothing. All three collapse here.
func normalize(resp *http.Response) error {
	e := &Error{Status: resp.StatusCode}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return e
	}
	text := strings.TrimSpace(string(body))
	if text == "" {
		return e
	}

	var structured struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if jsonErr := json.Unmarshal(body, &structured); jsonErr == nil {
		msg := structured.Message
		if msg == "" {
			msg = structured.Error
		}
		if msg != "" {
			e.Kind = KindStructured
			e.Message = msg
			return e
		}
		// Valid JSON but no known field: treat as unusable.
		return e
	}

	e.Kind = KindPlainText
	e.Message = text
	return e
}
