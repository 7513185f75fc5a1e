package superheroes

import (
	"errors"
	"fmt"
)

// Kind classifies a failed API call.
type Kind int

const (
	// KindTransport means no response was received.
	KindTransport Kind = iota + 1
	// KindStatus means the API answered with a non-2xx status.
	KindStatus
	// KindDecode means a 2xx body could not be decoded.
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// User-facing fallbacks when the API did not explain itself.
const (
	MessageUnreachable = "Could not connect to the server."
	MessageUnknown     = "Unknown server error."
)

// APIError is the typed failure of a List or Create call.
type APIError struct {
	Op     string // "list" or "create"
	Kind   Kind
	Status int // HTTP status, KindStatus only

	// Message is the body's "message" field, when present.
	Message string
	// HasBody is true when a KindStatus response carried a JSON object.
	HasBody bool

	Err error
}

func (e *APIError) Error() string {
	switch e.Kind {
	case KindStatus:
		if e.Message != "" {
			return fmt.Sprintf("superheroes %s: status %d: %s", e.Op, e.Status, e.Message)
		}
		return fmt.Sprintf("superheroes %s: status %d", e.Op, e.Status)
	default:
		return fmt.Sprintf("superheroes %s: %s: %v", e.Op, e.Kind, e.Err)
	}
}

func (e *APIError) Unwrap() error { return e.Err }

// UserMessage turns any API failure into the text shown next to the table.
func UserMessage(err error) string {
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Kind != KindStatus {
		return MessageUnreachable
	}
	switch {
	case apiErr.Message != "":
		return apiErr.Message
	case apiErr.HasBody:
		return MessageUnknown
	default:
		return MessageUnreachable
	}
}
