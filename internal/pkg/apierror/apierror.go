package apierror

import (
	"encoding/json"
	"errors"
	"strings"
)

// Kind tags the shape of a backend error payload.
type Kind int

const (
	Unknown Kind = iota
	// Structured is a list of validation messages.
	Structured
	// Plain is a single message.
	Plain
)

func (k Kind) String() string {
	switch k {
	case Structured:
		return "structured"
	case Plain:
		return "plain"
	default:
		return "unknown"
	}
}

const defaultValidationMessage = "Validation error"

// Payload is a parsed backend error body.
type Payload struct {
	Kind     Kind
	Messages []string
	Message  string
}

// Parse classifies a backend error body. Recognised shapes, first match wins:
//
//	{"detail": "text"}
//	{"detail": [{"msg": "..."}, ...]}
//	{"detail": {"msg": "..."}}
//	{"message": "text"}
//	{"error": {"message": "text"}}
//
// Anything else, including non-JSON bodies, is Unknown.
func Parse(body []byte) Payload {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return Payload{Kind: Unknown}
	}

	if raw, ok := top["detail"]; ok && !isNull(raw) {
		if p, ok := parseDetail(raw); ok {
			return p
		}
	}

	if s, ok := asString(top["message"]); ok {
		return Payload{Kind: Plain, Message: s}
	}

	if raw, ok := top["error"]; ok {
		var env struct {
			Message *string `json:"message"`
		}
		if json.Unmarshal(raw, &env) == nil && env.Message != nil {
			return Payload{Kind: Plain, Message: *env.Message}
		}
	}

	return Payload{Kind: Unknown}
}

func parseDetail(raw json.RawMessage) (Payload, bool) {
	if s, ok := asString(raw); ok {
		return Payload{Kind: Plain, Message: s}, true
	}

	var items []json.RawMessage
	if json.Unmarshal(raw, &items) == nil {
		msgs := make([]string, 0, len(items))
		for _, item := range items {
			var obj map[string]json.RawMessage
			if json.Unmarshal(item, &obj) != nil || obj == nil {
				continue
			}
			msg, present := obj["msg"]
			if !present || isNull(msg) {
				msgs = append(msgs, defaultValidationMessage)
				continue
			}
			if text := display(msg); text != "" {
				msgs = append(msgs, text)
			}
		}
		if len(msgs) > 0 {
			return Payload{Kind: Structured, Messages: msgs}, true
		}
		return Payload{}, false
	}

	var obj map[string]json.RawMessage
	if json.Unmarshal(raw, &obj) == nil {
		if msg, ok := obj["msg"]; ok && !isNull(msg) {
			return Payload{Kind: Plain, Message: display(msg)}, true
		}
	}
	return Payload{}, false
}

// Text renders the payload for display, using fallback when it carries nothing.
func (p Payload) Text(fallback string) string {
	switch p.Kind {
	case Structured:
		if len(p.Messages) > 0 {
			return strings.Join(p.Messages, "; ")
		}
	case Plain:
		if strings.TrimSpace(p.Message) != "" {
			return p.Message
		}
	}
	return fallback
}

// Response is implemented by errors that carry a backend HTTP response.
type Response interface {
	error
	HTTPStatus() int
	ResponseBody() []byte
}

// Message returns the user-facing text for err, or fallback when err carries no
// backend payload that can be displayed.
func Message(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.Message
	}
	var resp Response
	if errors.As(err, &resp) {
		return Parse(resp.ResponseBody()).Text(fallback)
	}
	return fallback
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

func asString(raw json.RawMessage) (string, bool) {
	if isNull(raw) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// display renders a JSON scalar the way it would be printed.
func display(raw json.RawMessage) string {
	if s, ok := asString(raw); ok {
		return s
	}
	return strings.TrimSpace(string(raw))
}
