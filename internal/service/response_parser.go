package service

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MalformedResponseError reports an AI reply that did not parse as JSON
// after stripping code fences. Raw keeps the offending text for
// diagnostics; it is never coerced into a default value.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("AI response is not valid JSON: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// ResponseParser turns the model's freeform text reply into a JSON value.
// All provider-specific string cleanup lives here so that a change in the
// model's fencing style is a one-place fix.
type ResponseParser struct{}

func NewResponseParser() *ResponseParser {
	return &ResponseParser{}
}

// Handles the fencing variants Gemini has been observed to emit.
var fenceOpeners = []string{"```json", "```JSON", "```"}

func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	for _, opener := range fenceOpeners {
		if strings.HasPrefix(s, opener) {
			s = strings.TrimPrefix(s, opener)
			if idx := strings.LastIndex(s, "```"); idx != -1 {
				s = s[:idx]
			}
			break
		}
	}
	return strings.TrimSpace(s)
}

func (p *ResponseParser) Parse(raw string) (interface{}, error) {
	cleaned := stripFences(raw)

	var value interface{}
	if err := json.Unmarshal([]byte(cleaned), &value); err != nil {
		return nil, &MalformedResponseError{Raw: raw, Err: err}
	}
	return value, nil
}

// SanitizeAlignments drops every aligned_COs entry that is not a string
// with the "CO" prefix. Corrective cleanup, not a hard error: the model
// occasionally slips PO identifiers or bare numbers into the list.
func SanitizeAlignments(value interface{}) interface{} {
	items, ok := value.([]interface{})
	if !ok {
		return value
	}

	for _, item := range items {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		rawCOs, ok := entry["aligned_COs"].([]interface{})
		if !ok {
			continue
		}

		kept := make([]interface{}, 0, len(rawCOs))
		for _, co := range rawCOs {
			if s, ok := co.(string); ok && strings.HasPrefix(s, "CO") {
				kept = append(kept, s)
			}
		}
		entry["aligned_COs"] = kept
	}
	return items
}
