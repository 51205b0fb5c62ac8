// Package validation implements required-field checks over decoded JSON
// request payloads.
package validation

import "fmt"

// RequireFields returns one message per missing required field, in the
// order the fields are declared. A field is missing when it is absent
// from the payload or its value is null, an empty string, zero, or
// false. All missing fields are reported together; there is no
// short-circuit.
func RequireFields(payload map[string]any, fields []string) []string {
	var messages []string
	for _, field := range fields {
		if !present(payload[field]) {
			messages = append(messages, fmt.Sprintf("Please provide a value for %q", field))
		}
	}
	return messages
}

func present(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	case float64:
		// JSON numbers decode to float64
		return v != 0
	default:
		return true
	}
}
