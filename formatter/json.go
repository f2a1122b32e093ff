package formatter

import "encoding/json"

// BuildJSON serializes v as indented JSON with a trailing newline
func BuildJSON(v any) ([]byte, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}
