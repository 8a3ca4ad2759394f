package models

import (
	"encoding/json"
	"strings"
)

// StringList is a []string that also accepts a single delimited string.
// Admin frontends send list fields either as a real JSON array, as a
// JSON-encoded array inside a multipart form value, or as a plain
// comma-separated string. Structured parse is attempted first, then
// comma-split-and-trim.
type StringList []string

func (s *StringList) UnmarshalJSON(b []byte) error {
	var arr []string
	if err := json.Unmarshal(b, &arr); err == nil {
		*s = arr
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	*s = splitAndTrim(str)
	return nil
}

// UnmarshalText handles form values (multipart create/update requests).
func (s *StringList) UnmarshalText(b []byte) error {
	var arr []string
	if err := json.Unmarshal(b, &arr); err == nil {
		*s = arr
		return nil
	}
	*s = splitAndTrim(string(b))
	return nil
}

func splitAndTrim(str string) []string {
	if strings.TrimSpace(str) == "" {
		return nil
	}
	parts := strings.Split(str, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}
