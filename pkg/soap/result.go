package soap

import (
	"encoding/json"
	"strings"
)

// Order matters, &amp; has to go first
var entityReplacer = []struct{ entity, value string }{
	{"&amp;", "&"},
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&quot;", `"`},
	{"&apos;", "'"},
}

// UnescapeEntities reverses the five predefined XML entities
func UnescapeEntities(s string) string {
	for _, r := range entityReplacer {
		s = strings.ReplaceAll(s, r.entity, r.value)
	}

	return s
}

// ExtractResult returns the unescaped text between <{method}Result> and </{method}Result>.
// ok is false when the result element is not in the body.
func ExtractResult(body string, method string) (string, bool) {
	startTag := "<" + method + "Result>"
	endTag := "</" + method + "Result>"

	startIndex := strings.Index(body, startTag)
	if startIndex == -1 {
		return "", false
	}
	startIndex += len(startTag)

	endIndex := strings.Index(body[startIndex:], endTag)
	if endIndex == -1 {
		return "", false
	}

	return UnescapeEntities(body[startIndex : startIndex+endIndex]), true
}

// DecodeResult extracts the JSON payload of method from a SOAP response body and decodes it
// as an array of T. A missing result element, an empty payload or a literal null all mean
// "no data" and return an empty slice.
func DecodeResult[T any](body string, method string) ([]T, error) {
	records := []T{}

	payload, ok := ExtractResult(body, method)
	if !ok {
		return records, nil
	}

	payload = strings.TrimSpace(payload)
	if payload == "" || payload == "null" {
		return records, nil
	}

	if err := json.Unmarshal([]byte(payload), &records); err != nil {
		return []T{}, &ExtractionError{Method: method, Err: err}
	}

	if records == nil {
		records = []T{}
	}

	return records, nil
}
