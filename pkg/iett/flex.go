package iett

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// FlexFloat decodes a JSON number that the upstream may also send as a string,
// an empty string or null. Anything unparseable becomes 0.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	*f = 0

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	text := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		text = strings.Replace(strings.TrimSpace(s), ",", ".", 1)
	}

	if value, err := strconv.ParseFloat(text, 64); err == nil && !math.IsNaN(value) && !math.IsInf(value, 0) {
		*f = FlexFloat(value)
	}

	return nil
}

// FlexString decodes a JSON string that the upstream may also send as a number, a bool or null
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	*s = ""

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '"' {
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return err
		}
		*s = FlexString(value)
		return nil
	}

	if data[0] == '{' || data[0] == '[' {
		return nil
	}

	*s = FlexString(data)
	return nil
}
