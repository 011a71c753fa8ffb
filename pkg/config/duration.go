package config

import (
	"fmt"
	"strings"
	"time"

	iso8601 "github.com/senseyeio/duration"
	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that reads either ISO-8601 (PT30S) or Go (30s) syntax
type Duration time.Duration

var durationReference = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

func ParseDuration(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)

	if strings.HasPrefix(strings.ToUpper(value), "P") {
		isoDuration, err := iso8601.ParseISO8601(strings.ToUpper(value))
		if err != nil {
			return 0, fmt.Errorf("invalid ISO-8601 duration %q: %w", value, err)
		}

		return isoDuration.Shift(durationReference).Sub(durationReference), nil
	}

	return time.ParseDuration(value)
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var text string
	if err := value.Decode(&text); err != nil {
		return err
	}

	parsed, err := ParseDuration(text)
	if err != nil {
		return err
	}

	*d = Duration(parsed)
	return nil
}

func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
