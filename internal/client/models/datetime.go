package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// localDateTimeLayout is how the backend serialises timestamps: ISO-8601
// without a zone, optionally with fractional seconds.
const localDateTimeLayout = "2006-01-02T15:04:05"

var dateTimeLayouts = []string{time.RFC3339Nano, localDateTimeLayout, time.DateOnly}

// LocalDateTime is a server-assigned timestamp. Values without a zone are
// interpreted in the local time zone.
type LocalDateTime struct {
	time.Time
}

func (t *LocalDateTime) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		t.Time = time.Time{}
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date-time must be a string: %w", err)
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}

	for _, layout := range dateTimeLayouts {
		parsed, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unsupported date-time %q", s)
}

func (t LocalDateTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Local().Format(localDateTimeLayout))
}

// DateString renders the date part for list views; zero renders as "".
func (t LocalDateTime) DateString() string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(time.DateOnly)
}
