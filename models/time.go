package models

import (
	"fmt"
	"strings"
	"time"
)

// fallbackLayout matches backend timestamps written without a timezone offset
// (e.g. "2026-08-29T12:34:56.123456"). They are assumed UTC.
const fallbackLayout = "2006-01-02T15:04:05.999999999"

// Time is a timestamp decoded from the API. Decoding tries strict ISO-8601
// with optional fractional seconds first, then the zone-less fallback layout.
type Time struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Time) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		t.Time = time.Time{}
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t.Time = parsed
		return nil
	}
	if parsed, err := time.ParseInLocation(fallbackLayout, s, time.UTC); err == nil {
		t.Time = parsed
		return nil
	}
	return fmt.Errorf("invalid date format: %q", s)
}

// MarshalJSON implements json.Marshaler, encoding as ISO-8601 UTC.
func (t Time) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.UTC().Format(time.RFC3339Nano) + `"`), nil
}
