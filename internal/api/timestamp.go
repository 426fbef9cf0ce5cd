package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Layouts accepted for textual timestamps, tried in order.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// nowFunc is swapped in tests.
var nowFunc = time.Now

// Timestamp is a point in time that tolerates the encodings the backend
// has used historically. Decoding tries a string first; if the value is
// not a string it is read as a number of Unix seconds. A string that
// matches no known layout decodes to the current time instead of failing.
// Encoding always produces RFC 3339 in UTC.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if parsed, ok := parseTimestamp(s); ok {
			t.Time = parsed
		} else {
			t.Time = nowFunc()
		}
		return nil
	}

	var secs float64
	if err := json.Unmarshal(data, &secs); err != nil {
		return fmt.Errorf("timestamp: expected string or number, got %s", data)
	}
	whole := int64(secs)
	frac := int64((secs - float64(whole)) * float64(time.Second))
	t.Time = time.Unix(whole, frac).UTC()
	return nil
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// NullableDate is a calendar date that may be absent. It accepts a full
// ISO-8601 timestamp or a bare YYYY-MM-DD string, and decodes anything
// else as absent.
type NullableDate struct {
	Time  time.Time
	Valid bool
}

const dateLayout = "2006-01-02"

// NewDate returns a valid NullableDate for t.
func NewDate(t time.Time) NullableDate {
	return NullableDate{Time: t, Valid: true}
}

func (d NullableDate) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(d.Time.Format(dateLayout))
}

func (d *NullableDate) UnmarshalJSON(data []byte) error {
	*d = NullableDate{}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	if parsed, ok := parseTimestamp(s); ok {
		*d = NewDate(parsed)
		return nil
	}
	if parsed, err := time.Parse(dateLayout, s); err == nil {
		*d = NewDate(parsed)
	}
	return nil
}

// String returns the date as YYYY-MM-DD, or "never" when absent.
func (d NullableDate) String() string {
	if !d.Valid {
		return "never"
	}
	return d.Time.Format(dateLayout)
}
