package model

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ── Scalar ───────────────────────────────────────────────────────────────────

// Scalar is a form value that may arrive as a JSON number or a string ("12",
// "12.5", "500mg"). The raw text is kept for display; Decimal parses it the way
// a browser's parseFloat would and yields zero for anything non-numeric.
type Scalar string

func (s *Scalar) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*s = ""
	case b[0] == '"':
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = Scalar(str)
	case bytes.Equal(b, []byte("true")) || bytes.Equal(b, []byte("false")):
		*s = ""
	default:
		*s = Scalar(b)
	}
	return nil
}

func (s Scalar) MarshalJSON() ([]byte, error) {
	if s == "" {
		return []byte("null"), nil
	}
	if _, err := strconv.ParseFloat(string(s), 64); err == nil && json.Valid([]byte(s)) {
		return []byte(s), nil
	}
	return json.Marshal(string(s))
}

func (s Scalar) String() string { return string(s) }

// Decimal returns the numeric value of s, zero when it does not start with a number.
func (s Scalar) Decimal() decimal.Decimal { return ParseNumber(string(s)) }

// IsZero reports whether s is empty or parses to zero (JS falsiness for form numbers).
func (s Scalar) IsZero() bool { return s.Decimal().IsZero() }

// ScalarOf builds a Scalar from a decimal.
func ScalarOf(d decimal.Decimal) Scalar { return Scalar(d.String()) }

var leadingNumber = regexp.MustCompile(`^[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?`)

// ParseNumber converts a loosely typed field value into a decimal. Strings are
// parsed from their leading numeric prefix; anything else yields zero.
func ParseNumber(v any) decimal.Decimal {
	switch n := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return n
	case Scalar:
		return ParseNumber(string(n))
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(n)
	case float32:
		return ParseNumber(float64(n))
	case int:
		return decimal.NewFromInt(int64(n))
	case int32:
		return decimal.NewFromInt(int64(n))
	case int64:
		return decimal.NewFromInt(n)
	case json.Number:
		return ParseNumber(string(n))
	case string:
		m := leadingNumber.FindString(strings.TrimSpace(n))
		if m == "" {
			return decimal.Zero
		}
		d, err := decimal.NewFromString(m)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

// ── Timestamp ────────────────────────────────────────────────────────────────

// Timestamp accepts every creation-time shape the store has produced over time:
// Firestore-style {"seconds":…,"nanoseconds":…} objects, RFC 3339 or plain date
// strings, and epoch milliseconds. Unparsable values decode to the zero time.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	t.Time = time.Time{}
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	switch b[0] {
	case '{':
		var fs struct {
			Seconds     *int64 `json:"seconds"`
			Nanoseconds int64  `json:"nanoseconds"`
			LegacySecs  *int64 `json:"_seconds"`
		}
		if err := json.Unmarshal(b, &fs); err != nil {
			return nil
		}
		switch {
		case fs.Seconds != nil:
			t.Time = time.Unix(*fs.Seconds, fs.Nanoseconds).UTC()
		case fs.LegacySecs != nil:
			t.Time = time.Unix(*fs.LegacySecs, 0).UTC()
		}
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err == nil {
			t.Time = ParseTime(s)
		}
	default:
		if ms, err := strconv.ParseFloat(string(b), 64); err == nil {
			t.Time = time.UnixMilli(int64(ms)).UTC()
		}
	}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}

// Epoch returns milliseconds since the Unix epoch, 0 for the zero time.
func (t Timestamp) Epoch() int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

// ParseTime parses a date or date-time string; the zero time means unparsable.
func ParseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC()
		}
	}
	return time.Time{}
}
