package types

import (
	"bytes"
	"strconv"
	"strings"
	"time"
)

// The backend API is inconsistent about scalar encodings: numeric fields
// arrive as numbers or strings, booleans as bools, numbers or "1"/"true",
// and timestamps in a handful of layouts. These types are the single decode
// boundary for that looseness. They never fail: anything unparseable decodes
// to the zero value, matching the degrade-to-default contract of the
// normalization core.

// FlexInt decodes a JSON number, numeric string, or null into an int.
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	s := unquote(data)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		*f = FlexInt(n)
		return nil
	}
	// Some feeds encode integers as "3.0"
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		*f = FlexInt(v)
		return nil
	}
	*f = 0
	return nil
}

// Int returns the value as a plain int.
func (f FlexInt) Int() int { return int(f) }

// FlexFloat decodes a JSON number, numeric string, or null into a float64.
type FlexFloat float64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	s := unquote(data)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		*f = FlexFloat(v)
		return nil
	}
	*f = 0
	return nil
}

// Float64 returns the value as a plain float64.
func (f FlexFloat) Float64() float64 { return float64(f) }

// FlexBool decodes a JSON bool, the numbers 1/0, or the string forms
// "1", "0", "true", "false" into a bool. Anything else is false.
type FlexBool bool

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexBool) UnmarshalJSON(data []byte) error {
	switch strings.ToLower(unquote(data)) {
	case "1", "true":
		*f = true
	default:
		*f = false
	}
	return nil
}

// Bool returns the value as a plain bool.
func (f FlexBool) Bool() bool { return bool(f) }

// timeLayouts are tried in order when decoding wire timestamps.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FlexTime decodes an ISO-8601-ish timestamp string or null. Unparseable
// input decodes to the zero time.
type FlexTime struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexTime) UnmarshalJSON(data []byte) error {
	s := unquote(data)
	if s == "" || s == "null" {
		f.Time = time.Time{}
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			f.Time = t
			return nil
		}
	}
	f.Time = time.Time{}
	return nil
}

// Ptr returns the time as a pointer, nil for the zero time.
func (f FlexTime) Ptr() *time.Time {
	if f.IsZero() {
		return nil
	}
	t := f.Time
	return &t
}

// unquote strips surrounding double quotes and whitespace from a raw JSON
// scalar.
func unquote(data []byte) string {
	s := string(bytes.TrimSpace(data))
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return strings.TrimSpace(s)
}
