package api

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// FlexString holds a JSON scalar that may arrive as a string or a number.
// null and absent both decode to the empty string.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	// Numbers and other literals keep their source text.
	*f = FlexString(b)
	return nil
}

// String returns the raw text.
func (f FlexString) String() string {
	return string(f)
}

// IsSet reports whether a value was present.
func (f FlexString) IsSet() bool {
	return strings.TrimSpace(string(f)) != ""
}

// Float64 parses the value.
func (f FlexString) Float64() (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(string(f)), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Int64 parses the value, truncating any fractional part.
func (f FlexString) Int64() int64 {
	s := strings.TrimSpace(string(f))
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(v)
	}
	return 0
}
