package models

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Flag is a boolean that also accepts the integer and string encodings the
// device uses (record: 1, drum_motor: 0, state: "true").
type Flag bool

// UnmarshalJSON decodes true/false, numbers (non-zero is true), strings and null.
func (f *Flag) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch string(b) {
	case "", "null", "false":
		*f = false
		return nil
	case "true":
		*f = true
		return nil
	}

	if b[0] == '"' {
		s, err := strconv.Unquote(string(b))
		if err != nil {
			return fmt.Errorf("flag: %w", err)
		}
		v, err := ParseFlag(s)
		if err != nil {
			return err
		}
		*f = Flag(v)
		return nil
	}

	n, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("flag: invalid value %s", string(b))
	}
	*f = n != 0
	return nil
}

// ParseFlag converts the textual boolean forms sent by toggle controls.
func ParseFlag(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "t", "1":
		return true, nil
	case "no", "n", "false", "f", "0", "0.0", "", "none", "[]", "{}":
		return false, nil
	}
	return false, fmt.Errorf("flag: invalid value %q", s)
}
