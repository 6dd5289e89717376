package util

import (
	"strconv"
	"time"
)

// MustParseUint converts a string to uint, returning 0 on failure.
func MustParseUint(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 32)
	return uint(id)
}

// ParseDateParam accepts either a bare date or RFC3339; nil when empty or
// unparseable.
func ParseDateParam(s string) *time.Time {
	if s == "" {
		return nil
	}
	if t, err := time.ParseInLocation(DateFormat, s, time.Local); err == nil {
		return &t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t
	}
	return nil
}
