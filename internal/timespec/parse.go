package timespec

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse reads a timestamp in one of three forms:
//
//	"S"      whole seconds, e.g. "5" or "-2"
//	"S.F"    decimal seconds with up to 9 fractional digits, e.g. "1.5"
//	"S:N"    raw seconds and nanoseconds fields, e.g. "3:500000000"
//
// The decimal forms always produce a normalized timestamp. The raw form keeps
// the fields exactly as written so denormalized values can be expressed.
func Parse(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Timestamp{}, fmt.Errorf("parse timestamp: empty string")
	}

	if sec, nsec, ok := strings.Cut(s, ":"); ok {
		secVal, err := strconv.ParseInt(sec, 10, 64)
		if err != nil {
			return Timestamp{}, fmt.Errorf("parse timestamp %q: seconds: %w", s, err)
		}
		nsecVal, err := strconv.ParseInt(nsec, 10, 64)
		if err != nil {
			return Timestamp{}, fmt.Errorf("parse timestamp %q: nanoseconds: %w", s, err)
		}
		return Timestamp{Seconds: secVal, Nanoseconds: nsecVal}, nil
	}

	negative := strings.HasPrefix(s, "-")
	body := strings.TrimPrefix(strings.TrimPrefix(s, "-"), "+")
	if body == "" {
		return Timestamp{}, fmt.Errorf("parse timestamp %q: no digits", s)
	}

	whole, frac, _ := strings.Cut(body, ".")
	if whole == "" && frac == "" {
		return Timestamp{}, fmt.Errorf("parse timestamp %q: no digits", s)
	}
	if whole == "" {
		whole = "0"
	}
	sec, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return Timestamp{}, fmt.Errorf("parse timestamp %q: seconds: %w", s, err)
	}

	var nsec int64
	if frac != "" {
		if !allDigits(frac) {
			return Timestamp{}, fmt.Errorf("parse timestamp %q: invalid fraction", s)
		}
		if len(frac) > 9 {
			return Timestamp{}, fmt.Errorf("parse timestamp %q: more than 9 fractional digits", s)
		}
		padded := frac + strings.Repeat("0", 9-len(frac))
		nsec, err = strconv.ParseInt(padded, 10, 64)
		if err != nil {
			return Timestamp{}, fmt.Errorf("parse timestamp %q: fraction: %w", s, err)
		}
	}

	if sec < 0 {
		return Timestamp{}, fmt.Errorf("parse timestamp %q: misplaced sign", s)
	}
	if !negative {
		return Timestamp{Seconds: sec, Nanoseconds: nsec}, nil
	}
	if nsec == 0 {
		return Timestamp{Seconds: -sec}, nil
	}
	return Timestamp{Seconds: -sec - 1, Nanoseconds: NanosecondsPerSecond - nsec}, nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// MustParse is like Parse but panics on error. Intended for tests and
// constant tables.
func MustParse(s string) Timestamp {
	ts, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return ts
}
