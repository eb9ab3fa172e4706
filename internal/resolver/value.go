package resolver

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// NotFound is resolved for keys that no source defines. It never parses as
// a number or boolean, so typed accessors fall through to their defaults.
const NotFound = "key not found anywhere"

// DefaultDelimiter separates list items
const DefaultDelimiter = ","

// Value is a resolved property value
type Value string

// Found reports whether the value came from a source rather than the sentinel
func (v Value) Found() bool {
	return v != NotFound
}

func (v Value) String() string {
	return string(v)
}

// Int parses the value as a base-10 integer with an optional sign, or
// returns def. Surrounding whitespace is not accepted.
func (v Value) Int(def int) int {
	n, err := strconv.Atoi(string(v))
	if err != nil {
		return def
	}

	return n
}

// Bool accepts true/1/yes/on and false/0/no/off in any case, or returns def
func (v Value) Bool(def bool) bool {
	switch strings.ToLower(strings.TrimSpace(string(v))) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return def
	}
}

// Float parses the value as a 64-bit float, or returns def. The accepted
// forms are those of a JVM double literal: decimal or hexadecimal (with a
// binary exponent) digits, an optional f/F/d/D suffix, and the exact words
// NaN and Infinity. Control characters and spaces around it are ignored.
func (v Value) Float(def float64) float64 {
	f, ok := parseDouble(string(v))
	if !ok {
		return def
	}

	return f
}

func parseDouble(s string) (float64, bool) {
	s = strings.TrimFunc(s, func(r rune) bool { return r <= ' ' })

	body := s
	negative := false
	if body != "" && (body[0] == '+' || body[0] == '-') {
		negative = body[0] == '-'
		body = body[1:]
	}

	switch body {
	case "NaN":
		return math.NaN(), true
	case "Infinity":
		if negative {
			return math.Inf(-1), true
		}

		return math.Inf(1), true
	case "":
		return 0, false
	}

	// strconv also takes inf, nan and digit separators
	if body[0] != '.' && (body[0] < '0' || body[0] > '9') {
		return 0, false
	}

	if strings.Contains(body, "_") {
		return 0, false
	}

	if last := body[len(body)-1]; last == 'f' || last == 'F' || last == 'd' || last == 'D' {
		hex := strings.HasPrefix(body, "0x") || strings.HasPrefix(body, "0X")
		if !hex || strings.ContainsAny(body, "pP") {
			s = s[:len(s)-1]
		}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Out of range saturates to ±Inf or 0
		if errors.Is(err, strconv.ErrRange) {
			return f, true
		}

		return 0, false
	}

	return f, true
}

// List splits the value on delim, trimming items and dropping empty ones.
// The sentinel and blank values give an empty list.
func (v Value) List(delim string) []string {
	if delim == "" {
		delim = DefaultDelimiter
	}

	items := make([]string, 0)
	if !v.Found() || strings.TrimSpace(string(v)) == "" {
		return items
	}

	for _, item := range strings.Split(string(v), delim) {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}

	return items
}
