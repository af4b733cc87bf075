package catalog

import (
	"bytes"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Number is a numeric catalog field that tolerates the shapes the raw
// configuration arrives in: a plain number, or a locale-formatted string
// ("12,5" or "12.5"). A value that cannot be parsed is simply absent and the
// caller falls back to its default; resolving a catalog never fails.
type Number struct {
	value float64
	valid bool
}

// Num builds a present Number, mostly useful in tests and builtin defaults.
func Num(v float64) Number {
	return Number{value: v, valid: true}
}

// Or returns the parsed value, or def when the field was missing or malformed.
func (n Number) Or(def float64) float64 {
	if n.valid {
		return n.value
	}
	return def
}

// Valid reports whether the field carried a usable numeric value.
func (n Number) Valid() bool {
	return n.valid
}

func parseFlexible(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	// Decimal comma is common in the exported configurations.
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// UnmarshalJSON accepts numbers, strings and null.
func (n *Number) UnmarshalJSON(b []byte) error {
	*n = Number{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	s := string(b)
	if len(b) >= 2 && b[0] == '"' && b[len(b)-1] == '"' {
		var err error
		if s, err = strconv.Unquote(string(b)); err != nil {
			return nil
		}
	}
	if v, ok := parseFlexible(s); ok {
		*n = Number{value: v, valid: true}
	}
	return nil
}

// MarshalJSON writes the value back as a plain number; absent fields marshal
// as null so a round-tripped config stays mergeable.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(n.value, 'f', -1, 64)), nil
}

// UnmarshalYAML accepts scalar nodes of any tag, including quoted strings.
func (n *Number) UnmarshalYAML(node *yaml.Node) error {
	*n = Number{}
	if node.Kind != yaml.ScalarNode || node.Tag == "!!null" {
		return nil
	}
	if v, ok := parseFlexible(node.Value); ok {
		*n = Number{value: v, valid: true}
	}
	return nil
}
