package nuclide

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	// KindAbsent marks an empty or missing field.
	KindAbsent Kind = iota
	// KindInteger marks a field that parsed as a base-10 int64.
	KindInteger
	// KindFloat marks a field that parsed as a float64.
	KindFloat
	// KindText marks a field that is not numeric.
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is a coerced table cell. The zero Value is Absent.
//
// Values compare with == on the tagged content, so Int(0), Float(0) and
// Absent() are three different values. That property makes Value usable as
// a map key for level grouping.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

// Absent returns the empty value.
func Absent() Value { return Value{} }

// Int wraps an integer.
func Int(v int64) Value { return Value{kind: KindInteger, i: v} }

// Float wraps a floating-point number.
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }

// Text wraps a non-numeric string.
func Text(s string) Value { return Value{kind: KindText, s: s} }

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether v is the empty value.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// Int returns the integer payload.
func (v Value) Int() (int64, bool) { return v.i, v.kind == KindInteger }

// Float returns the float payload.
func (v Value) Float() (float64, bool) { return v.f, v.kind == KindFloat }

// Text returns the text payload.
func (v Value) Text() (string, bool) { return v.s, v.kind == KindText }

// Number returns the numeric payload of an Integer or Float value.
func (v Value) Number() (float64, bool) {
	switch v.kind {
	case KindInteger:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	default:
		return 0, false
	}
}

// Equal reports tagged equality.
func (v Value) Equal(o Value) bool { return v == o }

// String returns the literal form of v.
func (v Value) String() string { return v.Literal() }

// Literal renders v for the Maxima list: null, a quoted string, or a number.
// Text is quoted as-is; embedded quotes are not escaped.
func (v Value) Literal() string {
	switch v.kind {
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return formatFloat(v.f)
	case KindText:
		return `"` + v.s + `"`
	default:
		return nullLiteral
	}
}

const nullLiteral = "null"

// Coerce classifies a raw cell. Empty input is Absent. Input containing a
// decimal point or an exponent marker must parse as a float, anything else
// as an int64; whatever fails to parse is kept verbatim as Text.
func Coerce(raw string) Value {
	if raw == "" {
		return Absent()
	}
	trimmed := strings.TrimSpace(raw)
	if strings.ContainsAny(raw, ".eE") {
		if f, ok := parseFloat(trimmed); ok {
			return Float(f)
		}
		return Text(raw)
	}
	if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return Int(i)
	}
	return Text(raw)
}

func parseFloat(s string) (float64, bool) {
	if isHexLiteral(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Overflow still yields a usable ±Inf.
		if errors.Is(err, strconv.ErrRange) && math.IsInf(f, 0) {
			return f, true
		}
		return 0, false
	}
	return f, true
}

func isHexLiteral(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// formatFloat produces the shortest representation that parses back to f,
// using fixed notation with a mandatory fraction for decimal exponents in
// [-4, 16) and exponent notation otherwise (0.105, 100.0, 1e-05, 1e+16).
func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	sci := strconv.FormatFloat(f, 'e', -1, 64)
	exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if err == nil && (exp < -4 || exp >= 16) {
		return sci
	}
	fixed := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(fixed, ".") {
		fixed += ".0"
	}
	return fixed
}

// ParseLiteral reads back a scalar produced by Literal. Numerals are
// re-coerced, so Literal and ParseLiteral round-trip every Integer, Text and
// finite Float value.
func ParseLiteral(lit string) (Value, error) {
	switch {
	case lit == nullLiteral:
		return Absent(), nil
	case len(lit) >= 2 && strings.HasPrefix(lit, `"`) && strings.HasSuffix(lit, `"`):
		return Text(lit[1 : len(lit)-1]), nil
	}
	v := Coerce(lit)
	if v.kind == KindText || v.kind == KindAbsent {
		return Value{}, fmt.Errorf("not a scalar literal: %q", lit)
	}
	return v, nil
}

// FormatList renders values as a bracketed, comma-separated list.
func FormatList(values []Value) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(v.Literal())
	}
	b.WriteByte(']')
	return b.String()
}

// FormatNested renders a list of lists.
func FormatNested(values [][]Value) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, inner := range values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(FormatList(inner))
	}
	b.WriteByte(']')
	return b.String()
}
