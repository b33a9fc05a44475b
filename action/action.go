package action

import (
	"fmt"
	"strconv"
	"strings"
)

// Param is a single keyed parameter of an action string.
// The zero value is an omitted parameter.
type Param struct {
	// Key is the parameter name as EPLAN expects it, without the
	// leading slash (e.g. "PROJECTNAME").
	Key string

	value string
	set   bool
}

// String returns a string-valued parameter. An empty value yields an
// omitted parameter; optional arguments are passed through unchanged.
func String(key, value string) Param {
	if value == "" {
		return Param{Key: key}
	}
	return Param{Key: key, value: quote(value), set: true}
}

// Bool returns a boolean parameter encoded as 1 or 0.
func Bool(key string, value bool) Param {
	v := "0"
	if value {
		v = "1"
	}
	return Param{Key: key, value: v, set: true}
}

// BoolOpt returns a boolean parameter, omitted when value is nil.
// Useful for tri-state flags where the engine default should apply.
func BoolOpt(key string, value *bool) Param {
	if value == nil {
		return Param{Key: key}
	}
	return Bool(key, *value)
}

// Int returns an integer parameter emitted verbatim.
func Int(key string, value int) Param {
	return Param{Key: key, value: strconv.Itoa(value), set: true}
}

// Float returns a floating-point parameter emitted verbatim.
func Float(key string, value float64) Param {
	return Param{Key: key, value: strconv.FormatFloat(value, 'g', -1, 64), set: true}
}

// Indexed expands a list value into 1-based indexed scalar parameters
// (KEY1, KEY2, ...), contiguous and in input order. Empty elements are
// kept so indexes stay gap-free; callers should filter beforehand if
// an element is genuinely absent.
func Indexed(key string, values []string) []Param {
	params := make([]Param, 0, len(values))
	for i, v := range values {
		params = append(params, Param{
			Key:   fmt.Sprintf("%s%d", key, i+1),
			value: quote(v),
			set:   true,
		})
	}
	return params
}

// Build encodes an action name and its parameters into the wire command
// string. Omitted parameters do not appear; the rest follow insertion order.
func Build(name string, params ...Param) string {
	var b strings.Builder
	b.WriteString(name)
	for _, p := range params {
		if !p.set {
			continue
		}
		b.WriteString(" /")
		b.WriteString(p.Key)
		b.WriteString(":")
		b.WriteString(p.value)
	}
	return b.String()
}

// quote wraps values containing whitespace in double quotes.
// Already-quoted values pass through, so quoting is idempotent.
func quote(v string) string {
	if strings.ContainsAny(v, " \t") && !strings.HasPrefix(v, `"`) {
		return `"` + v + `"`
	}
	return v
}
