package bridge

import (
	"strconv"
	"strings"

	"github.com/replkit/engined/src/engined/internal/wire"
)

// _reservedNames are engine-internal bindings never shown in the variable view.
var _reservedNames = map[string]struct{}{
	"Base": {},
	"Core": {},
	"Main": {},
}

// StripTypePrefix removes a leading element-type annotation from a textual
// array value: "Float32[1.0, 2.0]" becomes "[1.0, 2.0]". Values that already
// start with the bracket, and values with no bracket at all, pass through
// unchanged.
func StripTypePrefix(value string) string {
	open := strings.IndexByte(value, '[')
	if open <= 0 {
		return value
	}
	if !isTypePrefix(value[:open]) {
		return value
	}
	return value[open:]
}

// isTypePrefix reports whether s looks like a type annotation such as
// "Float32" or "Vector{Float64, 2}". Spaces are only allowed inside a
// parameter list, so prose containing brackets is left alone.
func isTypePrefix(s string) bool {
	first := rune(s[0])
	if !(first >= 'A' && first <= 'Z' || first >= 'a' && first <= 'z') {
		return false
	}

	depth := 0
	for _, r := range s {
		switch {
		case r == '{':
			depth++
		case r == '}':
			if depth == 0 {
				return false
			}
			depth--
		case r == ' ' || r == ',':
			if depth == 0 {
				return false
			}
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '.':
		default:
			return false
		}
	}
	return depth == 0
}

// NormalizeVariables filters out engine-internal bindings and rewrites each
// remaining entry into display form: type-prefixed values are stripped and
// array-shaped values get a dimension annotation on their type.
func NormalizeVariables(variables []wire.Variable) []wire.Variable {
	out := make([]wire.Variable, 0, len(variables))
	for _, v := range variables {
		if v.Name == "" || strings.HasPrefix(v.Name, "#") {
			continue
		}
		if _, reserved := _reservedNames[v.Name]; reserved {
			continue
		}

		v.Value = StripTypePrefix(v.Value)
		if dims := arrayDims(v.Value); dims != "" && v.Type != "" && !strings.Contains(v.Type, dims) {
			v.Type = dims + " " + v.Type
		}
		out = append(out, v)
	}
	return out
}

// arrayDims derives a dimension annotation from a bracketed textual value:
// "[1, 2, 3]" yields "3-element", "[1 2; 3 4]" yields "2×2". Non-array values
// yield "".
func arrayDims(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) < 2 || trimmed[0] != '[' || trimmed[len(trimmed)-1] != ']' {
		return ""
	}
	inner := strings.TrimSpace(trimmed[1 : len(trimmed)-1])
	if inner == "" {
		return "0-element"
	}

	// Rows separated by semicolons indicate a tabular value.
	if strings.Contains(inner, ";") {
		rows := strings.Split(inner, ";")
		cols := len(strings.Fields(strings.TrimSpace(rows[0])))
		if cols == 0 {
			return ""
		}
		return strconv.Itoa(len(rows)) + "×" + strconv.Itoa(cols)
	}

	count := 1 + countTopLevelCommas(inner)
	return strconv.Itoa(count) + "-element"
}

// countTopLevelCommas counts commas outside nested brackets, braces, and
// string literals.
func countTopLevelCommas(s string) int {
	depth, count := 0, 0
	inString := false
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case inString:
			if c == '"' && (i == 0 || s[i-1] != '\\') {
				inString = false
			}
		case c == '"':
			inString = true
		case c == '[' || c == '{' || c == '(':
			depth++
		case c == ']' || c == '}' || c == ')':
			if depth > 0 {
				depth--
			}
		case c == ',' && depth == 0:
			count++
		}
	}
	return count
}
