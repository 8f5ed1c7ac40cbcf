package intake

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode/utf16"
)

// textOf renders a decoded JSON value the way the browser's String() does:
// numbers in shortest decimal form, arrays joined by commas and objects as
// "[object Object]". Validation and NPS parsing see exactly that text.
func textOf(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case json.Number:
		f, err := val.Float64()
		if err != nil && !math.IsInf(f, 0) {
			return val.String()
		}
		return numberText(f)
	case float64:
		return numberText(val)
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			if item != nil {
				parts[i] = textOf(item)
			}
		}
		return strings.Join(parts, ",")
	case map[string]any:
		return "[object Object]"
	default:
		return stringify(val)
	}
}

func numberText(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	// Exponent without zero padding: 1e+21, 1.5e-7.
	s := strconv.FormatFloat(f, 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	return mant + "e" + sign + digits
}

// lengthOf is the .length of a string (UTF-16 units) or array. Other values
// have no length and report ok=false.
func lengthOf(v any) (n int, ok bool) {
	switch val := v.(type) {
	case string:
		return len(utf16.Encode([]rune(val))), true
	case []any:
		return len(val), true
	default:
		return 0, false
	}
}

// oneOf reports strict membership: only a string can match.
func oneOf(list []string, v any) bool {
	s, ok := v.(string)
	return ok && contains(list, s)
}
