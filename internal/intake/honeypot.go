package intake

import (
	"encoding/json"
	"math"
	"strconv"
)

// HoneypotField returns the hidden field bots tend to fill for a form.
func HoneypotField(form Form) string {
	if form == FormFeedback {
		return "company"
	}
	return "website"
}

// IsSpam reports whether the form's honeypot field carries a value. Spam is
// still answered with success so bots learn nothing.
func IsSpam(form Form, p Payload) bool {
	return truthy(p[HoneypotField(form)])
}

func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case bool:
		return val
	case json.Number:
		f, err := strconv.ParseFloat(val.String(), 64)
		if err != nil {
			return true
		}
		return f != 0 && !math.IsNaN(f)
	case float64:
		return val != 0 && !math.IsNaN(val)
	default:
		return true
	}
}
