package intake

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"
)

// Form identifies which landing-page form produced a submission.
type Form string

const (
	FormSignup   Form = "beta-signup"
	FormFeedback Form = "beta-feedback"
)

// SignupSource tags every enriched signup record.
const SignupSource = "beta-landing-page"

// Payload is a decoded request body. Numbers are kept as json.Number so a
// numeric zero can be told apart from an absent field.
type Payload map[string]any

// DecodePayload reads exactly one JSON object from r. Anything but
// whitespace after the object is an error.
func DecodePayload(r io.Reader) (Payload, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var p Payload
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("intake: decode payload: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("intake: decode payload: body is not a JSON object")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("intake: decode payload: unexpected data after JSON object")
	}
	return p, nil
}

// String returns the string form of a scalar field, or "" when absent.
func (p Payload) String(key string) string {
	return stringify(p[key])
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

// SignupPayload is the typed view of a beta signup body.
type SignupPayload struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	UseCase        string `json:"useCase"`
	WindowsVersion string `json:"windowsVersion"`
	Website        string `json:"website"`
}

// NewSignupPayload extracts the signup fields of a body that already passed
// ValidateSignup. A name or email that validated without being a string
// cannot be normalized and is rejected as an unexpected error.
func NewSignupPayload(p Payload) (SignupPayload, error) {
	var out SignupPayload
	fields := []struct {
		key string
		dst *string
	}{
		{"name", &out.Name},
		{"email", &out.Email},
		{"useCase", &out.UseCase},
		{"windowsVersion", &out.WindowsVersion},
	}
	for _, f := range fields {
		switch v := p[f.key].(type) {
		case nil:
		case string:
			*f.dst = v
		default:
			return SignupPayload{}, fmt.Errorf("intake: field %s has unexpected type %T", f.key, v)
		}
	}
	// The honeypot is checked on the raw payload; keep whatever the bot sent.
	out.Website = p.String("website")
	return out, nil
}

// Submission is an enriched record ready for delivery.
type Submission struct {
	Form       Form
	ReceivedAt time.Time
	Fields     map[string]any
}

// Value returns a field of the enriched record.
func (s Submission) Value(key string) any {
	return s.Fields[key]
}

// Row projects the record onto the given columns, in order. Missing columns
// become empty strings.
func (s Submission) Row(columns []string) []any {
	row := make([]any, len(columns))
	for i, col := range columns {
		if v, ok := s.Fields[col]; ok && v != nil {
			row[i] = stringify(v)
			continue
		}
		row[i] = ""
	}
	return row
}

// MarshalJSON encodes only the record fields; that is what sinks receive.
func (s Submission) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s.Fields); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
