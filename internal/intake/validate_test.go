package intake

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSignup() SignupPayload {
	return SignupPayload{
		Name:           "Jo",
		Email:          "jo@x.com",
		UseCase:        "coding",
		WindowsVersion: "windows-11",
	}
}

func validFeedback() Payload {
	p, err := DecodePayload(strings.NewReader(`{
		"name": "Sam",
		"email": "sam@example.com",
		"installEase": 4,
		"groqSetupEase": 3,
		"onboardingHelpfulness": 5,
		"mode": "push-to-talk",
		"transcriptionAccuracy": 4,
		"transcriptionSpeed": 5,
		"textCleanup": 4,
		"nps": "9",
		"favoriteThing": "speed",
		"topImprovement": "more languages",
		"testimonialConsent": "yes"
	}`))
	if err != nil {
		panic(err)
	}
	return p
}

func signupBody() Payload {
	return Payload{
		"name":           "Jo",
		"email":          "jo@x.com",
		"useCase":        "coding",
		"windowsVersion": "windows-11",
	}
}

func TestValidateSignup_Valid(t *testing.T) {
	assert.NoError(t, ValidateSignup(signupBody()))
}

func TestValidateSignup_Failures(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		value   any
		message string
	}{
		{"missing name", "name", "", "All fields are required."},
		{"missing email", "email", nil, "All fields are required."},
		{"missing use case", "useCase", "", "All fields are required."},
		{"missing windows version", "windowsVersion", "", "All fields are required."},
		{"zero name", "name", json.Number("0"), "All fields are required."},
		{"false email", "email", false, "All fields are required."},
		{"name too long", "name", strings.Repeat("a", 101), "Please enter a valid name."},
		{"empty name list", "name", []any{}, "Please enter a valid name."},
		{"bad email", "email", "jo@x", "Please enter a valid email address."},
		{"numeric email", "email", json.Number("5"), "Please enter a valid email address."},
		{"object email", "email", map[string]any{"to": "jo@x.com"}, "Please enter a valid email address."},
		{"bad use case", "useCase", "gaming", "Please select a valid use case."},
		{"numeric use case", "useCase", json.Number("5"), "Please select a valid use case."},
		{"bad windows version", "windowsVersion", "windows-7", "Please select a valid Windows version."},
		{"boolean windows version", "windowsVersion", true, "Please select a valid Windows version."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := signupBody()
			p[tt.field] = tt.value
			err := ValidateSignup(p)
			require.Error(t, err)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestValidateSignup_LooseValuesThatPass(t *testing.T) {
	// A number has no length and a one-item list reads as its element, so
	// both pass validation and are left for NewSignupPayload to refuse.
	p := signupBody()
	p["name"] = json.Number("42")
	p["email"] = []any{"jo@x.com"}
	require.NoError(t, ValidateSignup(p))

	_, err := NewSignupPayload(p)
	assert.Error(t, err)
}

func TestValidateSignup_FirstFailureWins(t *testing.T) {
	p := Payload{"name": strings.Repeat("a", 200), "email": "nope", "useCase": "x", "windowsVersion": "y"}
	err := ValidateSignup(p)
	require.Error(t, err)
	assert.Equal(t, "Please enter a valid name.", err.Error())
}

func TestValidateSignup_NameLengthBoundaries(t *testing.T) {
	p := signupBody()
	p["name"] = strings.Repeat("a", 100)
	assert.NoError(t, ValidateSignup(p))

	// Length is checked before trimming, so padding counts.
	p["name"] = " " + strings.Repeat("a", 100)
	assert.Error(t, ValidateSignup(p))

	// Astral characters count as two code units.
	p["name"] = strings.Repeat("😀", 50)
	assert.NoError(t, ValidateSignup(p))
	p["name"] = strings.Repeat("😀", 51)
	assert.Error(t, ValidateSignup(p))
}

func TestValidEmail(t *testing.T) {
	valid := []string{"jo@x.com", "first.last@sub.example.co.uk", "a+b@c.d"}
	invalid := []string{"", "jo", "jo@x", "jo@@x.com", "jo @x.com", "jo@x .com", "jo@x.com\n", "jo @x.com", "@x.com", "jo@.com"}
	for _, e := range valid {
		assert.True(t, ValidEmail(e), e)
	}
	for _, e := range invalid {
		assert.False(t, ValidEmail(e), e)
	}
}

func TestValidateFeedback_Valid(t *testing.T) {
	assert.NoError(t, ValidateFeedback(validFeedback()))
}

func TestValidateFeedback_EveryRequiredField(t *testing.T) {
	for _, field := range FeedbackRequiredFields {
		t.Run(field, func(t *testing.T) {
			for _, missing := range []any{nil, "", false, "absent"} {
				p := validFeedback()
				if missing == "absent" {
					delete(p, field)
				} else {
					p[field] = missing
				}
				err := ValidateFeedback(p)
				require.Error(t, err)
				assert.Equal(t, "Missing required field: "+field, err.Error())
			}
		})
	}
}

func TestValidateFeedback_ZeroIsPresent(t *testing.T) {
	p, err := DecodePayload(strings.NewReader(`{"installEase": 0}`))
	require.NoError(t, err)

	fb := validFeedback()
	fb["installEase"] = p["installEase"]
	fb["nps"] = "0"
	assert.NoError(t, ValidateFeedback(fb))
}

func TestValidateFeedback_InvalidEmail(t *testing.T) {
	p := validFeedback()
	p["email"] = "not-an-email"
	err := ValidateFeedback(p)
	require.Error(t, err)
	assert.Equal(t, "Invalid email address", err.Error())
	assert.True(t, IsValidationError(err))
}

func TestValidateFeedback_MissingFieldBeforeEmail(t *testing.T) {
	p := validFeedback()
	p["email"] = "broken"
	delete(p, "mode")
	err := ValidateFeedback(p)
	require.Error(t, err)
	assert.Equal(t, "Missing required field: mode", err.Error())
}
