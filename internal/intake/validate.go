package intake

import (
	"regexp"
)

// emailPattern is local@domain.tld with no whitespace or extra '@'. The
// whitespace class matches the browser's \s, which is wider than RE2's.
var emailPattern = regexp.MustCompile(`^[^\s\x0B\p{Z}\x{FEFF}@]+@[^\s\x0B\p{Z}\x{FEFF}@]+\.[^\s\x0B\p{Z}\x{FEFF}@]+$`)

const (
	minNameLength = 1
	maxNameLength = 100
)

var (
	// UseCases lists the accepted signup use cases.
	UseCases = []string{"general", "coding", "writing", "accessibility", "other"}

	// WindowsVersions lists the accepted signup Windows versions.
	WindowsVersions = []string{"windows-11", "windows-10", "not-sure"}

	// FeedbackRequiredFields is checked in this order; the first gap wins.
	FeedbackRequiredFields = []string{
		"name",
		"email",
		"installEase",
		"groqSetupEase",
		"onboardingHelpfulness",
		"mode",
		"transcriptionAccuracy",
		"transcriptionSpeed",
		"textCleanup",
		"nps",
		"favoriteThing",
		"topImprovement",
		"testimonialConsent",
	}
)

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// SignupRequiredFields is checked in this order; the first gap wins.
var SignupRequiredFields = []string{"name", "email", "useCase", "windowsVersion"}

// ValidateSignup checks a decoded signup body and returns the first failure.
// Values of the wrong JSON type are judged like the browser would: 0 and
// false are missing, a number is never a valid use case, and so on.
func ValidateSignup(p Payload) error {
	for _, field := range SignupRequiredFields {
		if !truthy(p[field]) {
			return invalid(field, "All fields are required.")
		}
	}

	// Length is measured on the raw input, in UTF-16 code units like the form's own counter.
	if n, ok := lengthOf(p["name"]); ok && (n < minNameLength || n > maxNameLength) {
		return invalid("name", "Please enter a valid name.")
	}
	if !ValidEmail(textOf(p["email"])) {
		return invalid("email", "Please enter a valid email address.")
	}
	if !oneOf(UseCases, p["useCase"]) {
		return invalid("useCase", "Please select a valid use case.")
	}
	if !oneOf(WindowsVersions, p["windowsVersion"]) {
		return invalid("windowsVersion", "Please select a valid Windows version.")
	}
	return nil
}

// ValidateFeedback checks a feedback payload and returns the first failure.
func ValidateFeedback(p Payload) error {
	for _, field := range FeedbackRequiredFields {
		if !present(p[field]) {
			return invalid(field, "Missing required field: "+field)
		}
	}
	if !ValidEmail(p.String("email")) {
		return invalid("email", "Invalid email address")
	}
	return nil
}

// present treats null, false and "" as missing. Zero, numeric or "0", counts.
func present(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case bool:
		return val
	default:
		return true
	}
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
