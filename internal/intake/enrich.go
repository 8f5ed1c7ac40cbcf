package intake

import (
	"strconv"
	"strings"
	"time"
)

// Clock returns the current time. Tests freeze it.
type Clock func() time.Time

// TimestampLayout matches ISO-8601 with millisecond precision in UTC.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

const (
	NPSPromoter  = "promoter"
	NPSPassive   = "passive"
	NPSDetractor = "detractor"
)

// Enricher turns validated payloads into submissions.
type Enricher struct {
	now Clock
}

// NewEnricher creates an enricher. A nil clock uses time.Now.
func NewEnricher(clock Clock) *Enricher {
	if clock == nil {
		clock = time.Now
	}
	return &Enricher{now: clock}
}

// EnrichSignup normalizes contact fields and stamps the record.
func (e *Enricher) EnrichSignup(p SignupPayload) Submission {
	now := e.now().UTC()
	return Submission{
		Form:       FormSignup,
		ReceivedAt: now,
		Fields: map[string]any{
			"name":           strings.TrimSpace(p.Name),
			"email":          strings.ToLower(strings.TrimSpace(p.Email)),
			"useCase":        p.UseCase,
			"windowsVersion": p.WindowsVersion,
			"timestamp":      now.Format(TimestampLayout),
			"source":         SignupSource,
		},
	}
}

// EnrichFeedback copies every submitted field, drops the honeypot and adds
// the NPS category, submission time and user agent.
func (e *Enricher) EnrichFeedback(p Payload, userAgent string) Submission {
	now := e.now().UTC()
	fields := make(map[string]any, len(p)+3)
	for k, v := range p {
		fields[k] = v
	}
	fields["npsCategory"] = NPSCategory(p["nps"])
	fields["submittedAt"] = now.Format(TimestampLayout)
	fields["userAgent"] = userAgent
	delete(fields, HoneypotField(FormFeedback))

	return Submission{
		Form:       FormFeedback,
		ReceivedAt: now,
		Fields:     fields,
	}
}

// NPSCategory buckets a Net Promoter Score. Numbers are read in their
// normalized decimal form (1e1 is 10); anything that does not start with an
// integer is a detractor.
func NPSCategory(raw any) string {
	score, ok := parseLeadingInt(textOf(raw))
	switch {
	case !ok:
		return NPSDetractor
	case score >= 9:
		return NPSPromoter
	case score >= 7:
		return NPSPassive
	default:
		return NPSDetractor
	}
}

// parseLeadingInt reads an optionally signed run of leading digits, ignoring
// surrounding whitespace and any trailing text ("9.5" -> 9, "10/10" -> 10).
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// Overflow: only the sign matters for bucketing.
		if s[0] == '-' {
			return -1, true
		}
		return 10, true
	}
	return n, true
}
