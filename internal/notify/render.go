package notify

import (
	"fmt"
	"sort"
	"strings"

	pongo2 "github.com/flosch/pongo2/v6"

	"github.com/quicksay/quicksay-web/internal/intake"
)

var submissionHTML = pongo2.Must(pongo2.FromString(`<h2>New {{ form }} submission</h2>
<table cellpadding="4">
{% for row in rows %}<tr><th align="left">{{ row.key }}</th><td>{{ row.value }}</td></tr>
{% endfor %}</table>
`))

// FormatSubmission renders the record as "key: value" lines sorted by key.
func FormatSubmission(sub intake.Submission) string {
	keys, values := sortedFields(sub)

	var b strings.Builder
	fmt.Fprintf(&b, "Form: %s\n", sub.Form)
	for i, k := range keys {
		fmt.Fprintf(&b, "%s: %v\n", k, values[i])
	}
	return b.String()
}

// RenderSubmissionHTML renders the record as an escaped HTML table.
func RenderSubmissionHTML(sub intake.Submission) (string, error) {
	keys, values := sortedFields(sub)
	rows := make([]map[string]any, len(keys))
	for i, k := range keys {
		rows[i] = map[string]any{"key": k, "value": values[i]}
	}
	out, err := submissionHTML.Execute(pongo2.Context{"form": string(sub.Form), "rows": rows})
	if err != nil {
		return "", fmt.Errorf("notify: render submission: %w", err)
	}
	return out, nil
}

func sortedFields(sub intake.Submission) ([]string, []any) {
	keys := make([]string, 0, len(sub.Fields))
	for k := range sub.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, sub.Row(keys)
}
