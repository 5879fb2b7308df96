package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// FormatCLI formats a report for terminal output.
// Every result is listed with its outcome, followed by the counts.
func FormatCLI(r Report) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Compliance report (%s):\n\n", r.Timestamp))

	for i, e := range r.Results {
		c := r.outcome(i)
		switch c {
		case Compliant:
			sb.WriteString(fmt.Sprintf("  ✓ %s: %s\n", e.Subject(), e.Installed()))
		case NonCompliant:
			sb.WriteString(fmt.Sprintf("  ✗ %s: required %s, installed %s\n", e.Subject(), e.Required(), e.Installed()))
		case Missing:
			sb.WriteString(fmt.Sprintf("  ✗ %s: required %s, not installed\n", e.Subject(), e.Required()))
		case NameMatch:
			sb.WriteString(fmt.Sprintf("  ~ %s: installed %s, version not verifiable (required %s)\n", e.Subject(), e.Installed(), e.Required()))
		default:
			sb.WriteString(fmt.Sprintf("  ? %s\n", e.Subject()))
		}
	}

	if len(r.Results) > 0 {
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("Summary: %s\n", formatCounts(r.Counts)))
	return sb.String()
}

// FormatCI formats failing results as GitHub Actions annotations.
// Non-compliant and missing requirements are errors; name-only matches are warnings.
func FormatCI(r Report) string {
	var sb strings.Builder

	for i, e := range r.Results {
		var msg string
		level := "error"
		switch r.outcome(i) {
		case NonCompliant:
			msg = fmt.Sprintf("Compliance violation: %s requires %s, found %s", e.Subject(), e.Required(), e.Installed())
		case Missing:
			msg = fmt.Sprintf("Compliance violation: %s requires %s, not installed", e.Subject(), e.Required())
		case NameMatch:
			level = "warning"
			msg = fmt.Sprintf("Compliance unverified: %s found with version %s (required %s)", e.Subject(), e.Installed(), e.Required())
		default:
			continue
		}
		sb.WriteString(fmt.Sprintf("::%s::%s\n", level, msg))
	}

	if r.Passed() {
		sb.WriteString(fmt.Sprintf("\n✓ Compliance check passed: %s\n", formatCounts(r.Counts)))
	} else {
		sb.WriteString(fmt.Sprintf("\n❌ Compliance check failed: %s\n", formatCounts(r.Counts)))
	}
	return sb.String()
}

// FormatJSON formats a report as indented JSON.
func FormatJSON(r Report) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (r Report) outcome(i int) Category {
	if i < len(r.Outcomes) {
		return r.Outcomes[i]
	}
	return ""
}

// countOrder fixes the display order of the well-known categories.
var countOrder = map[Category]int{Compliant: 0, NonCompliant: 1, Missing: 2, NameMatch: 3}

func formatCounts(c Counts) string {
	keys := make([]Category, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		oi, iok := countOrder[keys[i]]
		oj, jok := countOrder[keys[j]]
		if iok != jok {
			return iok
		}
		if iok && oi != oj {
			return oi < oj
		}
		return keys[i] < keys[j]
	})

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, c[k]))
	}
	return strings.Join(parts, " ")
}
