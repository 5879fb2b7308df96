package policy

import (
	"strings"

	"compliance/internal/metrics"
	"compliance/internal/report"
	"compliance/internal/requirement"
)

// updateFields are required both on update requirements and on the
// installed records they may match.
var updateFields = []string{"title", "operation", "status"}

// UpdateRecord matches Windows update history by case-insensitive title
// substring. The first matching record decides: its operation and status
// must equal the requirement's, ignoring case.
type UpdateRecord struct {
	IDs IDSource
}

func (UpdateRecord) Dialect() metrics.Dialect { return metrics.WindowsUpdates }

func (UpdateRecord) Categories() []report.Category {
	return []report.Category{report.Compliant, report.NonCompliant, report.Missing}
}

func (p UpdateRecord) Evaluate(items []requirement.Item, records []metrics.Record, acc *report.Assembler) error {
	ids := p.IDs
	if ids == nil {
		ids = UUIDSource
	}

	for _, it := range items {
		// Incomplete requirements are left out of the report.
		if !it.Has(updateFields...) {
			continue
		}

		entry := report.UpdateEntry{
			Title:             it.String("title", ""),
			RequiredOperation: strings.ToLower(it.String("operation", "")),
			RequiredStatus:    strings.ToLower(it.String("status", "")),
			FoundOperation:    "missing",
			FoundStatus:       "missing",
			UniqueNumber:      ids(),
		}

		title := strings.ToLower(entry.Title)
		for _, rec := range records {
			if !rec.Has(updateFields...) {
				continue
			}
			if !strings.Contains(strings.ToLower(rec.Get("title")), title) {
				continue
			}
			entry.Found = true
			entry.FoundOperation = rec.Get("operation")
			entry.FoundStatus = rec.Get("status")
			entry.Compliant = strings.ToLower(entry.FoundOperation) == entry.RequiredOperation &&
				strings.ToLower(entry.FoundStatus) == entry.RequiredStatus
			break
		}

		switch {
		case !entry.Found:
			acc.Add(entry, report.Missing)
		case entry.Compliant:
			acc.Add(entry, report.Compliant)
		default:
			acc.Add(entry, report.NonCompliant)
		}
	}

	return nil
}
