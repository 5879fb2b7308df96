package policy

import (
	"compliance/internal/metrics"
	"compliance/internal/report"
	"compliance/internal/requirement"
	"compliance/internal/version"
)

// NameKeyed matches Windows software by exact display name, first match
// wins, then orders the versions. Compliance means equal versions.
type NameKeyed struct{}

func (NameKeyed) Dialect() metrics.Dialect { return metrics.WindowsSoftware }

func (NameKeyed) Categories() []report.Category {
	return []report.Category{report.Compliant, report.NonCompliant, report.Missing, report.NameMatch}
}

func (NameKeyed) Evaluate(items []requirement.Item, records []metrics.Record, acc *report.Assembler) error {
	for _, it := range items {
		entry := report.VersionEntry{
			Name:             it.String("name", ""),
			RequiredVersion:  it.String("version", "0"),
			InstalledVersion: "missing",
		}

		for _, rec := range records {
			if rec.Get("name") == entry.Name {
				entry.InstalledVersion = rec.Get("version")
				entry.Found = true
				break
			}
		}

		if !entry.Found {
			acc.Add(entry, report.Missing)
			continue
		}

		if version.IsUnknown(entry.RequiredVersion) || version.IsUnknown(entry.InstalledVersion) {
			entry.NameMatch = true
			acc.Add(entry, report.NameMatch)
			continue
		}

		c, err := version.Compare(entry.InstalledVersion, entry.RequiredVersion)
		if err != nil {
			return err
		}
		if c == 0 {
			entry.Compliant = true
			acc.Add(entry, report.Compliant)
		} else {
			acc.Add(entry, report.NonCompliant)
		}
	}

	return nil
}
