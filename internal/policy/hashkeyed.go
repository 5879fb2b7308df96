package policy

import (
	"strings"

	"compliance/internal/metrics"
	"compliance/internal/report"
	"compliance/internal/requirement"
)

// HashKeyed matches Linux packages by their composite name-version key.
// A requirement whose key is absent but whose name is installed is
// non-compliant; an unknown name is missing.
type HashKeyed struct {
	IDs IDSource
}

func (HashKeyed) Dialect() metrics.Dialect { return metrics.LinuxSoftware }

func (HashKeyed) Categories() []report.Category {
	return []report.Category{report.Compliant, report.NonCompliant, report.Missing}
}

func (p HashKeyed) Evaluate(items []requirement.Item, records []metrics.Record, acc *report.Assembler) error {
	ids := p.IDs
	if ids == nil {
		ids = UUIDSource
	}

	byHash := make(map[string]metrics.Record, len(records))
	byName := make(map[string][]string)
	for _, rec := range records {
		byHash[rec.Get("hashname")] = rec
		name := rec.Get("name")
		byName[name] = append(byName[name], rec.Get("version"))
	}

	for _, it := range items {
		entry := report.SoftwareEntry{
			HashName:         it.Optional("hashname"),
			Name:             it.String("name", ""),
			RequiredVersion:  it.String("version", "0"),
			InstalledVersion: "Unknown",
			UniqueNumber:     ids(),
		}

		var installed metrics.Record
		if entry.HashName != nil {
			installed = byHash[*entry.HashName]
		}

		switch {
		case installed != nil:
			entry.Compliant = true
			entry.Found = true
			entry.InstalledVersion = installed.Get("version")
			acc.Add(entry, report.Compliant)
		case byName[entry.Name] != nil:
			entry.InstalledVersion = strings.Join(byName[entry.Name], ", ")
			acc.Add(entry, report.NonCompliant)
		default:
			acc.Add(entry, report.Missing)
		}
	}

	return nil
}
