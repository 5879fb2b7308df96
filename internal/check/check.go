// Package check runs a compliance check: it decodes the installed inventory,
// matches the declared requirements against it and assembles the report.
package check

import (
	"log/slog"
	"time"

	"compliance/internal/logging"
	"compliance/internal/metrics"
	"compliance/internal/policy"
	"compliance/internal/report"
	"compliance/internal/requirement"
)

// Options configures one check.
type Options struct {
	MetricsContent string            // literal metrics text; wins over MetricsPath
	MetricsPath    string            // path to a metrics file
	CheckType      metrics.CheckType // "software" when empty

	Clock  func() time.Time // report timestamp source, time.Now when nil
	IDs    policy.IDSource  // correlation ids, policy.UUIDSource when nil
	Logger *slog.Logger     // debug output, discarded when nil
}

// Linux checks requirements against linux_software_info metrics.
// Only the "software" check type is supported; "updates" fails with a
// *CheckError wrapping metrics.ErrUnsupportedCheckType instead of producing
// an empty report.
func Linux(value any, opts Options) (report.Report, error) {
	return Run(metrics.EngineLinux, value, opts)
}

// Windows checks requirements against windows_software_info or
// windows_update_history metrics, depending on the check type.
func Windows(value any, opts Options) (report.Report, error) {
	return Run(metrics.EngineWindows, value, opts)
}

// Run performs a check with the named engine. Every failure is returned as a
// *CheckError; no partial report is produced.
func Run(engine metrics.Engine, value any, opts Options) (report.Report, error) {
	r, err := run(engine, value, opts)
	if err != nil {
		return report.Report{}, &CheckError{Err: err}
	}
	return r, nil
}

func run(engine metrics.Engine, value any, opts Options) (report.Report, error) {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	checkType := opts.CheckType
	if checkType == "" {
		checkType = metrics.CheckSoftware
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	p, err := policy.For(engine, checkType, opts.IDs)
	if err != nil {
		return report.Report{}, err
	}

	in := requirement.Classify(value, checkType)
	items := in.Items()
	log.Debug("normalized requirements",
		"engine", engine,
		"check_type", checkType,
		"input", in.Kind.String(),
		"entries", len(in.Entries),
		"items", len(items))

	records, err := loadRecords(p.Dialect(), opts)
	if err != nil {
		return report.Report{}, err
	}
	log.Debug("parsed metrics", "dialect", p.Dialect().Name, "records", len(records))

	acc := report.NewAssembler(p.Categories()...)
	if err := p.Evaluate(items, records, acc); err != nil {
		return report.Report{}, err
	}

	return acc.Finalize(clock()), nil
}

// loadRecords decodes the inventory from literal content, else from the
// path. With neither, the inventory is empty.
func loadRecords(d metrics.Dialect, opts Options) ([]metrics.Record, error) {
	switch {
	case opts.MetricsContent != "":
		return metrics.ParseContent(opts.MetricsContent, d)
	case opts.MetricsPath != "":
		return metrics.ParseFile(opts.MetricsPath, d)
	}
	return nil, nil
}
