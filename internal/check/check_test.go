package check

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compliance/internal/metrics"
	"compliance/internal/report"
	"compliance/internal/version"
)

const linuxMetrics = `# HELP linux_software_info Installed packages.
linux_software_info{name="pkg",version="1.0"} 1
linux_software_info{name="curl",version="7.81.0"} 1
linux_software_info{name="curl",version="8.5.0"} 1
node_uname_info{name="pkg",version="9.9"} 1
`

const windowsMetrics = `windows_software_info{displayname="7-Zip",version="23.01"} 1
windows_software_info{displayname="Agent",version="unknown"} 1
windows_update_history{title="2024 Security Update KB123",operation="install",status="success",kb="KB123"} 1
windows_update_history{title="Defender Update",operation="install",status="failed"} 1
`

var fixedTime = time.Date(2024, 5, 6, 7, 8, 9, 123456000, time.Local)

func testOptions() Options {
	return Options{
		Clock: func() time.Time { return fixedTime },
		IDs:   func() int64 { return 1000000001 },
	}
}

func TestLinux_Outcomes(t *testing.T) {
	value := []any{
		map[string]any{"name": "pkg", "version": "1.0", "hashname": "pkg-1.0"},
		map[string]any{"name": "curl", "version": "7.0", "hashname": "curl-7.0"},
		"not-a-mapping",
		map[string]any{"name": "absent", "version": "1", "hashname": "absent-1"},
	}
	opts := testOptions()
	opts.MetricsContent = linuxMetrics

	r, err := Linux(value, opts)
	require.NoError(t, err)

	require.Len(t, r.Results, 3)
	assert.Equal(t, report.Counts{report.Compliant: 1, report.NonCompliant: 1, report.Missing: 1}, r.Counts)
	assert.Equal(t, "2024-05-06T07:08:09.123456", r.Timestamp)

	hash := "pkg-1.0"
	assert.Equal(t, report.SoftwareEntry{
		HashName: &hash, Name: "pkg", RequiredVersion: "1.0", InstalledVersion: "1.0",
		Compliant: true, Found: true, UniqueNumber: 1000000001,
	}, r.Results[0])
	assert.Equal(t, "7.81.0, 8.5.0", r.Results[1].(report.SoftwareEntry).InstalledVersion)
	assert.Equal(t, "Unknown", r.Results[2].(report.SoftwareEntry).InstalledVersion)
}

func TestLinux_RequirementsDocument(t *testing.T) {
	value := map[string]any{
		"required_software": []any{map[string]any{"name": "pkg", "version": "1.0", "hashname": "pkg-1.0"}},
		"required_updates":  []any{map[string]any{"title": "ignored"}},
	}
	opts := testOptions()
	opts.MetricsContent = linuxMetrics

	r, err := Linux(value, opts)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Counts[report.Compliant])
	assert.Len(t, r.Results, 1)
}

func TestLinux_UpdatesUnsupported(t *testing.T) {
	opts := testOptions()
	opts.CheckType = metrics.CheckUpdates

	_, err := Linux(nil, opts)
	require.ErrorIs(t, err, ErrCheckFailed)
	assert.ErrorIs(t, err, metrics.ErrUnsupportedCheckType)
}

func TestWindows_Software(t *testing.T) {
	value := []any{
		map[string]any{"name": "7-Zip", "version": "23.01.0"},
		map[string]any{"name": "7-Zip", "version": "24.00"},
		map[string]any{"name": "Agent", "version": "2.0"},
		map[string]any{"name": "Firefox", "version": "1.0"},
	}
	opts := testOptions()
	opts.MetricsContent = windowsMetrics

	r, err := Windows(value, opts)
	require.NoError(t, err)

	assert.Equal(t, report.Counts{
		report.Compliant: 1, report.NonCompliant: 1, report.Missing: 1, report.NameMatch: 1,
	}, r.Counts)
	assert.Equal(t, []report.Category{report.Compliant, report.NonCompliant, report.NameMatch, report.Missing}, r.Outcomes)
}

func TestWindows_Updates(t *testing.T) {
	value := map[string]any{
		"required_updates": []any{
			map[string]any{"title": "Security Update", "operation": "install", "status": "success"},
			map[string]any{"title": "defender", "operation": "install", "status": "success"},
			map[string]any{"title": "Feature Update", "operation": "install", "status": "success"},
			map[string]any{"title": "No Status", "operation": "install"},
		},
	}
	opts := testOptions()
	opts.MetricsContent = windowsMetrics
	opts.CheckType = metrics.CheckUpdates

	r, err := Windows(value, opts)
	require.NoError(t, err)

	require.Len(t, r.Results, 3)
	assert.Equal(t, report.Counts{report.Compliant: 1, report.NonCompliant: 1, report.Missing: 1}, r.Counts)
	assert.True(t, r.Results[0].(report.UpdateEntry).Compliant)
	assert.Equal(t, "failed", r.Results[1].(report.UpdateEntry).FoundStatus)
	assert.Equal(t, "missing", r.Results[2].(report.UpdateEntry).FoundOperation)
}

func TestRun_MetricsPath(t *testing.T) {
	opts := testOptions()
	opts.MetricsPath = filepath.Join("..", "metrics", "testdata", "linux.prom")

	r, err := Linux([]any{map[string]any{"name": "openssl", "version": "3.0.2", "hashname": "openssl-3.0.2"}}, opts)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Counts[report.Compliant])
}

func TestRun_ContentWinsOverPath(t *testing.T) {
	opts := testOptions()
	opts.MetricsContent = linuxMetrics
	opts.MetricsPath = filepath.Join(t.TempDir(), "absent.prom")

	_, err := Linux(nil, opts)
	require.NoError(t, err)
}

func TestRun_PathNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.prom")
	opts := testOptions()
	opts.MetricsPath = path

	r, err := Windows([]any{map[string]any{"name": "x"}}, opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCheckFailed)
	assert.ErrorIs(t, err, metrics.ErrSourceNotFound)
	assert.Contains(t, err.Error(), "compliance check failed")
	assert.Contains(t, err.Error(), path)
	assert.Nil(t, r.Results, "no partial report on failure")
}

func TestRun_ComparisonFailure(t *testing.T) {
	opts := testOptions()
	opts.MetricsContent = `windows_software_info{displayname="Tool",version=""} 1`

	_, err := Windows([]any{map[string]any{"name": "Tool", "version": "1.0"}}, opts)
	require.ErrorIs(t, err, ErrCheckFailed)
	assert.ErrorIs(t, err, version.ErrComparison)

	var cerr *CheckError
	require.True(t, errors.As(err, &cerr))
	assert.Contains(t, cerr.Error(), "version comparison error between")
}

func TestRun_ReportJSON(t *testing.T) {
	opts := testOptions()
	opts.MetricsContent = windowsMetrics

	r, err := Windows([]any{map[string]any{"name": "7-Zip", "version": "23.01"}}, opts)
	require.NoError(t, err)

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.ElementsMatch(t, []string{"results", "counts", "timestamp"}, keys(doc))

	results := doc["results"].([]any)
	require.Len(t, results, 1)
	assert.Equal(t, map[string]any{
		"name": "7-Zip", "required_version": "23.01", "installed_version": "23.01",
		"compliant": true, "found": true, "name_match": false,
	}, results[0])
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// Property 6: Absent Metrics Source Marks Everything Missing
// For any requirement list, with no metrics source every mapping requirement
// SHALL be missing and counts.missing SHALL equal the number of mappings.
func TestProperty6_AbsentSourceAllMissing(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("every mapping requirement is missing", prop.ForAll(
		func(names []string, junk int) bool {
			var value []any
			for _, n := range names {
				value = append(value, map[string]any{"name": n, "version": "1", "hashname": n + "-1"})
			}
			for i := 0; i < junk; i++ {
				value = append(value, i)
			}

			for _, fn := range []func(any, Options) (report.Report, error){Linux, Windows} {
				r, err := fn(value, testOptions())
				if err != nil {
					return false
				}
				if r.Counts[report.Missing] != len(names) || len(r.Results) != len(names) {
					return false
				}
				if r.Total() != len(r.Results) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Identifier()),
		gen.IntRange(0, 3),
	))

	properties.TestingRun(t)
}

// Property 7: Checks Are Idempotent
// Running the same inputs twice SHALL yield the same results and counts;
// only correlation ids and the timestamp may differ.
func TestProperty7_Idempotence(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("digest is stable across runs", prop.ForAll(
		func(name, ver string) bool {
			value := []any{map[string]any{"name": name, "version": ver, "hashname": name + "-" + ver}}
			opts := Options{MetricsContent: linuxMetrics}

			first, err := Linux(value, opts)
			if err != nil {
				return false
			}
			second, err := Linux(value, opts)
			if err != nil {
				return false
			}

			d1, err1 := report.Digest(first)
			d2, err2 := report.Digest(second)
			return err1 == nil && err2 == nil && d1 == d2
		},
		gen.OneConstOf("pkg", "curl", "absent"),
		gen.OneConstOf("1.0", "7.81.0", "2.0"),
	))

	properties.TestingRun(t)
}
