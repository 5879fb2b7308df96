package report

import "time"

// Report timestamps are local wall-clock ISO-8601 with no zone. The
// microseconds are left out when they are zero.
const (
	TimestampLayout        = "2006-01-02T15:04:05.000000"
	TimestampLayoutSeconds = "2006-01-02T15:04:05"
)

// FormatTimestamp renders t in local time the way report timestamps are written.
func FormatTimestamp(t time.Time) string {
	t = t.Local()
	if t.Nanosecond()/int(time.Microsecond) == 0 {
		return t.Format(TimestampLayoutSeconds)
	}
	return t.Format(TimestampLayout)
}

// Assembler accumulates verdicts in requirement order along with their
// category counts. Results and counts are updated together.
type Assembler struct {
	results  []Entry
	outcomes []Category
	counts   Counts
}

// NewAssembler returns an assembler whose counts start with the given
// categories at zero.
func NewAssembler(categories ...Category) *Assembler {
	counts := make(Counts, len(categories))
	for _, c := range categories {
		counts[c] = 0
	}
	return &Assembler{counts: counts}
}

// Add records one verdict.
func (a *Assembler) Add(e Entry, c Category) {
	a.results = append(a.results, e)
	a.outcomes = append(a.outcomes, c)
	a.counts[c]++
}

// Len returns the number of verdicts recorded so far.
func (a *Assembler) Len() int {
	return len(a.results)
}

// Finalize wraps the accumulated verdicts with a timestamp taken from now.
func (a *Assembler) Finalize(now time.Time) Report {
	results := a.results
	if results == nil {
		results = []Entry{}
	}
	counts := make(Counts, len(a.counts))
	for k, v := range a.counts {
		counts[k] = v
	}
	return Report{
		Results:   results,
		Counts:    counts,
		Timestamp: FormatTimestamp(now),
		Outcomes:  a.outcomes,
	}
}

// Passed reports whether no requirement is non-compliant or missing.
func (r Report) Passed() bool {
	return r.Counts[NonCompliant] == 0 && r.Counts[Missing] == 0
}

// Total returns the sum of all category counts.
func (r Report) Total() int {
	n := 0
	for _, v := range r.Counts {
		n += v
	}
	return n
}
