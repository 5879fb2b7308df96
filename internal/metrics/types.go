package metrics

// Engine names one of the two compliance engines. Each engine reads its own
// metrics dialects.
type Engine string

const (
	EngineLinux   Engine = "linux"
	EngineWindows Engine = "windows"
)

// CheckType selects what is being checked: installed software or update history.
type CheckType string

const (
	CheckSoftware CheckType = "software"
	CheckUpdates  CheckType = "updates"
)

// Record is one inventory entry decoded from a metrics line.
// Records are built once per qualifying line and never mutated afterwards.
type Record map[string]string

// Get returns the value of a label, or "" if the record does not carry it.
func (r Record) Get(key string) string {
	return r[key]
}

// Has reports whether the record carries every one of the given labels.
func (r Record) Has(keys ...string) bool {
	for _, k := range keys {
		if _, ok := r[k]; !ok {
			return false
		}
	}
	return true
}

// Dialect describes one metrics flavor: the metric name that marks a data line,
// the labels such a line must carry, and how its labels become a Record.
type Dialect struct {
	Name     string
	Prefix   string   // metric name immediately followed by "{"
	Required []string // labels a line must carry to produce a record
	build    func(labels map[string]string) Record
}

// Build turns the labels of one line into a Record.
// Returns false if the line lacks any of the dialect's required labels.
func (d Dialect) Build(labels map[string]string) (Record, bool) {
	for _, k := range d.Required {
		if _, ok := labels[k]; !ok {
			return nil, false
		}
	}
	if d.build == nil {
		rec := make(Record, len(labels))
		for k, v := range labels {
			rec[k] = v
		}
		return rec, true
	}
	return d.build(labels), true
}
