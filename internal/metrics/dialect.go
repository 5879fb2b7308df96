package metrics

import "fmt"

// LinuxSoftware is the node-exporter style package inventory. Every label is
// kept and a composite "hashname" key (name-version) is derived.
var LinuxSoftware = Dialect{
	Name:     "linux_software",
	Prefix:   "linux_software_info{",
	Required: []string{"name", "version"},
	build: func(labels map[string]string) Record {
		rec := make(Record, len(labels)+1)
		for k, v := range labels {
			rec[k] = v
		}
		rec["hashname"] = HashName(labels["name"], labels["version"])
		return rec
	},
}

// WindowsSoftware is the windows_exporter installed-software inventory.
// The "displayname" label is exposed as "name".
var WindowsSoftware = Dialect{
	Name:     "windows_software",
	Prefix:   "windows_software_info{",
	Required: []string{"displayname", "version"},
	build: func(labels map[string]string) Record {
		return Record{
			"name":    labels["displayname"],
			"version": labels["version"],
		}
	},
}

// WindowsUpdates is the windows_exporter update history.
var WindowsUpdates = Dialect{
	Name:     "windows_updates",
	Prefix:   "windows_update_history{",
	Required: []string{"title", "operation", "status"},
	build: func(labels map[string]string) Record {
		kb, ok := labels["kb"]
		if !ok {
			kb = "none"
		}
		return Record{
			"title":     labels["title"],
			"operation": labels["operation"],
			"status":    labels["status"],
			"kb":        kb,
		}
	},
}

// HashName builds the composite key used to match Linux packages exactly.
func HashName(name, version string) string {
	return name + "-" + version
}

// DialectFor returns the dialect an engine reads for the given check type.
func DialectFor(engine Engine, checkType CheckType) (Dialect, error) {
	switch engine {
	case EngineLinux:
		if checkType == CheckSoftware {
			return LinuxSoftware, nil
		}
	case EngineWindows:
		switch checkType {
		case CheckSoftware:
			return WindowsSoftware, nil
		case CheckUpdates:
			return WindowsUpdates, nil
		}
	default:
		return Dialect{}, fmt.Errorf("%w: unknown engine '%s'", ErrUnsupportedCheckType, engine)
	}
	return Dialect{}, fmt.Errorf("%w: '%s' for engine '%s'", ErrUnsupportedCheckType, checkType, engine)
}
