package report

// Category is the outcome class of one requirement.
type Category string

const (
	Compliant    Category = "compliant"
	NonCompliant Category = "non_compliant"
	Missing      Category = "missing"
	NameMatch    Category = "name_match" // name found, version unknown on one side
)

// Counts tallies results per category.
type Counts map[Category]int

// Entry is one per-requirement verdict. Concrete entries carry the fields
// their policy reports; the accessors serve the text reporters.
type Entry interface {
	Subject() string   // package name or update title
	Required() string  // what the requirement asks for
	Installed() string // what the inventory holds
}

// SoftwareEntry is the verdict of the hash-keyed software policy.
type SoftwareEntry struct {
	HashName         *string `json:"hashname"` // nil when the requirement names none
	Name             string  `json:"name"`
	RequiredVersion  string  `json:"required_version"`
	InstalledVersion string  `json:"installed_version"`
	Compliant        bool    `json:"compliant"`
	Found            bool    `json:"found"`
	UniqueNumber     int64   `json:"unique_number"` // correlation id, no semantic meaning
}

func (e SoftwareEntry) Subject() string {
	if e.Name == "" && e.HashName != nil {
		return *e.HashName
	}
	return e.Name
}

func (e SoftwareEntry) Required() string  { return e.RequiredVersion }
func (e SoftwareEntry) Installed() string { return e.InstalledVersion }

// VersionEntry is the verdict of the name-keyed software policy.
type VersionEntry struct {
	Name             string `json:"name"`
	RequiredVersion  string `json:"required_version"`
	InstalledVersion string `json:"installed_version"`
	Compliant        bool   `json:"compliant"`
	Found            bool   `json:"found"`
	NameMatch        bool   `json:"name_match"`
}

func (e VersionEntry) Subject() string   { return e.Name }
func (e VersionEntry) Required() string  { return e.RequiredVersion }
func (e VersionEntry) Installed() string { return e.InstalledVersion }

// UpdateEntry is the verdict of the update-record policy.
type UpdateEntry struct {
	Title             string `json:"title"`
	RequiredOperation string `json:"required_operation"`
	RequiredStatus    string `json:"required_status"`
	FoundOperation    string `json:"found_operation"`
	FoundStatus       string `json:"found_status"`
	UniqueNumber      int64  `json:"unique_number"`
	Compliant         bool   `json:"compliant"`
	Found             bool   `json:"found"`
}

func (e UpdateEntry) Subject() string { return e.Title }

func (e UpdateEntry) Required() string {
	return e.RequiredOperation + "/" + e.RequiredStatus
}

func (e UpdateEntry) Installed() string {
	return e.FoundOperation + "/" + e.FoundStatus
}

// Report is the outcome of one compliance check.
type Report struct {
	Results   []Entry    `json:"results"`
	Counts    Counts     `json:"counts"`
	Timestamp string     `json:"timestamp"`
	Outcomes  []Category `json:"-"` // category of Results[i]
}
