package requirement

import "fmt"

// Kind tags the shape of a raw requirements value.
type Kind int

const (
	KindAbsent   Kind = iota // no value supplied
	KindSequence             // a list of requirement entries
	KindMapping              // a document holding the list under required_software / required_updates
	KindOther                // any other scalar; treated as no requirements
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "other"
	}
}

// Input is a raw requirements value classified once at the boundary.
type Input struct {
	Kind    Kind
	Entries []any // candidate entries in input order; non-mapping ones are dropped by Items
}

// Item is one declared requirement. It is read-only input.
type Item map[string]any

// Has reports whether the item declares every one of the given fields.
func (it Item) Has(keys ...string) bool {
	for _, k := range keys {
		if _, ok := it[k]; !ok {
			return false
		}
	}
	return true
}

// String returns a field rendered as text, or def if the field is absent.
// Scalars decoded from YAML (numbers, booleans) are formatted with fmt.Sprint,
// so `version: 1.2` reads as "1.2". A null field reads as "".
func (it Item) String(key, def string) string {
	v, ok := it[key]
	if !ok {
		return def
	}
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

// Optional returns a field rendered as text, or nil when it is absent or null.
func (it Item) Optional(key string) *string {
	if v, ok := it[key]; !ok || v == nil {
		return nil
	}
	s := it.String(key, "")
	return &s
}
