package requirement

import (
	"fmt"

	"compliance/internal/metrics"
)

// ListField returns the document field holding the requirement list for a check type.
func ListField(checkType metrics.CheckType) string {
	if checkType == metrics.CheckSoftware {
		return "required_software"
	}
	return "required_updates"
}

// Classify resolves a raw requirements value into an Input.
// A mapping contributes the list stored under ListField(checkType); a mapping
// whose field is missing or not a list contributes nothing.
func Classify(value any, checkType metrics.CheckType) Input {
	if value == nil {
		return Input{Kind: KindAbsent}
	}

	if entries, ok := asSequence(value); ok {
		return Input{Kind: KindSequence, Entries: entries}
	}

	if doc, ok := asItem(value); ok {
		in := Input{Kind: KindMapping}
		if list, ok := asSequence(doc[ListField(checkType)]); ok {
			in.Entries = list
		}
		return in
	}

	return Input{Kind: KindOther}
}

// Items returns the mapping entries of the input in order.
// Entries that are not mappings are skipped.
func (in Input) Items() []Item {
	items := make([]Item, 0, len(in.Entries))
	for _, e := range in.Entries {
		if it, ok := asItem(e); ok {
			items = append(items, it)
		}
	}
	return items
}

// Normalize classifies value and returns its requirement items.
func Normalize(value any, checkType metrics.CheckType) []Item {
	return Classify(value, checkType).Items()
}

func asSequence(v any) ([]any, bool) {
	switch t := v.(type) {
	case []any:
		return t, true
	case []Item:
		out := make([]any, len(t))
		for i := range t {
			out[i] = t[i]
		}
		return out, true
	case []map[string]any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = t[i]
		}
		return out, true
	case []map[string]string:
		out := make([]any, len(t))
		for i := range t {
			out[i] = t[i]
		}
		return out, true
	}
	return nil, false
}

func asItem(v any) (Item, bool) {
	switch t := v.(type) {
	case Item:
		if t == nil {
			return nil, false
		}
		return t, true
	case map[string]any:
		if t == nil {
			return nil, false
		}
		return Item(t), true
	case map[string]string:
		if t == nil {
			return nil, false
		}
		it := make(Item, len(t))
		for k, val := range t {
			it[k] = val
		}
		return it, true
	case map[any]any:
		it := make(Item, len(t))
		for k, val := range t {
			it[fmt.Sprint(k)] = val
		}
		return it, true
	}
	return nil, false
}
