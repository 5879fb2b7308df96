// Package policy pairs declared requirements with inventory records and
// classifies each pairing. One policy exists per engine and check type.
package policy

import (
	"encoding/binary"

	"github.com/google/uuid"

	"compliance/internal/metrics"
	"compliance/internal/report"
	"compliance/internal/requirement"
)

// Policy is one matching strategy: the dialect it reads and how it turns
// requirements plus records into verdicts.
type Policy interface {
	// Dialect returns the metrics dialect holding the records this policy matches.
	Dialect() metrics.Dialect
	// Categories returns the count categories the policy reports, all starting at zero.
	Categories() []report.Category
	// Evaluate classifies every item, in order, into acc.
	Evaluate(items []requirement.Item, records []metrics.Record, acc *report.Assembler) error
}

// IDSource produces per-entry correlation ids in [1000000000, 9999999999].
// Ids are not deterministic and carry no meaning.
type IDSource func() int64

const (
	minID  = 1_000_000_000
	idSpan = 9_000_000_000
)

// UUIDSource derives a correlation id from the random bits of a version 4 UUID.
func UUIDSource() int64 {
	u := uuid.New()
	n := binary.BigEndian.Uint64(u[8:])
	return minID + int64(n%idSpan)
}

// For returns the policy an engine applies to a check type.
// A nil ids uses UUIDSource.
func For(engine metrics.Engine, checkType metrics.CheckType, ids IDSource) (Policy, error) {
	if ids == nil {
		ids = UUIDSource
	}

	d, err := metrics.DialectFor(engine, checkType)
	if err != nil {
		return nil, err
	}

	switch d.Name {
	case metrics.LinuxSoftware.Name:
		return HashKeyed{IDs: ids}, nil
	case metrics.WindowsSoftware.Name:
		return NameKeyed{}, nil
	default:
		return UpdateRecord{IDs: ids}, nil
	}
}
