package report

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Digest computes a SHA-256 fingerprint of a report's results and counts.
// Correlation ids and the timestamp are excluded, so two runs over the same
// inputs produce the same digest. Returns the hash prefixed with "sha256:".
func Digest(r Report) (string, error) {
	canonical, err := canonicalJSON(r)
	if err != nil {
		return "", err
	}
	hash := sha256.Sum256(canonical)
	return "sha256:" + hex.EncodeToString(hash[:]), nil
}

// canonicalJSON re-encodes the report through generic maps so keys are sorted,
// dropping the fields that differ between identical runs.
func canonicalJSON(r Report) ([]byte, error) {
	raw, err := json.Marshal(struct {
		Results []Entry `json:"results"`
		Counts  Counts  `json:"counts"`
	}{r.Results, r.Counts})
	if err != nil {
		return nil, err
	}

	var doc struct {
		Results []map[string]any `json:"results"`
		Counts  map[string]int   `json:"counts"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	for _, res := range doc.Results {
		delete(res, "unique_number")
	}
	if doc.Results == nil {
		doc.Results = []map[string]any{}
	}

	return json.Marshal(doc)
}
