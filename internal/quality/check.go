// Package quality audits knowledgebase entries against a fixed editorial
// checklist of 32 checks in 8 categories and aggregates the outcome into a
// scored report.
//
// The checklist is deterministic: the same document always yields the same
// report. Checks that cannot be decided mechanically are reported as manual
// review items; they count as passed but are tagged so that callers can tell
// them apart from verified outcomes.
package quality

import (
	"encoding/json"
	"fmt"
)

// Kind tells whether a check outcome was computed or deferred to a human.
type Kind int

// Check kinds.
const (
	Automated Kind = iota
	ManualReview
)

// ManualReviewMessage is attached to every manual review check.
const ManualReviewMessage = "Requires manual review"

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case Automated:
		return "automated"
	case ManualReview:
		return "manual_review"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// MarshalJSON encodes the kind by name.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes a kind name.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "automated":
		*k = Automated
	case "manual_review":
		*k = ManualReview
	default:
		return fmt.Errorf("quality: unknown check kind %q", s)
	}
	return nil
}

// Check is the outcome of one checklist item.
type Check struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Kind        Kind   `json:"kind"`
	Passed      bool   `json:"passed"`
	Message     string `json:"message,omitempty"`
	Suggestion  string `json:"suggestion,omitempty"`
}

// IsManual reports whether the check was not mechanically decided.
func (c Check) IsManual() bool {
	return c.Kind == ManualReview
}

// Category names in checklist order.
const (
	CategoryIntent      = "Intent & Audience"
	CategoryScope       = "Scope & Boundaries"
	CategoryStructure   = "Structure & Flow"
	CategoryConnections = "Concept Connections"
	CategoryTechnical   = "Technical Discipline"
	CategoryPractical   = "Practical Value"
	CategoryConsistency = "Consistency & Trust Signals"
	CategoryFuture      = "Future-Proofing"
)

// Categories lists the checklist categories in order.
var Categories = []string{
	CategoryIntent,
	CategoryScope,
	CategoryStructure,
	CategoryConnections,
	CategoryTechnical,
	CategoryPractical,
	CategoryConsistency,
	CategoryFuture,
}
