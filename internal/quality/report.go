package quality

import (
	"math"

	"github.com/starford/kbase/internal/models"
)

// UntitledTitle is reported for entries without a title.
const UntitledTitle = "Untitled"

// Report is the checklist outcome for one entry.
type Report struct {
	Slug   string  `json:"slug"`
	Title  string  `json:"title"`
	Checks []Check `json:"checks"`
	Score  int     `json:"score"`
	Passed int     `json:"passed"`
	Total  int     `json:"total"`
}

// CategoryScore summarises the checks of one category.
type CategoryScore struct {
	Name   string  `json:"name"`
	Checks []Check `json:"checks"`
	Passed int     `json:"passed"`
	Total  int     `json:"total"`
	Score  int     `json:"score"`
}

// Item describes one checklist entry independent of any document.
type Item struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Suggestion  string `json:"suggestion"`
	Kind        Kind   `json:"kind"`
}

// Checklist returns the checklist items in report order.
func Checklist() []Item {
	items := make([]Item, len(checklist))
	for i, r := range checklist {
		kind := Automated
		if r.manual() {
			kind = ManualReview
		}
		items[i] = Item{ID: r.id, Category: r.category, Description: r.description, Suggestion: r.suggestion, Kind: kind}
	}
	return items
}

// Size returns the number of checks in every report.
func Size() int {
	return len(checklist)
}

// Evaluate runs the checklist against doc. It never fails: absent metadata
// and empty bodies resolve to check outcomes.
func Evaluate(doc models.Document) Report {
	f := Extract(doc.Body)
	s := &subject{meta: doc.Meta, f: &f}

	checks := make([]Check, 0, len(checklist))
	for _, r := range checklist {
		c := Check{
			ID:          r.id,
			Category:    r.category,
			Description: r.description,
			Suggestion:  r.suggestion,
		}
		if r.manual() {
			c.Kind = ManualReview
			c.Passed = true
			c.Message = ManualReviewMessage
		} else {
			c.Kind = Automated
			c.Passed, c.Message = r.eval(s)
		}
		checks = append(checks, c)
	}

	passed := countPassed(checks)
	title := doc.Meta.Title
	if title == "" {
		title = UntitledTitle
	}
	return Report{
		Slug:   doc.Slug,
		Title:  title,
		Checks: checks,
		Score:  percent(passed, len(checks)),
		Passed: passed,
		Total:  len(checks),
	}
}

// Failed returns the checks that did not pass, in report order.
func (r Report) Failed() []Check {
	var out []Check
	for _, c := range r.Checks {
		if !c.Passed {
			out = append(out, c)
		}
	}
	return out
}

// AutomatedPassed counts passed checks that were mechanically decided.
func (r Report) AutomatedPassed() int {
	n := 0
	for _, c := range r.Checks {
		if c.Kind == Automated && c.Passed {
			n++
		}
	}
	return n
}

// AutomatedTotal counts mechanically decided checks.
func (r Report) AutomatedTotal() int {
	n := 0
	for _, c := range r.Checks {
		if c.Kind == Automated {
			n++
		}
	}
	return n
}

// AutomatedScore is the score over mechanically decided checks only.
func (r Report) AutomatedScore() int {
	return percent(r.AutomatedPassed(), r.AutomatedTotal())
}

// ByCategory groups checks by category in checklist order.
func (r Report) ByCategory() []CategoryScore {
	index := make(map[string]int, len(Categories))
	var out []CategoryScore
	for _, c := range r.Checks {
		i, ok := index[c.Category]
		if !ok {
			i = len(out)
			index[c.Category] = i
			out = append(out, CategoryScore{Name: c.Category})
		}
		cs := &out[i]
		cs.Checks = append(cs.Checks, c)
		cs.Total++
		if c.Passed {
			cs.Passed++
		}
	}
	for i := range out {
		out[i].Score = percent(out[i].Passed, out[i].Total)
	}
	return out
}

func countPassed(checks []Check) int {
	n := 0
	for _, c := range checks {
		if c.Passed {
			n++
		}
	}
	return n
}

// percent returns round(100*part/whole), or 0 when whole is 0.
func percent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(whole)))
}
