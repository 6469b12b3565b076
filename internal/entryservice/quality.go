package entryservice

import (
	"context"

	"github.com/starford/kbase/internal/quality"
)

// Badge is the compact quality view of one entry.
type Badge struct {
	Slug      string                     `json:"slug"`
	Score     int                        `json:"score"`
	Passed    int                        `json:"passed"`
	Total     int                        `json:"total"`
	Automated int                        `json:"automated_score"`
	Failing   map[string][]quality.Check `json:"failing"`
}

// QualityReport is the batch audit of every visible entry.
type QualityReport struct {
	Summary quality.Summary  `json:"summary"`
	Reports []quality.Report `json:"reports"`
}

// NewBadge condenses a report, grouping failing checks by category.
func NewBadge(r quality.Report) Badge {
	failing := make(map[string][]quality.Check)
	for _, c := range r.Failed() {
		failing[c.Category] = append(failing[c.Category], c)
	}
	return Badge{
		Slug:      r.Slug,
		Score:     r.Score,
		Passed:    r.Passed,
		Total:     r.Total,
		Automated: r.AutomatedScore(),
		Failing:   failing,
	}
}

// EntryQuality evaluates a single visible entry.
func (s *Service) EntryQuality(_ context.Context, slug string) (Badge, error) {
	doc, err := s.lib.Get(slug)
	if err != nil {
		return Badge{}, err
	}
	return NewBadge(quality.Evaluate(doc)), nil
}

// QualityReport evaluates every visible entry, lowest score first.
func (s *Service) QualityReport(ctx context.Context) (QualityReport, error) {
	reports, err := quality.EvaluateAll(ctx, s.lib.All(), s.opts.Workers)
	if err != nil {
		return QualityReport{}, err
	}
	return QualityReport{Summary: quality.Summarize(reports), Reports: reports}, nil
}
