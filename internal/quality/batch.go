package quality

import (
	"context"
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/starford/kbase/internal/models"
)

// Summary aggregates a batch of reports.
type Summary struct {
	Documents    int `json:"documents"`
	AverageScore int `json:"average_score"`
	Passed       int `json:"passed"`
	Total        int `json:"total"`
}

// EvaluateAll evaluates docs concurrently with at most workers goroutines
// (GOMAXPROCS when workers <= 0) and returns the reports sorted by ascending
// score. Equal scores keep the input order.
func EvaluateAll(ctx context.Context, docs []models.Document, workers int) ([]Report, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	reports := make([]Report, len(docs))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range docs {
		if gCtx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			reports[i] = Evaluate(docs[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	SortByScore(reports)
	return reports, nil
}

// SortByScore orders reports lowest score first, keeping the relative order
// of equal scores.
func SortByScore(reports []Report) {
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].Score < reports[j].Score
	})
}

// Summarize totals a batch. The average is the rounded mean of the scores.
func Summarize(reports []Report) Summary {
	s := Summary{Documents: len(reports)}
	if len(reports) == 0 {
		return s
	}
	sum := 0
	for _, r := range reports {
		sum += r.Score
		s.Passed += r.Passed
		s.Total += r.Total
	}
	s.AverageScore = int(math.Round(float64(sum) / float64(len(reports))))
	return s
}
