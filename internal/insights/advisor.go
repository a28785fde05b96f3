package insights

import (
	"context"
	"time"

	"github.com/datasmith/datasmith/internal/models"
	"go.uber.org/zap"
)

// Advisor exposes the batch analyses behind the call shape of a remote
// model service: context-aware, latency-bearing, failure-tolerant. The
// implementation underneath stays synchronous and deterministic, so a real
// backend can replace it without touching callers.
type Advisor struct {
	latency time.Duration
	logger  *zap.Logger
}

// Report bundles one full scan over the three datasets.
type Report struct {
	Recommendations []Recommendation `json:"recommendations"`
	Insights        []Insight        `json:"insights"`
}

// NewAdvisor creates an advisor with the given simulated latency. A nil
// logger is replaced with a no-op one.
func NewAdvisor(latency time.Duration, logger *zap.Logger) *Advisor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Advisor{latency: latency, logger: logger}
}

// Scan runs every analysis over the current snapshots. A failing analysis
// degrades to an empty result with a logged diagnostic; Scan itself fails
// only on context cancellation.
func (a *Advisor) Scan(ctx context.Context, clients, workers, tasks *models.Dataset) (*Report, error) {
	if err := a.wait(ctx); err != nil {
		return nil, err
	}

	report := &Report{}
	a.run("co-occurrence", func() {
		report.Recommendations = append(report.Recommendations, MineCoOccurrence(clients)...)
	})
	a.run("load-imbalance", func() {
		report.Recommendations = append(report.Recommendations, DetectLoadImbalance(workers)...)
	})
	a.run("priority-variance", func() {
		report.Insights = append(report.Insights, PriorityVariance(clients)...)
	})
	a.run("skill-gap", func() {
		report.Insights = append(report.Insights, SkillGap(workers, tasks)...)
	})
	return report, nil
}

// Correct proposes a fix for one validation issue. No applicable heuristic
// is not an error: ok is simply false.
func (a *Advisor) Correct(ctx context.Context, issue models.Issue, row models.Row) (Correction, bool, error) {
	if err := a.wait(ctx); err != nil {
		return Correction{}, false, err
	}
	c, ok := SuggestCorrection(issue, row)
	return c, ok, nil
}

// wait simulates backend latency, honoring cancellation.
func (a *Advisor) wait(ctx context.Context) error {
	if a.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(a.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// run executes one analysis, containing any panic so a single bad analysis
// cannot take down a scan.
func (a *Advisor) run(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Warn("analysis failed", zap.String("analysis", name), zap.Any("panic", r))
		}
	}()
	fn()
}
