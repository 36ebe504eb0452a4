package domain

import (
	m "github.com/steverpalmer/GenericTesting/internal/model"
	"github.com/steverpalmer/GenericTesting/pkg/journal"
)

// lawScore is passed / (passed + failed). Excluded, skipped, exhausted,
// errored and timed out checks do not count. A run with nothing to count
// scores 1.
func lawScore(results journal.Journal[m.CheckResult]) (float64, error) {
	passed := 0
	total := 0

	err := results.Range(func(_ uint64, result m.CheckResult) error {
		switch result.Status {
		case m.Passed:
			passed++
			total++
		case m.Failed:
			total++
		case m.Excluded, m.Skipped, m.Exhausted, m.Errored, m.TimedOut:
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	if total == 0 {
		return 1, nil
	}

	return float64(passed) / float64(total), nil
}

// LawScore scores the results of in-memory reports the same way.
func LawScore(reports []m.SubjectReport) float64 {
	passed := 0
	total := 0

	for _, report := range reports {
		for _, result := range report.Results {
			switch result.Status {
			case m.Passed:
				passed++
				total++
			case m.Failed:
				total++
			}
		}
	}

	if total == 0 {
		return 1
	}

	return float64(passed) / float64(total)
}
