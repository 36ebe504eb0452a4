package domain

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/steverpalmer/GenericTesting/internal/model"
	"github.com/steverpalmer/GenericTesting/pkg/journal"
)

func results(statuses ...m.Status) []m.CheckResult {
	out := make([]m.CheckResult, len(statuses))
	for i, status := range statuses {
		out[i] = m.CheckResult{Subject: "int", Check: "0001_law", Status: status}
	}

	return out
}

func TestLawScore(t *testing.T) {
	tests := []struct {
		name    string
		reports []m.SubjectReport
		want    float64
	}{
		{"empty", nil, 1},
		{"only neutral", []m.SubjectReport{{Results: results(m.Skipped, m.Excluded, m.Exhausted)}}, 1},
		{"all passed", []m.SubjectReport{{Results: results(m.Passed, m.Passed)}}, 1},
		{
			"mixed across subjects",
			[]m.SubjectReport{
				{Results: results(m.Passed, m.Failed, m.Errored)},
				{Results: results(m.Passed, m.Passed, m.TimedOut)},
			},
			0.75,
		},
		{"all failed", []m.SubjectReport{{Results: results(m.Failed)}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, LawScore(tt.reports), 1e-9)
		})
	}
}

func TestLawScore_FromJournal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.gob")

	j, err := journal.Create[m.CheckResult](path)
	require.NoError(t, err)
	require.NoError(t, j.AppendBatch(results(m.Passed, m.Failed, m.Skipped, m.Passed)))
	require.NoError(t, j.Close())

	reopened, err := journal.Open[m.CheckResult](path)
	require.NoError(t, err)

	t.Cleanup(func() { _ = reopened.Close() })

	score, err := lawScore(reopened)
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3.0, score, 1e-9)
}
