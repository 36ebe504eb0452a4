package adapter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	m "github.com/steverpalmer/GenericTesting/internal/model"
	"github.com/steverpalmer/GenericTesting/pkg/journal"
)

// Report file names inside the reports directory.
const (
	ReportFile  = "report.yaml"
	ResultsFile = "results.gob"
)

// ReportStore persists the last run.
type ReportStore interface {
	SaveReport(dir m.Path, report m.Report) error
	LoadReport(dir m.Path) (m.Report, error)
	LoadResults(dir m.Path) (journal.Journal[m.CheckResult], error)
}

type reportStore struct{}

// NewReportStore creates a store writing a YAML summary and a gob journal of
// every check result.
func NewReportStore() ReportStore {
	return &reportStore{}
}

func (s *reportStore) SaveReport(dir m.Path, report m.Report) error {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return fmt.Errorf("create reports directory: %w", err)
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	reportPath := filepath.Join(string(dir), ReportFile)
	if err := os.WriteFile(reportPath, data, 0o600); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	results, err := journal.Create[m.CheckResult](filepath.Join(string(dir), ResultsFile))
	if err != nil {
		return err
	}

	for _, subject := range report.Subjects {
		if err := results.AppendBatch(subject.Results); err != nil {
			_ = results.Close()
			return err
		}
	}

	slog.Info("saved report", "id", report.ID, "path", reportPath, "results", results.Len())

	return results.Close()
}

func (s *reportStore) LoadReport(dir m.Path) (m.Report, error) {
	data, err := os.ReadFile(filepath.Join(string(dir), ReportFile))
	if err != nil {
		return m.Report{}, fmt.Errorf("read report: %w", err)
	}

	var report m.Report
	if err := yaml.Unmarshal(data, &report); err != nil {
		return m.Report{}, fmt.Errorf("decode report: %w", err)
	}

	return report, nil
}

func (s *reportStore) LoadResults(dir m.Path) (journal.Journal[m.CheckResult], error) {
	return journal.Open[m.CheckResult](filepath.Join(string(dir), ResultsFile))
}
