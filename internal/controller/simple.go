package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/steverpalmer/GenericTesting/internal/model"
)

// SimpleUI implements UI using cobra Command's output.
type SimpleUI struct {
	cmd  *cobra.Command
	mode StartMode
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mode = startConfig(options).mode

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// DisplaySubjects prints one row per subject with its discovered contracts.
func (s *SimpleUI) DisplaySubjects(ctx context.Context, listings []m.SubjectListing) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderSubjectsTable(listings))
	s.printf("%s", renderPlans(listings))

	return nil
}

// renderPlans lists the checks of every listing that carries them.
func renderPlans(listings []m.SubjectListing) string {
	var b strings.Builder

	for _, l := range listings {
		if len(l.Checks) == 0 {
			continue
		}

		fmt.Fprintf(&b, "\n%s\n", l.Subject)

		for _, c := range l.Checks {
			if c.Matched != "" {
				fmt.Fprintf(&b, "  %-40s %s (%q)\n", c.ID(), c.Mode, c.Matched)
				continue
			}

			fmt.Fprintf(&b, "  %-40s %s\n", c.ID(), c.Mode)
		}
	}

	return b.String()
}

func renderSubjectsTable(listings []m.SubjectListing) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Subject", "Source", "Contracts", "Active", "Excluded", "Skipped"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER,
	})

	active := 0

	for _, l := range listings {
		if l.Err != nil {
			table.Append([]string{l.Subject, "error", l.Err.Error(), "-", "-", "-"})
			continue
		}

		active += l.Active

		table.Append([]string{
			l.Subject,
			string(l.Source),
			strings.Join(l.Contracts, ", "),
			fmt.Sprintf("%d", l.Active),
			fmt.Sprintf("%d", l.Excluded),
			fmt.Sprintf("%d", l.Skipped),
		})
	}

	table.SetFooter([]string{fmt.Sprintf("Total Subjects %d", len(listings)), "", "", fmt.Sprintf("%d", active), "", ""})
	table.Render()

	return tableBuffer.String()
}

// DisplayContracts prints the taxonomy, one contract per row.
func (s *SimpleUI) DisplayContracts(ctx context.Context, listings []m.ContractListing) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderContractsTable(listings))

	if len(listings) == 1 {
		for _, id := range listings[0].Checks {
			s.printf("  %s\n", id)
		}
	}

	return nil
}

func renderContractsTable(listings []m.ContractListing) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Contract", "Parents", "Own", "Checks"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER})

	for _, l := range listings {
		table.Append([]string{l.Name, strings.Join(l.Parents, ", "), fmt.Sprintf("%d", l.Own), fmt.Sprintf("%d", l.Total)})
	}

	table.Render()

	return tableBuffer.String()
}

// DisplayDiff prints a unified diff of two check tables.
func (s *SimpleUI) DisplayDiff(ctx context.Context, diff string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if diff == "" {
		s.printf("no difference\n")
		return nil
	}

	s.printf("%s", diff)

	return nil
}

// DisplayAnnotations prints the override blocks found in Go sources.
func (s *SimpleUI) DisplayAnnotations(ctx context.Context, annotations []m.Annotation) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderAnnotationsTable(annotations))

	return nil
}

func renderAnnotationsTable(annotations []m.Annotation) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Location", "Type", "Has", "Excluding", "Skipping"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	for _, a := range annotations {
		table.Append([]string{
			fmt.Sprintf("%s:%d", a.File, a.Line),
			a.TypeName,
			strings.Join(a.Override.Has, ", "),
			strings.Join(a.Override.Excluding, ", "),
			strings.Join(a.Override.Skipping, ", "),
		})
	}

	table.SetFooter([]string{fmt.Sprintf("Total Annotations %d", len(annotations)), "", "", "", ""})
	table.Render()

	return tableBuffer.String()
}

// DisplayRunInfo shows the run settings.
func (s *SimpleUI) DisplayRunInfo(ctx context.Context, runID string, subjects int, parallel int, seed int64) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Run %s: %d subject(s) with %d worker(s), seed %d\n", runID, subjects, parallel, seed)
}

// DisplayCheckResult prints one finished check.
func (s *SimpleUI) DisplayCheckResult(ctx context.Context, result m.CheckResult) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%-16s %-48s %s\n", result.Subject, result.Check, result.Status)

	if result.Status == m.Failed || result.Status == m.Errored {
		if result.Message != "" {
			s.printf("    %s\n", result.Message)
		}

		if len(result.Shrunk) > 0 {
			s.printf("    witness: %s\n", strings.Join(result.Shrunk, ", "))
		}
	}
}

// DisplaySubjectError prints a subject that could not be discovered or bound.
func (s *SimpleUI) DisplaySubjectError(ctx context.Context, subject string, err error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return
	}

	s.printf("%-16s error: %v\n", subject, err)
}

// DisplayReport prints a saved report as a status table per subject.
func (s *SimpleUI) DisplayReport(ctx context.Context, report m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("Report %s (seed %d, %s)\n", report.ID, report.Seed, report.Started.Format("2006-01-02 15:04:05"))
	s.printf("\n%s", renderReportTable(report))

	return nil
}

func renderReportTable(report m.Report) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Subject", "Passed", "Failed", "Excluded", "Skipped", "Other"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER,
	})

	for _, subject := range report.Subjects {
		if subject.Error != "" {
			table.Append([]string{subject.Subject, "-", "-", "-", "-", subject.Error})
			continue
		}

		counts := countStatuses(subject.Results)
		table.Append([]string{
			subject.Subject,
			fmt.Sprintf("%d", counts[m.Passed]),
			fmt.Sprintf("%d", counts[m.Failed]),
			fmt.Sprintf("%d", counts[m.Excluded]),
			fmt.Sprintf("%d", counts[m.Skipped]),
			fmt.Sprintf("%d", counts[m.Exhausted]+counts[m.Errored]+counts[m.TimedOut]),
		})
	}

	table.Render()

	return tableBuffer.String()
}

func countStatuses(results []m.CheckResult) map[m.Status]int {
	counts := make(map[m.Status]int)
	for _, r := range results {
		counts[r.Status]++
	}

	return counts
}

// DisplayLawScore prints the final law score.
func (s *SimpleUI) DisplayLawScore(ctx context.Context, score float64) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Law score: %.2f%%\n", score*100)
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
