package controller

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/steverpalmer/GenericTesting/internal/model"
)

func newTestSimpleUI() (*SimpleUI, *bytes.Buffer) {
	out := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(out)

	return NewSimpleUI(cmd), out
}

func TestSimpleUI_StartSetsMode(t *testing.T) {
	ui, _ := newTestSimpleUI()

	require.NoError(t, ui.Start(context.Background(), WithViewMode()))
	assert.Equal(t, ModeView, ui.mode)

	require.NoError(t, ui.Start(context.Background()))
	assert.Equal(t, ModeList, ui.mode)
}

func TestSimpleUI_CancelledContext(t *testing.T) {
	ui, out := newTestSimpleUI()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, ui.Start(ctx), context.Canceled)
	require.ErrorIs(t, ui.DisplaySubjects(ctx, nil), context.Canceled)
	ui.DisplayLawScore(ctx, 1)

	assert.Empty(t, out.String())
}

func TestSimpleUI_DisplaySubjects(t *testing.T) {
	ui, out := newTestSimpleUI()

	err := ui.DisplaySubjects(context.Background(), []m.SubjectListing{
		{Subject: "int64", Source: m.SourceRegistered, Contracts: []string{"Integral"}, Active: 40, Excluded: 1},
		{Subject: "opaque", Err: errors.New("no contract")},
	})
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "int64")
	assert.Contains(t, output, "Integral")
	assert.Contains(t, output, "no contract")
	assert.Contains(t, strings.ToUpper(output), "TOTAL SUBJECTS 2")
	assert.NotContains(t, output, "0001_")
}

func TestSimpleUI_DisplaySubjectsWithChecks(t *testing.T) {
	ui, out := newTestSimpleUI()

	err := ui.DisplaySubjects(context.Background(), []m.SubjectListing{{
		Subject: "ModuloN", Source: m.SourceOverride, Contracts: []string{"Field"}, Active: 1, Skipped: 1,
		Checks: []m.PlannedCheck{
			{Check: m.Check{Number: 1, Name: "reflexive"}, Mode: m.ModeActive},
			{Check: m.Check{Number: 2, Name: "shl_composes"}, Mode: m.ModeSkipped, Matched: "shl"},
		},
	}})
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "\nModuloN\n")
	assert.Regexp(t, `0001_reflexive\s+active\n`, output)
	assert.Regexp(t, `0002_shl_composes\s+skipped \("shl"\)\n`, output)
}

func TestSimpleUI_DisplayContracts(t *testing.T) {
	ui, out := newTestSimpleUI()

	err := ui.DisplayContracts(context.Background(), []m.ContractListing{{
		Name:    "Field",
		Parents: []string{"CommutativeRing"},
		Own:     2,
		Total:   30,
		Checks:  []string{"2510_multiplicative_inverse(a)"},
	}})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "CommutativeRing")
	assert.Contains(t, out.String(), "  2510_multiplicative_inverse(a)\n")
}

func TestSimpleUI_DisplayDiff(t *testing.T) {
	ui, out := newTestSimpleUI()

	require.NoError(t, ui.DisplayDiff(context.Background(), ""))
	assert.Equal(t, "no difference\n", out.String())

	out.Reset()
	require.NoError(t, ui.DisplayDiff(context.Background(), "+0002_b\n"))
	assert.Equal(t, "+0002_b\n", out.String())
}

func TestSimpleUI_DisplayAnnotations(t *testing.T) {
	ui, out := newTestSimpleUI()

	err := ui.DisplayAnnotations(context.Background(), []m.Annotation{{
		File:     "modulo.go",
		Line:     12,
		TypeName: "ModuloPow2",
		Override: m.Override{Has: []string{"CommutativeRing"}, Skipping: []string{"shl_composes"}},
	}})
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "modulo.go:12")
	assert.Contains(t, output, "shl_composes")
	assert.Contains(t, strings.ToUpper(output), "TOTAL ANNOTATIONS 1")
}

func TestSimpleUI_DisplayCheckResult(t *testing.T) {
	ui, out := newTestSimpleUI()
	ctx := context.Background()

	ui.DisplayCheckResult(ctx, m.CheckResult{Subject: "int64", Check: "2210_addition_identity", Status: m.Passed})
	ui.DisplayCheckResult(ctx, m.CheckResult{
		Subject: "float64",
		Check:   "2220_addition_associativity",
		Status:  m.Failed,
		Message: "got 0.30000000000000004, want 0.3",
		Shrunk:  []string{"0.1", "0.2", "0"},
	})

	output := out.String()
	assert.Contains(t, output, "2210_addition_identity")
	assert.Contains(t, output, "passed")
	assert.Contains(t, output, "    got 0.30000000000000004, want 0.3\n")
	assert.Contains(t, output, "    witness: 0.1, 0.2, 0\n")
}

func TestSimpleUI_DisplayReportAndScore(t *testing.T) {
	ui, out := newTestSimpleUI()
	ctx := context.Background()

	err := ui.DisplayReport(ctx, m.Report{
		ID:   "run-1",
		Seed: 3,
		Subjects: []m.SubjectReport{
			{Subject: "int64", Results: []m.CheckResult{{Status: m.Passed}, {Status: m.Passed}, {Status: m.TimedOut}}},
			{Subject: "Vector2", Error: "unbound role ScalarT"},
		},
	})
	require.NoError(t, err)

	ui.DisplaySubjectError(ctx, "Vector2", errors.New("unbound role ScalarT"))
	ui.DisplayLawScore(ctx, 0.5)

	output := out.String()
	assert.Contains(t, output, "Report run-1 (seed 3")
	assert.Contains(t, output, "unbound role ScalarT")
	assert.Contains(t, output, "Law score: 50.00%\n")
}

func TestCountStatuses(t *testing.T) {
	counts := countStatuses([]m.CheckResult{{Status: m.Passed}, {Status: m.Failed}, {Status: m.Passed}})

	assert.Equal(t, 2, counts[m.Passed])
	assert.Equal(t, 1, counts[m.Failed])
	assert.Zero(t, counts[m.Skipped])
}
