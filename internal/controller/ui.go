// Package controller provides the output adapters that display discovery
// and check results.
package controller

import (
	"context"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	m "github.com/steverpalmer/GenericTesting/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeList StartMode = iota
	ModeRun
	ModeView
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithListMode sets the UI to listing mode.
func WithListMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeList
	}
}

// WithRunMode sets the UI to check execution mode.
func WithRunMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeRun
	}
}

// WithViewMode sets the UI to report viewing mode.
func WithViewMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeView
	}
}

func startConfig(options []StartOption) StartConfig {
	var cfg StartConfig
	for _, option := range options {
		option(&cfg)
	}

	return cfg
}

// UI displays discovery listings, live check results and saved reports.
// Implementations can use different output methods (simple text, TUI, etc).
//
//nolint:interfacebloat // One method per screen keeps the workflow output-agnostic.
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	Wait(ctx context.Context) // Wait for UI to finish (user closes it)
	DisplaySubjects(ctx context.Context, listings []m.SubjectListing) error
	DisplayContracts(ctx context.Context, listings []m.ContractListing) error
	DisplayDiff(ctx context.Context, diff string) error
	DisplayAnnotations(ctx context.Context, annotations []m.Annotation) error
	DisplayRunInfo(ctx context.Context, runID string, subjects int, parallel int, seed int64)
	DisplayCheckResult(ctx context.Context, result m.CheckResult)
	DisplaySubjectError(ctx context.Context, subject string, err error)
	DisplayReport(ctx context.Context, report m.Report) error
	DisplayLawScore(ctx context.Context, score float64)
}

// NewUI picks the interactive UI when output is a terminal.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether w is an interactive terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
