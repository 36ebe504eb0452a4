package cmd

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/steverpalmer/GenericTesting/internal/domain"
	domainmocks "github.com/steverpalmer/GenericTesting/internal/domain/mocks"
	m "github.com/steverpalmer/GenericTesting/internal/model"
)

// useMockWorkflow swaps the package workflow for a mock until the test ends.
func useMockWorkflow(t *testing.T) *domainmocks.MockWorkflow {
	t.Helper()

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	original := workflow
	workflow = mockWorkflow

	t.Cleanup(func() { workflow = original })

	return mockWorkflow
}

func TestViewCmd_ReportsDirectory(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want m.Path
	}{
		{"default", []string{"view"}, m.Path(defaultReportsDir)},
		{"long flag", []string{"view", "--output", "./reports-dir"}, m.Path("./reports-dir")},
		{"short flag before command", []string{"-o", "shard-1", "view"}, m.Path("shard-1")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockWorkflow := useMockWorkflow(t)
			mockWorkflow.On("View", mock.Anything, domain.ViewArgs{Reports: tt.want}).Return(nil).Once()

			cmd := newRootCmd()
			cmd.AddCommand(newViewCmd())
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(tt.args)

			require.NoError(t, cmd.Execute())
		})
	}
}

func TestViewCmd_RejectsPositionalArgs(t *testing.T) {
	useMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newViewCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"view", "./custom-reports"})

	require.Error(t, cmd.Execute())
}

func TestViewCmd_ReturnsWorkflowError(t *testing.T) {
	mockWorkflow := useMockWorkflow(t)

	missing := errors.New("load report: no such file")
	mockWorkflow.On("View", mock.Anything, mock.Anything).Return(missing).Once()

	cmd := newRootCmd()
	cmd.AddCommand(newViewCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"view"})

	require.ErrorIs(t, cmd.Execute(), missing)
}
