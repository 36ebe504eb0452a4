package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/steverpalmer/GenericTesting/internal/domain"
	domainmocks "github.com/steverpalmer/GenericTesting/internal/domain/mocks"
)

func TestContractsCmd_Name(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newContractsCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Contracts", mock.Anything, mock.MatchedBy(func(args domain.ContractsArgs) bool {
		return args.Name == "Ring" && len(args.Diff) == 0
	})).Return(nil)

	cmd.SetArgs([]string{"contracts", "Ring"})
	err := cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}

func TestContractsCmd_Diff(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newContractsCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Contracts", mock.Anything, domain.ContractsArgs{Diff: []string{"Ring", "Field"}}).Return(nil)

	cmd.SetArgs([]string{"contracts", "--diff", "Ring,Field"})
	err := cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}

func TestContractsCmd_RejectsTwoNames(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newContractsCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	cmd.SetArgs([]string{"contracts", "Ring", "Field"})
	err := cmd.Execute()
	require.Error(t, err)
}
