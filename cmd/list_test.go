package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/steverpalmer/GenericTesting/internal/domain"
	domainmocks "github.com/steverpalmer/GenericTesting/internal/domain/mocks"
)

func TestListCmd_PassesSubjects(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newListCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("List", mock.Anything, domain.ListArgs{Subjects: []string{"Integral", "BitSet"}}).Return(nil)

	cmd.SetArgs([]string{"list", "Integral", "BitSet"})
	err := cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}

func TestListCmd_ChecksFlag(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newListCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("List", mock.Anything, domain.ListArgs{Subjects: []string{"ModuloN"}, Checks: true}).Return(nil)

	cmd.SetArgs([]string{"list", "--checks", "ModuloN"})
	require.NoError(t, cmd.Execute())
}

func TestListCmd_NoArgsListsEverything(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newListCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("List", mock.Anything, mock.MatchedBy(func(args domain.ListArgs) bool {
		return len(args.Subjects) == 0
	})).Return(nil)

	cmd.SetArgs([]string{"list"})
	err := cmd.Execute()
	require.NoError(t, err)
}
