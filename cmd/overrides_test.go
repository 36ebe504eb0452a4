package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/steverpalmer/GenericTesting/internal/domain"
	domainmocks "github.com/steverpalmer/GenericTesting/internal/domain/mocks"
	m "github.com/steverpalmer/GenericTesting/internal/model"
)

func TestOverridesCmd_PathsAndExcludes(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newOverridesCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Overrides", mock.Anything, mock.MatchedBy(func(args domain.OverridesArgs) bool {
		return len(args.Paths) == 2 &&
			args.Paths[0] == m.Path("./internal/...") &&
			args.Paths[1] == m.Path("./cmd") &&
			len(args.Exclude) == 2 &&
			args.Exclude[0] == "^generated_" &&
			args.Exclude[1] == "_gen\\.go$"
	})).Return(nil)

	cmd.SetArgs([]string{"overrides", "-x", "^generated_", "-x", "_gen\\.go$", "./internal/...", "./cmd"})
	err := cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}
