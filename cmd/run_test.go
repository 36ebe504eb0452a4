package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/steverpalmer/GenericTesting/internal/domain"
	domainmocks "github.com/steverpalmer/GenericTesting/internal/domain/mocks"
	m "github.com/steverpalmer/GenericTesting/internal/model"
)

func TestRunCmd_Defaults(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newRunCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Run", mock.Anything, mock.MatchedBy(func(args domain.RunArgs) bool {
		return args.Config.Parallel == 2 &&
			args.Config.Trials == defaultRunTrials &&
			args.Config.MaxSize == defaultRunMaxSize &&
			args.Config.CheckTimeout == 30*time.Second &&
			args.ShardIndex == 0 &&
			args.TotalShardCount == 1 &&
			args.Reports == m.Path(".gentest-reports") &&
			len(args.Subjects) == 0
	})).Return(nil)

	cmd.SetArgs([]string{"run", "--parallel", "2"})
	err := cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}

func TestRunCmd_WithSharding(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newRunCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Run", mock.Anything, mock.MatchedBy(func(args domain.RunArgs) bool {
		return args.ShardIndex == 1 && args.TotalShardCount == 3
	})).Return(nil)

	cmd.SetArgs([]string{"run", "--shard", "1/3"})
	err := cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}

func TestRunCmd_SubjectsTrialsAndSeed(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newRunCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Run", mock.Anything, mock.MatchedBy(func(args domain.RunArgs) bool {
		return assert.ObjectsAreEqual([]string{"int64", "Set[int]"}, args.Subjects) &&
			args.Config.Trials == 25 &&
			args.Config.Seed == 42
	})).Return(nil)

	cmd.SetArgs([]string{"run", "--trials", "25", "--seed", "42", "int64", "Set[int]"})
	err := cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}

func TestRunCmd_InvalidTrialsAreRejected(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newRunCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	cmd.SetArgs([]string{"run", "--trials", "0"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid run configuration")

	mockWorkflow.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
}

func TestRunCmd_FailureIsReturned(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newRunCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Run", mock.Anything, mock.Anything).Return(domain.ErrRunFailed)

	cmd.SetArgs([]string{"run"})
	err := cmd.Execute()
	require.ErrorIs(t, err, domain.ErrRunFailed)
}

func TestNewRunCmd(t *testing.T) {
	cmd := newRunCmd()

	assert.Equal(t, "run [subjects...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.Equal(t, runLongDescription, cmd.Long)

	for _, name := range []string{"parallel", "trials", "seed", "shard"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}
