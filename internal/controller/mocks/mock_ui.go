// Package mocks holds testify mocks of the controller interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/steverpalmer/GenericTesting/internal/controller"
	m "github.com/steverpalmer/GenericTesting/internal/model"
)

// MockUI is a mock type for the UI type.
type MockUI struct {
	mock.Mock
}

// NewMockUI creates a new instance of MockUI. It also registers a testing
// interface on the mock and a cleanup function to assert the mocks
// expectations.
func NewMockUI(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUI {
	mockUI := &MockUI{}
	mockUI.Mock.Test(t)

	t.Cleanup(func() { mockUI.AssertExpectations(t) })

	return mockUI
}

// Start provides a mock function.
func (_m *MockUI) Start(ctx context.Context, options ...controller.StartOption) error {
	args := make([]interface{}, 0, len(options)+1)
	args = append(args, ctx)

	for _, option := range options {
		args = append(args, option)
	}

	ret := _m.Called(args...)

	return ret.Error(0)
}

// Close provides a mock function.
func (_m *MockUI) Close(ctx context.Context) {
	_m.Called(ctx)
}

// Wait provides a mock function.
func (_m *MockUI) Wait(ctx context.Context) {
	_m.Called(ctx)
}

// DisplaySubjects provides a mock function.
func (_m *MockUI) DisplaySubjects(ctx context.Context, listings []m.SubjectListing) error {
	ret := _m.Called(ctx, listings)

	return ret.Error(0)
}

// DisplayContracts provides a mock function.
func (_m *MockUI) DisplayContracts(ctx context.Context, listings []m.ContractListing) error {
	ret := _m.Called(ctx, listings)

	return ret.Error(0)
}

// DisplayDiff provides a mock function.
func (_m *MockUI) DisplayDiff(ctx context.Context, diff string) error {
	ret := _m.Called(ctx, diff)

	return ret.Error(0)
}

// DisplayAnnotations provides a mock function.
func (_m *MockUI) DisplayAnnotations(ctx context.Context, annotations []m.Annotation) error {
	ret := _m.Called(ctx, annotations)

	return ret.Error(0)
}

// DisplayRunInfo provides a mock function.
func (_m *MockUI) DisplayRunInfo(ctx context.Context, runID string, subjects int, parallel int, seed int64) {
	_m.Called(ctx, runID, subjects, parallel, seed)
}

// DisplayCheckResult provides a mock function.
func (_m *MockUI) DisplayCheckResult(ctx context.Context, result m.CheckResult) {
	_m.Called(ctx, result)
}

// DisplaySubjectError provides a mock function.
func (_m *MockUI) DisplaySubjectError(ctx context.Context, subject string, err error) {
	_m.Called(ctx, subject, err)
}

// DisplayReport provides a mock function.
func (_m *MockUI) DisplayReport(ctx context.Context, report m.Report) error {
	ret := _m.Called(ctx, report)

	return ret.Error(0)
}

// DisplayLawScore provides a mock function.
func (_m *MockUI) DisplayLawScore(ctx context.Context, score float64) {
	_m.Called(ctx, score)
}

var _ controller.UI = (*MockUI)(nil)
