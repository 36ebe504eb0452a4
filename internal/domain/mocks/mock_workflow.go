// Package mocks holds testify mocks of the domain interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/steverpalmer/GenericTesting/internal/domain"
)

// MockWorkflow is a mock type for the Workflow type.
type MockWorkflow struct {
	mock.Mock
}

// NewMockWorkflow creates a new instance of MockWorkflow. It also registers a
// testing interface on the mock and a cleanup function to assert the mocks
// expectations.
func NewMockWorkflow(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockWorkflow {
	mockWorkflow := &MockWorkflow{}
	mockWorkflow.Mock.Test(t)

	t.Cleanup(func() { mockWorkflow.AssertExpectations(t) })

	return mockWorkflow
}

// List provides a mock function.
func (_m *MockWorkflow) List(ctx context.Context, args domain.ListArgs) error {
	return _m.Called(ctx, args).Error(0)
}

// Run provides a mock function.
func (_m *MockWorkflow) Run(ctx context.Context, args domain.RunArgs) error {
	return _m.Called(ctx, args).Error(0)
}

// Contracts provides a mock function.
func (_m *MockWorkflow) Contracts(ctx context.Context, args domain.ContractsArgs) error {
	return _m.Called(ctx, args).Error(0)
}

// Overrides provides a mock function.
func (_m *MockWorkflow) Overrides(ctx context.Context, args domain.OverridesArgs) error {
	return _m.Called(ctx, args).Error(0)
}

// View provides a mock function.
func (_m *MockWorkflow) View(ctx context.Context, args domain.ViewArgs) error {
	return _m.Called(ctx, args).Error(0)
}

var _ domain.Workflow = (*MockWorkflow)(nil)
