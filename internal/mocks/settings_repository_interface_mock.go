// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/grind-calculator/internal/domain/model"
	"github.com/guttosm/grind-calculator/internal/repository"
)

type MockSettingsRepositoryInterface struct {
	mock.Mock
}

func NewMockSettingsRepositoryInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSettingsRepositoryInterface {
	m := &MockSettingsRepositoryInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockSettingsRepositoryInterface) GetActive(ctx context.Context) (*repository.SettingsDocument, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.SettingsDocument), args.Error(1)
}

func (m *MockSettingsRepositoryInterface) Create(ctx context.Context, settings model.Settings, createdBy string) (*repository.SettingsDocument, error) {
	args := m.Called(ctx, settings, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.SettingsDocument), args.Error(1)
}

func (m *MockSettingsRepositoryInterface) List(ctx context.Context, limit int) ([]repository.SettingsDocument, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.SettingsDocument), args.Error(1)
}
