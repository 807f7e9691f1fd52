// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/grind-calculator/internal/domain/model"
	"github.com/guttosm/grind-calculator/internal/repository"
)

type MockSettingsService struct {
	mock.Mock
}

func NewMockSettingsService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSettingsService {
	m := &MockSettingsService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockSettingsService) GetActive(ctx context.Context) model.Settings {
	args := m.Called(ctx)
	return args.Get(0).(model.Settings)
}

func (m *MockSettingsService) Update(ctx context.Context, settings model.Settings, updatedBy string) (*repository.SettingsDocument, error) {
	args := m.Called(ctx, settings, updatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.SettingsDocument), args.Error(1)
}

func (m *MockSettingsService) History(ctx context.Context, limit int) ([]repository.SettingsDocument, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.SettingsDocument), args.Error(1)
}

func (m *MockSettingsService) LayerThickness(ctx context.Context, product *model.Product) float64 {
	args := m.Called(ctx, product)
	return args.Get(0).(float64)
}
