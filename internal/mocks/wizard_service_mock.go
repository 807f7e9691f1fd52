// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/grind-calculator/internal/domain/model"
	"github.com/guttosm/grind-calculator/internal/service"
)

type MockWizardService struct {
	mock.Mock
}

func NewMockWizardService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockWizardService {
	m := &MockWizardService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockWizardService) snapshot(args mock.Arguments) (*service.WizardSnapshot, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.WizardSnapshot), args.Error(1)
}

func (m *MockWizardService) Get(ctx context.Context, key string) (*service.WizardSnapshot, error) {
	return m.snapshot(m.Called(ctx, key))
}

func (m *MockWizardService) SelectCategory(ctx context.Context, key string, categoryID int) (*service.WizardSnapshot, error) {
	return m.snapshot(m.Called(ctx, key, categoryID))
}

func (m *MockWizardService) SelectProduct(ctx context.Context, key string, productID int) (*service.WizardSnapshot, error) {
	return m.snapshot(m.Called(ctx, key, productID))
}

func (m *MockWizardService) SelectFormat(ctx context.Context, key string, format string) (*service.WizardSnapshot, error) {
	return m.snapshot(m.Called(ctx, key, format))
}

func (m *MockWizardService) UpdateInputs(ctx context.Context, key string, areaM2, thicknessCm float64) (*service.WizardSnapshot, error) {
	return m.snapshot(m.Called(ctx, key, areaM2, thicknessCm))
}

func (m *MockWizardService) GoTo(ctx context.Context, key string, step model.Step) (*service.WizardSnapshot, error) {
	return m.snapshot(m.Called(ctx, key, step))
}

func (m *MockWizardService) Reset(ctx context.Context, key string) (*service.WizardSnapshot, error) {
	return m.snapshot(m.Called(ctx, key))
}

func (m *MockWizardService) PrepareCart(ctx context.Context, key string) (*service.CartPreparation, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CartPreparation), args.Error(1)
}
