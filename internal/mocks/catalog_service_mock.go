// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/grind-calculator/internal/domain/model"
)

type MockCatalogService struct {
	mock.Mock
}

func NewMockCatalogService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCatalogService {
	m := &MockCatalogService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCatalogService) GetFormats(ctx context.Context, productID int) ([]model.Format, float64, error) {
	args := m.Called(ctx, productID)
	var formats []model.Format
	if v := args.Get(0); v != nil {
		formats = v.([]model.Format)
	}
	return formats, args.Get(1).(float64), args.Error(2)
}

func (m *MockCatalogService) GetQuantities(ctx context.Context, productID int, format string) ([]model.QuantityOption, float64, error) {
	args := m.Called(ctx, productID, format)
	var options []model.QuantityOption
	if v := args.Get(0); v != nil {
		options = v.([]model.QuantityOption)
	}
	return options, args.Get(1).(float64), args.Error(2)
}

func (m *MockCatalogService) ResolveVariation(ctx context.Context, productID int, format, quantity string) (int, error) {
	args := m.Called(ctx, productID, format, quantity)
	return args.Int(0), args.Error(1)
}

func (m *MockCatalogService) GetWizardCatalog(ctx context.Context) (*model.WizardCatalog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WizardCatalog), args.Error(1)
}

func (m *MockCatalogService) GetCalculatorData(ctx context.Context, productID int) (*model.CalculatorData, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CalculatorData), args.Error(1)
}

func (m *MockCatalogService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
