// Code generated manually. DO NOT EDIT.

package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/guttosm/grind-calculator/internal/service"
)

type MockSessionTokenService struct {
	mock.Mock
}

func NewMockSessionTokenService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSessionTokenService {
	m := &MockSessionTokenService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockSessionTokenService) Issue(sessionID string) (*service.SessionToken, error) {
	args := m.Called(sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SessionToken), args.Error(1)
}

func (m *MockSessionTokenService) Validate(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}
