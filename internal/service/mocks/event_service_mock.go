package mocks

import (
	"context"
	"go-gin-event-lookup/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockEventService struct {
	mock.Mock
}

func NewMockEventService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockEventService {
	m := &MockEventService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockEventService) List(ctx context.Context) ([]*model.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Event), args.Error(1)
}

func (m *MockEventService) GetBySlug(ctx context.Context, slug string) (*model.Event, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventService) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventService) UpdateBySlug(ctx context.Context, slug string, params model.UpdateEventParams) (*model.Event, error) {
	args := m.Called(ctx, slug, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

type MockConnector struct {
	mock.Mock
}

func NewMockConnector(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockConnector {
	m := &MockConnector{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockConnector) Connect(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
