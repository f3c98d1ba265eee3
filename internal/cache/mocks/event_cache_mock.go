package mocks

import (
	"context"
	"go-gin-event-lookup/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockEventCache struct {
	mock.Mock
}

func NewMockEventCache(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockEventCache {
	m := &MockEventCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockEventCache) Get(ctx context.Context, slug string) (*model.Event, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventCache) Set(ctx context.Context, event *model.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventCache) Invalidate(ctx context.Context, slugs ...string) error {
	args := m.Called(ctx, slugs)
	return args.Error(0)
}
