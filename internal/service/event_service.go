package service

import (
	"context"
	"errors"

	"go-gin-event-lookup/internal/cache"
	"go-gin-event-lookup/internal/model"
	"go-gin-event-lookup/internal/repository"
	"go-gin-event-lookup/internal/validation"
	apperrors "go-gin-event-lookup/pkg/app_errors"
	"go-gin-event-lookup/pkg/logger"

	"go.uber.org/zap"
)

// Connector 確保資料庫已連線，由 database.Connector 實作
type Connector interface {
	Connect(ctx context.Context) error
}

type EventService interface {
	List(ctx context.Context) ([]*model.Event, error)
	// GetBySlug slug 必須已經過 validation.CanonicalSlug 處理
	GetBySlug(ctx context.Context, slug string) (*model.Event, error)
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	UpdateBySlug(ctx context.Context, slug string, params model.UpdateEventParams) (*model.Event, error)
}

type EventServiceImpl struct {
	db    Connector
	repo  repository.EventRepository
	cache cache.EventCache
}

func NewEventService(db Connector, repo repository.EventRepository, eventCache cache.EventCache) EventService {
	return &EventServiceImpl{db: db, repo: repo, cache: eventCache}
}

func (s *EventServiceImpl) List(ctx context.Context) ([]*model.Event, error) {
	return s.repo.List(ctx)
}

// GetBySlug 先確認連線（設定錯誤在此浮現），再讀快取，未命中才查資料庫
func (s *EventServiceImpl) GetBySlug(ctx context.Context, slug string) (*model.Event, error) {
	if err := s.db.Connect(ctx); err != nil {
		return nil, err
	}

	log := logger.WithComponent("service").With(zap.String("slug", slug))

	cached, err := s.cache.Get(ctx, slug)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, apperrors.ErrCacheMiss) {
		log.Warn("Event cache read failed", zap.Error(err))
	}

	event, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, event); err != nil {
		log.Warn("Event cache write failed", zap.Error(err))
	}
	return event, nil
}

func (s *EventServiceImpl) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	if err := validation.NormalizeEvent(event, model.NewFieldSet(model.AllEventFields...)); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, event)
}

func (s *EventServiceImpl) UpdateBySlug(ctx context.Context, slug string, params model.UpdateEventParams) (*model.Event, error) {
	if params.IsEmpty() {
		return nil, apperrors.ErrInvalidInput
	}

	event, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	previousSlug := event.Slug

	changed := params.ApplyTo(event)
	if err := validation.NormalizeEvent(event, changed); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, event.ID, event, changed)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Invalidate(ctx, previousSlug, updated.Slug); err != nil {
		logger.WithComponent("service").Warn("Event cache invalidation failed",
			zap.String("slug", previousSlug), zap.Error(err))
	}
	return updated, nil
}
