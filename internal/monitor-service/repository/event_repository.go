package repository

import (
	"GameHub_Monitor/internal/monitor-service/model"
	"context"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type EventFilter struct {
	From       time.Time
	To         time.Time
	MetricName string
	Limit      int
	Descending bool
}

type EventRepository interface {
	CreateEvent(ctx context.Context, event model.HealthEvent) (model.HealthEvent, error)
	GetEvents(ctx context.Context, serverID string, filter EventFilter) ([]model.HealthEvent, error)
	// GetLatestEvent returns nil when the server has no events yet.
	GetLatestEvent(ctx context.Context, serverID string) (*model.HealthEvent, error)
}

type eventRepository struct {
	db *gorm.DB
}

func (e *eventRepository) CreateEvent(ctx context.Context, event model.HealthEvent) (model.HealthEvent, error) {
	if len(event.Meta) == 0 {
		event.Meta = datatypes.JSON("{}")
	}
	result := e.db.WithContext(ctx).Create(&event)
	if result.Error != nil {
		return event, fmt.Errorf("EventRepository.CreateEvent: %w", result.Error)
	}
	return event, nil
}

func (e *eventRepository) GetEvents(ctx context.Context, serverID string, filter EventFilter) ([]model.HealthEvent, error) {
	query := e.db.WithContext(ctx).
		Where("server_id = ?", serverID).
		Where("observed_at >= ? AND observed_at <= ?", filter.From, filter.To)
	if filter.MetricName != "" {
		query = query.Where("metric_name = ?", filter.MetricName)
	}
	if filter.Descending {
		query = query.Order("observed_at DESC, id DESC")
	} else {
		query = query.Order("observed_at ASC, id ASC")
	}
	var events []model.HealthEvent
	result := query.Limit(filter.Limit).Find(&events)
	if result.Error != nil {
		return nil, fmt.Errorf("EventRepository.GetEvents: %w", result.Error)
	}
	return events, nil
}

func (e *eventRepository) GetLatestEvent(ctx context.Context, serverID string) (*model.HealthEvent, error) {
	var events []model.HealthEvent
	result := e.db.WithContext(ctx).Where("server_id = ?", serverID).Order("observed_at DESC, id DESC").Limit(1).Find(&events)
	if result.Error != nil {
		return nil, fmt.Errorf("EventRepository.GetLatestEvent: %w", result.Error)
	}
	if len(events) == 0 {
		return nil, nil
	}
	return &events[0], nil
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{
		db: db,
	}
}
