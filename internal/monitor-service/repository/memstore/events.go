package memstore

import (
	"GameHub_Monitor/internal/monitor-service/model"
	"GameHub_Monitor/internal/monitor-service/repository"
	"context"
	"fmt"
	"sort"

	"gorm.io/datatypes"
)

type eventRepository struct {
	view
}

func (r eventRepository) CreateEvent(_ context.Context, event model.HealthEvent) (model.HealthEvent, error) {
	err := r.run(func(log *txLog) error {
		r.store.nextEventID++
		event.ID = r.store.nextEventID
		event.CreatedAt = r.store.now()
		if len(event.Meta) == 0 {
			event.Meta = datatypes.JSON("{}")
		}
		r.store.events = append(r.store.events, event)
		log.push(func() {
			r.store.events = r.store.events[:len(r.store.events)-1]
			r.store.nextEventID--
		})
		return nil
	})
	if err != nil {
		return event, fmt.Errorf("EventRepository.CreateEvent: %w", err)
	}
	return event, nil
}

func eventBefore(a, b model.HealthEvent) bool {
	if !a.ObservedAt.Equal(b.ObservedAt) {
		return a.ObservedAt.Before(b.ObservedAt)
	}
	return a.ID < b.ID
}

func (r eventRepository) GetEvents(_ context.Context, serverID string, filter repository.EventFilter) ([]model.HealthEvent, error) {
	var events []model.HealthEvent
	_ = r.run(func(*txLog) error {
		for _, e := range r.store.events {
			if e.ServerID != serverID || e.ObservedAt.Before(filter.From) || e.ObservedAt.After(filter.To) {
				continue
			}
			if filter.MetricName != "" && (e.MetricName == nil || *e.MetricName != filter.MetricName) {
				continue
			}
			events = append(events, e)
		}
		return nil
	})
	sort.SliceStable(events, func(i, j int) bool {
		if filter.Descending {
			return eventBefore(events[j], events[i])
		}
		return eventBefore(events[i], events[j])
	})
	if filter.Limit > 0 && len(events) > filter.Limit {
		events = events[:filter.Limit]
	}
	return events, nil
}

func (r eventRepository) GetLatestEvent(_ context.Context, serverID string) (*model.HealthEvent, error) {
	var latest *model.HealthEvent
	_ = r.run(func(*txLog) error {
		for i := range r.store.events {
			e := r.store.events[i]
			if e.ServerID != serverID {
				continue
			}
			if latest == nil || eventBefore(*latest, e) {
				found := e
				latest = &found
			}
		}
		return nil
	})
	return latest, nil
}
