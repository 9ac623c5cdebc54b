package service

import (
	apperrors "GameHub_Monitor/internal/monitor-service/errors"
	"GameHub_Monitor/internal/monitor-service/model"
	"GameHub_Monitor/internal/monitor-service/repository"
	"context"
	"fmt"
	"time"
)

const (
	DefaultEventsLimit = 500
	MaxEventsLimit     = 5000

	OrderAsc  = "asc"
	OrderDesc = "desc"

	defaultEventsRange    = time.Hour
	defaultSnapshotsRange = 24 * time.Hour
	defaultOutagesRange   = 7 * 24 * time.Hour
	currentUptimeRange    = time.Hour
)

type EventQuery struct {
	From       *time.Time
	To         *time.Time
	MetricName string
	// Limit 0 means DefaultEventsLimit.
	Limit int
	// Order is asc or desc, empty means desc.
	Order string
}

type SnapshotQuery struct {
	From       *time.Time
	To         *time.Time
	WindowSize string
}

type CurrentStatus struct {
	Server          model.Server
	LatestEvent     *model.HealthEvent
	OutageOpen      bool
	OutageStartedAt *time.Time
	// UptimeLastHour is nil when no checks landed in the trailing hour.
	UptimeLastHour *float64
}

type QueryService interface {
	GetEvents(ctx context.Context, gameID string, code string, query EventQuery) ([]model.HealthEvent, error)
	GetSnapshots(ctx context.Context, gameID string, code string, query SnapshotQuery) ([]model.HealthSnapshot, error)
	GetCurrentStatus(ctx context.Context, gameID string, code string) (CurrentStatus, error)
	GetOutages(ctx context.Context, gameID string, code string, from *time.Time, to *time.Time) ([]model.Outage, error)
	GetFleetSummary(ctx context.Context, gameID string, from *time.Time, to *time.Time) (repository.FleetSummary, error)
}

type queryService struct {
	repos      repository.Repositories
	eventIndex repository.EventIndexRepository
	now        func() time.Time
}

// resolveRange applies the default lookback and rejects inverted ranges.
func (q *queryService) resolveRange(from *time.Time, to *time.Time, lookback time.Duration) (time.Time, time.Time, error) {
	end := q.now().UTC()
	if to != nil {
		end = *to
	}
	start := end.Add(-lookback)
	if from != nil {
		start = *from
	}
	if start.After(end) {
		return start, end, apperrors.NewValidationError("from", "must not be after to")
	}
	return start, end, nil
}

func (q *queryService) GetEvents(ctx context.Context, gameID string, code string, query EventQuery) ([]model.HealthEvent, error) {
	from, to, err := q.resolveRange(query.From, query.To, defaultEventsRange)
	if err != nil {
		return nil, fmt.Errorf("QueryService.GetEvents: %w", err)
	}
	limit := query.Limit
	if limit == 0 {
		limit = DefaultEventsLimit
	}
	if limit < 1 || limit > MaxEventsLimit {
		return nil, fmt.Errorf("QueryService.GetEvents: %w",
			apperrors.NewValidationError("limit", fmt.Sprintf("must be between 1 and %d", MaxEventsLimit)))
	}
	order := query.Order
	if order == "" {
		order = OrderDesc
	}
	if order != OrderAsc && order != OrderDesc {
		return nil, fmt.Errorf("QueryService.GetEvents: %w", apperrors.NewValidationError("order", "must be asc or desc"))
	}

	server, err := q.repos.Servers.GetServerByCode(ctx, gameID, code)
	if err != nil {
		return nil, fmt.Errorf("QueryService.GetEvents: %w", err)
	}
	events, err := q.repos.Events.GetEvents(ctx, server.ID, repository.EventFilter{
		From:       from,
		To:         to,
		MetricName: query.MetricName,
		Limit:      limit,
		Descending: order == OrderDesc,
	})
	if err != nil {
		return nil, fmt.Errorf("QueryService.GetEvents: %w", err)
	}
	return events, nil
}

func (q *queryService) GetSnapshots(ctx context.Context, gameID string, code string, query SnapshotQuery) ([]model.HealthSnapshot, error) {
	from, to, err := q.resolveRange(query.From, query.To, defaultSnapshotsRange)
	if err != nil {
		return nil, fmt.Errorf("QueryService.GetSnapshots: %w", err)
	}
	windowSize := query.WindowSize
	if windowSize == "" {
		windowSize = model.Window1m
	}
	if !model.IsValidWindowSize(windowSize) {
		return nil, fmt.Errorf("QueryService.GetSnapshots: %w",
			apperrors.NewValidationError("window_size", fmt.Sprintf("unknown window size %q", windowSize)))
	}

	server, err := q.repos.Servers.GetServerByCode(ctx, gameID, code)
	if err != nil {
		return nil, fmt.Errorf("QueryService.GetSnapshots: %w", err)
	}
	snapshots, err := q.repos.Snapshots.GetSnapshots(ctx, server.ID, windowSize, from, to)
	if err != nil {
		return nil, fmt.Errorf("QueryService.GetSnapshots: %w", err)
	}
	return snapshots, nil
}

func (q *queryService) GetCurrentStatus(ctx context.Context, gameID string, code string) (CurrentStatus, error) {
	server, err := q.repos.Servers.GetServerByCode(ctx, gameID, code)
	if err != nil {
		return CurrentStatus{}, fmt.Errorf("QueryService.GetCurrentStatus: %w", err)
	}
	status := CurrentStatus{Server: server}

	status.LatestEvent, err = q.repos.Events.GetLatestEvent(ctx, server.ID)
	if err != nil {
		return CurrentStatus{}, fmt.Errorf("QueryService.GetCurrentStatus: %w", err)
	}

	outage, err := q.repos.Outages.GetOpenOutage(ctx, server.ID)
	if err != nil {
		return CurrentStatus{}, fmt.Errorf("QueryService.GetCurrentStatus: %w", err)
	}
	if outage != nil {
		status.OutageOpen = true
		startedAt := outage.StartedAt
		status.OutageStartedAt = &startedAt
	}

	now := q.now().UTC()
	up, total, err := q.repos.Snapshots.SumChecks(ctx, server.ID, model.Window1m, now.Add(-currentUptimeRange), now)
	if err != nil {
		return CurrentStatus{}, fmt.Errorf("QueryService.GetCurrentStatus: %w", err)
	}
	if total > 0 {
		ratio := model.RoundRatio(float64(up) / float64(total))
		status.UptimeLastHour = &ratio
	}
	return status, nil
}

func (q *queryService) GetOutages(ctx context.Context, gameID string, code string, from *time.Time, to *time.Time) ([]model.Outage, error) {
	start, end, err := q.resolveRange(from, to, defaultOutagesRange)
	if err != nil {
		return nil, fmt.Errorf("QueryService.GetOutages: %w", err)
	}
	server, err := q.repos.Servers.GetServerByCode(ctx, gameID, code)
	if err != nil {
		return nil, fmt.Errorf("QueryService.GetOutages: %w", err)
	}
	outages, err := q.repos.Outages.GetOutages(ctx, server.ID, start, end)
	if err != nil {
		return nil, fmt.Errorf("QueryService.GetOutages: %w", err)
	}
	return outages, nil
}

func (q *queryService) GetFleetSummary(ctx context.Context, gameID string, from *time.Time, to *time.Time) (repository.FleetSummary, error) {
	if q.eventIndex == nil {
		return repository.FleetSummary{}, fmt.Errorf("QueryService.GetFleetSummary: %w", apperrors.ErrFleetSummaryUnavailable)
	}
	start, end, err := q.resolveRange(from, to, defaultEventsRange)
	if err != nil {
		return repository.FleetSummary{}, fmt.Errorf("QueryService.GetFleetSummary: %w", err)
	}
	summary, err := q.eventIndex.GetFleetSummary(ctx, gameID, start, end)
	if err != nil {
		return repository.FleetSummary{}, fmt.Errorf("QueryService.GetFleetSummary: %w", err)
	}
	return summary, nil
}

// NewQueryService builds the read path. eventIndex may be nil when the
// elasticsearch mirror is disabled.
func NewQueryService(repos repository.Repositories, eventIndex repository.EventIndexRepository) QueryService {
	return &queryService{
		repos:      repos,
		eventIndex: eventIndex,
		now:        time.Now,
	}
}
