package service

import (
	apperrors "GameHub_Monitor/internal/monitor-service/errors"
	"GameHub_Monitor/internal/monitor-service/model"
	"GameHub_Monitor/internal/monitor-service/repository"
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type IngestionConfig struct {
	AutoRegisterEnabled bool
	// AutoRegisterAPIKey, when set, must be presented to auto-register unknown servers.
	AutoRegisterAPIKey string
}

type IngestRequest struct {
	ServerCode  string
	ObservedAt  *time.Time
	Status      string
	Method      string
	MetricName  *string
	MetricValue *float64
	MetricUnit  *string
	HTTPStatus  *int
	Detail      *string
	Meta        map[string]interface{}
	Host        *string
	Port        *int
	DisplayName *string
	// RegistrationKey travels out of band (request header), never inside Meta.
	RegistrationKey string
}

type IngestResult struct {
	Server         model.Server
	Event          model.HealthEvent
	AutoRegistered bool
	ServerUpdated  bool
	OutageOpened   bool
	OutageClosed   bool
}

type IngestionService interface {
	// Ingest records one probe outcome: catalog drift, event, outage transition and
	// snapshot updates commit together or not at all.
	Ingest(ctx context.Context, gameID string, req IngestRequest) (IngestResult, error)
}

type ingestionService struct {
	uow        repository.UnitOfWork
	eventIndex repository.EventIndexRepository
	cache      repository.ServerCache
	cfg        IngestionConfig
	logger     *zap.Logger
	now        func() time.Time
}

// two concurrent first sightings of one code race on the unique key; the loser retries once
const maxIngestAttempts = 2

func (s *ingestionService) Ingest(ctx context.Context, gameID string, req IngestRequest) (IngestResult, error) {
	event, err := s.buildEvent(req)
	if err != nil {
		return IngestResult{}, fmt.Errorf("IngestionService.Ingest: %w", err)
	}

	var result IngestResult
	for attempt := 1; attempt <= maxIngestAttempts; attempt++ {
		result, err = s.ingestOnce(ctx, gameID, req, event)
		if err == nil || !errors.Is(err, apperrors.ErrServerCodeAlreadyExists) {
			break
		}
	}
	if err != nil {
		return IngestResult{}, fmt.Errorf("IngestionService.Ingest: %w", err)
	}

	if result.ServerUpdated && s.cache != nil {
		if e := s.cache.Invalidate(ctx, gameID, req.ServerCode); e != nil {
			s.logger.Warn("failed to invalidate cached server",
				zap.String("game_id", gameID),
				zap.String("server_code", req.ServerCode),
				zap.Error(e))
		}
	}

	if s.eventIndex != nil {
		if e := s.eventIndex.IndexEvent(ctx, result.Server, result.Event); e != nil {
			s.logger.Warn("failed to mirror health event",
				zap.String("game_id", gameID),
				zap.String("server_code", req.ServerCode),
				zap.Int64("event_id", result.Event.ID),
				zap.Error(e))
		}
	}
	return result, nil
}

func (s *ingestionService) buildEvent(req IngestRequest) (model.HealthEvent, error) {
	if strings.TrimSpace(req.ServerCode) == "" {
		return model.HealthEvent{}, apperrors.NewValidationError("server_code", "must not be empty")
	}
	if !model.IsValidStatus(req.Status) {
		return model.HealthEvent{}, apperrors.NewValidationError("status", fmt.Sprintf("unknown status %q", req.Status))
	}
	if !model.IsValidMethod(req.Method) {
		return model.HealthEvent{}, apperrors.NewValidationError("method", fmt.Sprintf("unknown probe method %q", req.Method))
	}
	if req.MetricValue != nil && (math.IsNaN(*req.MetricValue) || math.IsInf(*req.MetricValue, 0)) {
		return model.HealthEvent{}, apperrors.NewValidationError("metric_value", "must be a finite number")
	}
	if req.Port != nil && (*req.Port < 1 || *req.Port > 65535) {
		return model.HealthEvent{}, apperrors.NewValidationError("port", "must be between 1 and 65535")
	}
	if req.ObservedAt != nil && req.ObservedAt.IsZero() {
		return model.HealthEvent{}, apperrors.NewValidationError("observed_at", "must be a valid timestamp")
	}

	observedAt := s.now()
	if req.ObservedAt != nil {
		observedAt = *req.ObservedAt
	}
	event := model.HealthEvent{
		ObservedAt:  observedAt.UTC(),
		Status:      req.Status,
		Method:      req.Method,
		MetricName:  req.MetricName,
		MetricValue: req.MetricValue,
		MetricUnit:  req.MetricUnit,
		HTTPStatus:  req.HTTPStatus,
		Detail:      req.Detail,
	}
	if req.Meta != nil {
		meta, err := json.Marshal(req.Meta)
		if err != nil {
			return model.HealthEvent{}, apperrors.NewValidationError("meta", err.Error())
		}
		event.Meta = datatypes.JSON(meta)
	}
	return event, nil
}

func (s *ingestionService) ingestOnce(ctx context.Context, gameID string, req IngestRequest, event model.HealthEvent) (IngestResult, error) {
	var result IngestResult
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		server, created, updated, err := s.resolveServer(ctx, repos.Servers, gameID, req)
		if err != nil {
			return err
		}
		result.Server = server
		result.AutoRegistered = created
		result.ServerUpdated = updated

		event.ServerID = server.ID
		event, err = repos.Events.CreateEvent(ctx, event)
		if err != nil {
			return err
		}
		result.Event = event

		switch event.Status {
		case model.StatusDown:
			result.OutageOpened, err = repos.Outages.OpenOutage(ctx, model.Outage{
				ServerID:      server.ID,
				StartedAt:     event.ObservedAt,
				Reason:        event.Detail,
				SampleEventID: event.ID,
			})
		case model.StatusUp:
			result.OutageClosed, err = repos.Outages.CloseOutage(ctx, server.ID, event.ObservedAt)
		}
		if err != nil {
			return err
		}

		for _, size := range model.SnapshotWindows {
			_, err = repos.Snapshots.ApplyEvent(ctx, repository.SnapshotIncrement{
				ServerID:    server.ID,
				WindowStart: model.WindowStart(event.ObservedAt, size),
				WindowSize:  size,
				Status:      event.Status,
				ObservedAt:  event.ObservedAt,
				MetricName:  event.MetricName,
				MetricValue: event.MetricValue,
				MetricUnit:  event.MetricUnit,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return result, err
}

func (s *ingestionService) resolveServer(ctx context.Context, servers repository.ServerRepository, gameID string, req IngestRequest) (server model.Server, created bool, updated bool, err error) {
	server, err = servers.GetServerByCode(ctx, gameID, req.ServerCode)
	if err == nil {
		changes := make(map[string]interface{})
		if req.Host != nil && *req.Host != server.Host {
			changes["host"] = *req.Host
		}
		if req.Port != nil && *req.Port != server.Port {
			changes["port"] = *req.Port
		}
		if len(changes) == 0 {
			return server, false, false, nil
		}
		server, err = servers.UpdateServer(ctx, server.ID, changes)
		return server, false, err == nil, err
	}
	if !errors.Is(err, apperrors.ErrServerNotFound) {
		return server, false, false, err
	}

	if !s.cfg.AutoRegisterEnabled {
		return server, false, false, err
	}
	if s.cfg.AutoRegisterAPIKey != "" &&
		subtle.ConstantTimeCompare([]byte(s.cfg.AutoRegisterAPIKey), []byte(req.RegistrationKey)) != 1 {
		return server, false, false, apperrors.ErrUnauthorized
	}

	newServer := model.Server{
		GameID:   gameID,
		Code:     req.ServerCode,
		Name:     req.ServerCode,
		IsActive: true,
		Meta:     datatypes.JSON(`{"auto_registered":true}`),
	}
	if req.DisplayName != nil && *req.DisplayName != "" {
		newServer.Name = *req.DisplayName
	}
	if req.Host != nil {
		newServer.Host = *req.Host
	}
	if req.Port != nil {
		newServer.Port = *req.Port
	}
	server, err = servers.CreateServer(ctx, newServer)
	return server, err == nil, false, err
}

// NewIngestionService builds the write path. eventIndex and cache may be nil.
func NewIngestionService(uow repository.UnitOfWork, eventIndex repository.EventIndexRepository, cache repository.ServerCache, cfg IngestionConfig, logger *zap.Logger) IngestionService {
	return &ingestionService{
		uow:        uow,
		eventIndex: eventIndex,
		cache:      cache,
		cfg:        cfg,
		logger:     logger,
		now:        time.Now,
	}
}
