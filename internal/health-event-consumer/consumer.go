package health_event_consumer

import (
	apperrors "GameHub_Monitor/internal/monitor-service/errors"
	"GameHub_Monitor/internal/monitor-service/model"
	"GameHub_Monitor/internal/monitor-service/service"
	"GameHub_Monitor/pkg/infra"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type HealthEventConsumer interface {
	Start()
	Stop()
	// Done is closed once the fetch loop has exited.
	Done() <-chan struct{}
}

type healthEventConsumer struct {
	kafkaReader     infra.KafkaReader
	ingestion       service.IngestionService
	registrationKey string
	logger          *zap.Logger
	done            chan struct{}
	stopping        chan struct{}
	stopOnce        sync.Once
	retryBackoff    time.Duration
	maxBackoff      time.Duration
}

// rejected reports errors that will never succeed on redelivery.
func rejected(err error) bool {
	return errors.Is(err, apperrors.ErrServerNotFound) ||
		errors.Is(err, apperrors.ErrUnauthorized) ||
		errors.Is(err, apperrors.ErrValidation)
}

func (h *healthEventConsumer) commit(m kafka.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.kafkaReader.CommitMessages(ctx, m); err != nil {
		err = fmt.Errorf("healthEventConsumer.Start: %w", err)
		h.logger.Error("failed to commit messages", zap.Error(err))
	}
}

func (h *healthEventConsumer) ingest(msg model.HealthEventMessage) (service.IngestResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return h.ingestion.Ingest(ctx, msg.GameID, service.IngestRequestFromMessage(msg, h.registrationKey))
}

func (h *healthEventConsumer) handle(m kafka.Message) {
	if m.Value == nil {
		h.commit(m)
		return
	}
	var msg model.HealthEventMessage
	if err := json.Unmarshal(m.Value, &msg); err != nil {
		err = fmt.Errorf("healthEventConsumer.Start: %w", err)
		h.logger.Error("failed to unmarshal message", zap.Error(err), zap.Int64("offset", m.Offset))
		h.commit(m)
		return
	}

	// Committing a later offset acknowledges this one too, so transient
	// failures are retried here until the event lands or is rejected.
	backoff := h.retryBackoff
	for {
		res, err := h.ingest(msg)
		if err == nil {
			if res.OutageOpened || res.OutageClosed {
				h.logger.Info("outage state changed",
					zap.String("game_id", msg.GameID),
					zap.String("server_code", msg.ServerCode),
					zap.Bool("opened", res.OutageOpened),
					zap.Bool("closed", res.OutageClosed))
			}
			h.commit(m)
			return
		}
		err = fmt.Errorf("healthEventConsumer.Start: %w", err)
		fields := []zap.Field{zap.Error(err), zap.String("game_id", msg.GameID), zap.String("server_code", msg.ServerCode), zap.Int64("offset", m.Offset)}
		if rejected(err) {
			h.logger.Warn("health event rejected", fields...)
			h.commit(m)
			return
		}
		h.logger.Error("failed to ingest health event, retrying", append(fields, zap.Duration("backoff", backoff))...)
		select {
		case <-h.stopping:
			// left uncommitted, redelivered to the next member of the group
			return
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > h.maxBackoff {
			backoff = h.maxBackoff
		}
	}
}

func (h *healthEventConsumer) Start() {
	go func() {
		defer close(h.done)
		for {
			m, err := h.kafkaReader.FetchMessage(context.Background())
			if err != nil {
				if errors.Is(err, io.EOF) {
					return
				}
				err = fmt.Errorf("healthEventConsumer.Start: %w", err)
				h.logger.Error("failed to fetch message", zap.Error(err))
				continue
			}
			h.handle(m)
		}
	}()
}

func (h *healthEventConsumer) Stop() {
	h.stopOnce.Do(func() { close(h.stopping) })
	if err := h.kafkaReader.Close(); err != nil {
		h.logger.Error("failed to close kafka reader", zap.Error(err))
	}
}

func (h *healthEventConsumer) Done() <-chan struct{} {
	return h.done
}

// NewHealthEventConsumer ingests every message of the reader. registrationKey is
// presented for unknown servers when auto-registration requires a key.
func NewHealthEventConsumer(reader infra.KafkaReader, ingestion service.IngestionService, registrationKey string, logger *zap.Logger) HealthEventConsumer {
	return &healthEventConsumer{
		kafkaReader:     reader,
		ingestion:       ingestion,
		registrationKey: registrationKey,
		logger:          logger,
		done:            make(chan struct{}),
		stopping:        make(chan struct{}),
		retryBackoff:    500 * time.Millisecond,
		maxBackoff:      30 * time.Second,
	}
}
