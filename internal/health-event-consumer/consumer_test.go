package health_event_consumer

import (
	apperrors "GameHub_Monitor/internal/monitor-service/errors"
	mockservice "GameHub_Monitor/internal/monitor-service/mocks/service"
	"GameHub_Monitor/internal/monitor-service/model"
	"GameHub_Monitor/internal/monitor-service/service"
	mockinfra "GameHub_Monitor/pkg/infra/mocks"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func newKafkaMessage(t *testing.T, msg model.HealthEventMessage) kafka.Message {
	value, err := json.Marshal(msg)
	require.NoError(t, err)
	return kafka.Message{Key: []byte(msg.Key()), Value: value}
}

func newTestConsumer(reader *mockinfra.MockKafkaReader, ingestion *mockservice.MockIngestionService) *healthEventConsumer {
	c := NewHealthEventConsumer(reader, ingestion, "key-1", zap.NewNop()).(*healthEventConsumer)
	c.retryBackoff = time.Millisecond
	c.maxBackoff = 4 * time.Millisecond
	return c
}

func waitDone(t *testing.T, c HealthEventConsumer) {
	t.Helper()
	select {
	case <-c.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not stop")
	}
}

func TestHealthEventConsumer_Start(t *testing.T) {
	latency := 12.5
	validMessage := newKafkaMessage(t, model.HealthEventMessage{
		GameID:      "game-1",
		ServerCode:  "eu-1",
		Status:      model.StatusUp,
		Method:      model.MethodTCP,
		MetricValue: &latency,
	})
	invalidJSONMessage := kafka.Message{Value: []byte("{not-a-json'")}
	nilValueMessage := kafka.Message{Value: nil}
	eof := func(r *mockinfra.MockKafkaReader) *gomock.Call {
		return r.EXPECT().FetchMessage(gomock.Any()).Return(kafka.Message{}, io.EOF)
	}

	testCases := []struct {
		name       string
		setupMocks func(mockReader *mockinfra.MockKafkaReader, mockIngestion *mockservice.MockIngestionService)
	}{
		{
			name: "Success Process valid message",
			setupMocks: func(mockReader *mockinfra.MockKafkaReader, mockIngestion *mockservice.MockIngestionService) {
				gomock.InOrder(
					mockReader.EXPECT().FetchMessage(gomock.Any()).Return(validMessage, nil),
					mockIngestion.EXPECT().Ingest(gomock.Any(), "game-1", gomock.Any()).
						DoAndReturn(func(_ context.Context, _ string, req service.IngestRequest) (service.IngestResult, error) {
							assert.Equal(t, "eu-1", req.ServerCode)
							assert.Equal(t, model.StatusUp, req.Status)
							assert.Equal(t, "key-1", req.RegistrationKey)
							if assert.NotNil(t, req.MetricValue) {
								assert.Equal(t, latency, *req.MetricValue)
							}
							return service.IngestResult{OutageClosed: true}, nil
						}),
					mockReader.EXPECT().CommitMessages(gomock.Any(), validMessage).Return(nil),
					eof(mockReader),
				)
			},
		},
		{
			name: "Failure FetchMessage returns a generic error",
			setupMocks: func(mockReader *mockinfra.MockKafkaReader, mockIngestion *mockservice.MockIngestionService) {
				gomock.InOrder(
					mockReader.EXPECT().FetchMessage(gomock.Any()).Return(kafka.Message{}, errors.New("kafka broker unavailable")),
					eof(mockReader),
				)
			},
		},
		{
			name: "Skip Message value is nil",
			setupMocks: func(mockReader *mockinfra.MockKafkaReader, mockIngestion *mockservice.MockIngestionService) {
				gomock.InOrder(
					mockReader.EXPECT().FetchMessage(gomock.Any()).Return(nilValueMessage, nil),
					mockReader.EXPECT().CommitMessages(gomock.Any(), nilValueMessage).Return(nil),
					eof(mockReader),
				)
			},
		},
		{
			name: "Failure JSON unmarshal fails and commit succeeds",
			setupMocks: func(mockReader *mockinfra.MockKafkaReader, mockIngestion *mockservice.MockIngestionService) {
				gomock.InOrder(
					mockReader.EXPECT().FetchMessage(gomock.Any()).Return(invalidJSONMessage, nil),
					mockReader.EXPECT().CommitMessages(gomock.Any(), invalidJSONMessage).Return(nil),
					eof(mockReader),
				)
			},
		},
		{
			name: "Failure JSON unmarshal fails and commit also fails",
			setupMocks: func(mockReader *mockinfra.MockKafkaReader, mockIngestion *mockservice.MockIngestionService) {
				gomock.InOrder(
					mockReader.EXPECT().FetchMessage(gomock.Any()).Return(invalidJSONMessage, nil),
					mockReader.EXPECT().CommitMessages(gomock.Any(), invalidJSONMessage).Return(errors.New("failed to commit")),
					eof(mockReader),
				)
			},
		},
		{
			name: "Rejected unknown server is committed",
			setupMocks: func(mockReader *mockinfra.MockKafkaReader, mockIngestion *mockservice.MockIngestionService) {
				gomock.InOrder(
					mockReader.EXPECT().FetchMessage(gomock.Any()).Return(validMessage, nil),
					mockIngestion.EXPECT().Ingest(gomock.Any(), "game-1", gomock.Any()).
						Return(service.IngestResult{}, fmt.Errorf("IngestionService.Ingest: %w", apperrors.ErrServerNotFound)),
					mockReader.EXPECT().CommitMessages(gomock.Any(), validMessage).Return(nil),
					eof(mockReader),
				)
			},
		},
		{
			name: "Rejected invalid event is committed",
			setupMocks: func(mockReader *mockinfra.MockKafkaReader, mockIngestion *mockservice.MockIngestionService) {
				gomock.InOrder(
					mockReader.EXPECT().FetchMessage(gomock.Any()).Return(validMessage, nil),
					mockIngestion.EXPECT().Ingest(gomock.Any(), "game-1", gomock.Any()).
						Return(service.IngestResult{}, apperrors.NewValidationError("status", "must be one of UP, DOWN, DEGRADED, UNKNOWN")),
					mockReader.EXPECT().CommitMessages(gomock.Any(), validMessage).Return(nil),
					eof(mockReader),
				)
			},
		},
		{
			name: "Rejected registration key is committed",
			setupMocks: func(mockReader *mockinfra.MockKafkaReader, mockIngestion *mockservice.MockIngestionService) {
				gomock.InOrder(
					mockReader.EXPECT().FetchMessage(gomock.Any()).Return(validMessage, nil),
					mockIngestion.EXPECT().Ingest(gomock.Any(), "game-1", gomock.Any()).
						Return(service.IngestResult{}, apperrors.ErrUnauthorized),
					mockReader.EXPECT().CommitMessages(gomock.Any(), validMessage).Return(nil),
					eof(mockReader),
				)
			},
		},
		{
			name: "Storage error is retried before commit",
			setupMocks: func(mockReader *mockinfra.MockKafkaReader, mockIngestion *mockservice.MockIngestionService) {
				gomock.InOrder(
					mockReader.EXPECT().FetchMessage(gomock.Any()).Return(validMessage, nil),
					mockIngestion.EXPECT().Ingest(gomock.Any(), "game-1", gomock.Any()).
						Return(service.IngestResult{}, errors.New("database timeout")).Times(2),
					mockIngestion.EXPECT().Ingest(gomock.Any(), "game-1", gomock.Any()).Return(service.IngestResult{}, nil),
					mockReader.EXPECT().CommitMessages(gomock.Any(), validMessage).Return(nil),
					eof(mockReader),
				)
			},
		},
		{
			name: "Failure CommitMessages fails after successful ingest",
			setupMocks: func(mockReader *mockinfra.MockKafkaReader, mockIngestion *mockservice.MockIngestionService) {
				gomock.InOrder(
					mockReader.EXPECT().FetchMessage(gomock.Any()).Return(validMessage, nil),
					mockIngestion.EXPECT().Ingest(gomock.Any(), gomock.Any(), gomock.Any()).Return(service.IngestResult{}, nil),
					mockReader.EXPECT().CommitMessages(gomock.Any(), validMessage).Return(errors.New("failed to commit offset")),
					eof(mockReader),
				)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			mockReader := mockinfra.NewMockKafkaReader(ctrl)
			mockIngestion := mockservice.NewMockIngestionService(ctrl)

			tc.setupMocks(mockReader, mockIngestion)

			consumer := newTestConsumer(mockReader, mockIngestion)
			consumer.Start()

			waitDone(t, consumer)
		})
	}
}

func TestHealthEventConsumer_FailedOffsetIsNotSkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockReader := mockinfra.NewMockKafkaReader(ctrl)
	mockIngestion := mockservice.NewMockIngestionService(ctrl)

	first := newKafkaMessage(t, model.HealthEventMessage{GameID: "game-1", ServerCode: "eu-1", Status: model.StatusDown, Method: model.MethodTCP})
	first.Offset = 10
	second := newKafkaMessage(t, model.HealthEventMessage{GameID: "game-1", ServerCode: "eu-1", Status: model.StatusUp, Method: model.MethodTCP})
	second.Offset = 11

	var mu sync.Mutex
	var ingested []string
	var committed []int64
	attempts := 0
	mockIngestion.EXPECT().Ingest(gomock.Any(), "game-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, req service.IngestRequest) (service.IngestResult, error) {
			mu.Lock()
			defer mu.Unlock()
			if req.Status == model.StatusDown {
				attempts++
				if attempts == 1 {
					return service.IngestResult{}, errors.New("connection reset by peer")
				}
			}
			ingested = append(ingested, req.Status)
			return service.IngestResult{}, nil
		}).Times(3)

	gomock.InOrder(
		mockReader.EXPECT().FetchMessage(gomock.Any()).Return(first, nil),
		mockReader.EXPECT().FetchMessage(gomock.Any()).Return(second, nil),
		mockReader.EXPECT().FetchMessage(gomock.Any()).Return(kafka.Message{}, io.EOF),
	)
	mockReader.EXPECT().CommitMessages(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msgs ...kafka.Message) error {
			mu.Lock()
			defer mu.Unlock()
			for _, m := range msgs {
				committed = append(committed, m.Offset)
			}
			return nil
		}).Times(2)

	consumer := newTestConsumer(mockReader, mockIngestion)
	consumer.Start()
	waitDone(t, consumer)

	assert.Equal(t, 2, attempts)
	assert.Equal(t, []string{model.StatusDown, model.StatusUp}, ingested)
	assert.Equal(t, []int64{10, 11}, committed)
}

func TestHealthEventConsumer_StopDuringRetry(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockReader := mockinfra.NewMockKafkaReader(ctrl)
	mockIngestion := mockservice.NewMockIngestionService(ctrl)

	msg := newKafkaMessage(t, model.HealthEventMessage{GameID: "game-1", ServerCode: "eu-1", Status: model.StatusUp, Method: model.MethodTCP})
	failing := make(chan struct{}, 1)
	mockIngestion.EXPECT().Ingest(gomock.Any(), "game-1", gomock.Any()).
		DoAndReturn(func(context.Context, string, service.IngestRequest) (service.IngestResult, error) {
			select {
			case failing <- struct{}{}:
			default:
			}
			return service.IngestResult{}, errors.New("database timeout")
		}).MinTimes(1)
	gomock.InOrder(
		mockReader.EXPECT().FetchMessage(gomock.Any()).Return(msg, nil),
		mockReader.EXPECT().FetchMessage(gomock.Any()).Return(kafka.Message{}, io.EOF),
	)
	mockReader.EXPECT().Close().Return(nil)

	consumer := newTestConsumer(mockReader, mockIngestion)
	consumer.Start()
	<-failing
	consumer.Stop()
	waitDone(t, consumer)
}

func TestHealthEventConsumer_Stop(t *testing.T) {
	testCases := []struct {
		name     string
		closeErr error
	}{
		{name: "Closed"},
		{name: "Close fails", closeErr: errors.New("already closed")},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockReader := mockinfra.NewMockKafkaReader(ctrl)
			mockReader.EXPECT().Close().Return(tc.closeErr).Times(1)

			consumer := NewHealthEventConsumer(mockReader, nil, "", zap.NewNop())
			consumer.Stop()
		})
	}
}
