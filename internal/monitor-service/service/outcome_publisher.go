package service

import (
	"GameHub_Monitor/internal/monitor-service/model"
	"GameHub_Monitor/pkg/infra"
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
)

// OutcomePublisher hands probe outcomes to the ingestion pipeline.
type OutcomePublisher interface {
	Publish(ctx context.Context, msg model.HealthEventMessage) error
}

type kafkaOutcomePublisher struct {
	writer infra.KafkaWriter
}

func (k *kafkaOutcomePublisher) Publish(ctx context.Context, msg model.HealthEventMessage) error {
	b, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("OutcomePublisher.Publish: %w", err)
	}
	err = k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.Key()),
		Value: b,
	})
	if err != nil {
		return fmt.Errorf("OutcomePublisher.Publish: %w", err)
	}
	return nil
}

func NewKafkaOutcomePublisher(writer infra.KafkaWriter) OutcomePublisher {
	return &kafkaOutcomePublisher{
		writer: writer,
	}
}

type ingestionOutcomePublisher struct {
	ingestion IngestionService
}

func (i *ingestionOutcomePublisher) Publish(ctx context.Context, msg model.HealthEventMessage) error {
	if _, err := i.ingestion.Ingest(ctx, msg.GameID, IngestRequestFromMessage(msg, "")); err != nil {
		return fmt.Errorf("OutcomePublisher.Publish: %w", err)
	}
	return nil
}

// NewIngestionOutcomePublisher ingests outcomes in process, without a broker.
func NewIngestionOutcomePublisher(ingestion IngestionService) OutcomePublisher {
	return &ingestionOutcomePublisher{
		ingestion: ingestion,
	}
}

func IngestRequestFromMessage(msg model.HealthEventMessage, registrationKey string) IngestRequest {
	return IngestRequest{
		ServerCode:      msg.ServerCode,
		ObservedAt:      msg.ObservedAt,
		Status:          msg.Status,
		Method:          msg.Method,
		MetricName:      msg.MetricName,
		MetricValue:     msg.MetricValue,
		MetricUnit:      msg.MetricUnit,
		HTTPStatus:      msg.HTTPStatus,
		Detail:          msg.Detail,
		Meta:            msg.Meta,
		Host:            msg.Host,
		Port:            msg.Port,
		DisplayName:     msg.DisplayName,
		RegistrationKey: registrationKey,
	}
}
