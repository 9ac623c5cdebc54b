package repository

import (
	"GameHub_Monitor/internal/monitor-service/model"
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type OutageRepository interface {
	// OpenOutage inserts the outage unless the server already has an open one.
	OpenOutage(ctx context.Context, outage model.Outage) (opened bool, err error)
	// CloseOutage closes the open outage of the server, if any.
	CloseOutage(ctx context.Context, serverID string, endedAt time.Time) (closed bool, err error)
	GetOpenOutage(ctx context.Context, serverID string) (*model.Outage, error)
	GetOutages(ctx context.Context, serverID string, from time.Time, to time.Time) ([]model.Outage, error)
}

// Relies on the partial unique index server_outages_one_open_idx.
const openOutageSQL = `INSERT INTO server_outages (server_id, started_at, reason, sample_event_id, created_at, updated_at)
VALUES (?, ?, ?, ?, NOW(), NOW())
ON CONFLICT (server_id) WHERE ended_at IS NULL DO NOTHING`

const closeOutageSQL = `UPDATE server_outages
SET ended_at = ?, duration_sec = GREATEST(0, FLOOR(EXTRACT(EPOCH FROM (?::timestamptz - started_at))))::bigint, updated_at = NOW()
WHERE server_id = ? AND ended_at IS NULL`

type outageRepository struct {
	db *gorm.DB
}

func (o *outageRepository) OpenOutage(ctx context.Context, outage model.Outage) (bool, error) {
	result := o.db.WithContext(ctx).Exec(openOutageSQL, outage.ServerID, outage.StartedAt, outage.Reason, outage.SampleEventID)
	if result.Error != nil {
		return false, fmt.Errorf("OutageRepository.OpenOutage: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (o *outageRepository) CloseOutage(ctx context.Context, serverID string, endedAt time.Time) (bool, error) {
	result := o.db.WithContext(ctx).Exec(closeOutageSQL, endedAt, endedAt, serverID)
	if result.Error != nil {
		return false, fmt.Errorf("OutageRepository.CloseOutage: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (o *outageRepository) GetOpenOutage(ctx context.Context, serverID string) (*model.Outage, error) {
	var outages []model.Outage
	result := o.db.WithContext(ctx).Where("server_id = ? AND ended_at IS NULL", serverID).Limit(1).Find(&outages)
	if result.Error != nil {
		return nil, fmt.Errorf("OutageRepository.GetOpenOutage: %w", result.Error)
	}
	if len(outages) == 0 {
		return nil, nil
	}
	return &outages[0], nil
}

func (o *outageRepository) GetOutages(ctx context.Context, serverID string, from time.Time, to time.Time) ([]model.Outage, error) {
	var outages []model.Outage
	result := o.db.WithContext(ctx).
		Where("server_id = ?", serverID).
		Where("started_at <= ? AND (ended_at IS NULL OR ended_at >= ?)", to, from).
		Order("started_at DESC").
		Find(&outages)
	if result.Error != nil {
		return nil, fmt.Errorf("OutageRepository.GetOutages: %w", result.Error)
	}
	return outages, nil
}

func NewOutageRepository(db *gorm.DB) OutageRepository {
	return &outageRepository{
		db: db,
	}
}
