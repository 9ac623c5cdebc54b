package repository

import (
	"GameHub_Monitor/internal/monitor-service/model"
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// SnapshotIncrement is one observation to be folded into a window bucket.
type SnapshotIncrement struct {
	ServerID    string
	WindowStart time.Time
	WindowSize  string
	Status      string
	ObservedAt  time.Time
	MetricName  *string
	MetricValue *float64
	MetricUnit  *string
}

type SnapshotRepository interface {
	ApplyEvent(ctx context.Context, inc SnapshotIncrement) (model.HealthSnapshot, error)
	GetSnapshots(ctx context.Context, serverID string, windowSize string, from time.Time, to time.Time) ([]model.HealthSnapshot, error)
	SumChecks(ctx context.Context, serverID string, windowSize string, from time.Time, to time.Time) (checksUp int64, checksTotal int64, err error)
}

// The update side reads only the pre-update row (health_snapshots.*) and the
// proposed row (EXCLUDED.*), so concurrent writers serialize on the row lock
// and no increment is lost.
const applyEventSQL = `INSERT INTO health_snapshots
	(server_id, window_start, window_size, checks_total, checks_up, uptime_ratio, metric_avg, metric_name, metric_unit, last_status, last_change_at, created_at, updated_at)
VALUES (?, ?, ?, 1, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
ON CONFLICT (server_id, window_start, window_size) DO UPDATE SET
	checks_total = health_snapshots.checks_total + 1,
	checks_up = health_snapshots.checks_up + EXCLUDED.checks_up,
	uptime_ratio = ROUND((health_snapshots.checks_up + EXCLUDED.checks_up)::numeric / (health_snapshots.checks_total + 1), 4),
	metric_avg = CASE
		WHEN EXCLUDED.metric_avg IS NULL THEN health_snapshots.metric_avg
		ELSE (COALESCE(health_snapshots.metric_avg, 0) * health_snapshots.checks_total + EXCLUDED.metric_avg) / (health_snapshots.checks_total + 1)
	END,
	metric_name = COALESCE(health_snapshots.metric_name, EXCLUDED.metric_name),
	metric_unit = COALESCE(health_snapshots.metric_unit, EXCLUDED.metric_unit),
	last_change_at = CASE
		WHEN health_snapshots.last_status IS DISTINCT FROM EXCLUDED.last_status THEN EXCLUDED.last_change_at
		ELSE health_snapshots.last_change_at
	END,
	last_status = EXCLUDED.last_status,
	updated_at = NOW()
RETURNING *`

type snapshotRepository struct {
	db *gorm.DB
}

func (s *snapshotRepository) ApplyEvent(ctx context.Context, inc SnapshotIncrement) (model.HealthSnapshot, error) {
	var checksUp int64
	var ratio float64
	if inc.Status == model.StatusUp {
		checksUp, ratio = 1, 1
	}
	var snapshot model.HealthSnapshot
	result := s.db.WithContext(ctx).Raw(applyEventSQL,
		inc.ServerID, inc.WindowStart, inc.WindowSize,
		checksUp, ratio, inc.MetricValue, inc.MetricName, inc.MetricUnit,
		inc.Status, inc.ObservedAt,
	).Scan(&snapshot)
	if result.Error != nil {
		return snapshot, fmt.Errorf("SnapshotRepository.ApplyEvent: %w", result.Error)
	}
	return snapshot, nil
}

func (s *snapshotRepository) GetSnapshots(ctx context.Context, serverID string, windowSize string, from time.Time, to time.Time) ([]model.HealthSnapshot, error) {
	var snapshots []model.HealthSnapshot
	result := s.db.WithContext(ctx).
		Where("server_id = ? AND window_size = ?", serverID, windowSize).
		Where("window_start >= ? AND window_start <= ?", from, to).
		Order("window_start ASC").
		Find(&snapshots)
	if result.Error != nil {
		return nil, fmt.Errorf("SnapshotRepository.GetSnapshots: %w", result.Error)
	}
	return snapshots, nil
}

func (s *snapshotRepository) SumChecks(ctx context.Context, serverID string, windowSize string, from time.Time, to time.Time) (int64, int64, error) {
	var sums struct {
		ChecksUp    int64
		ChecksTotal int64
	}
	result := s.db.WithContext(ctx).Model(&model.HealthSnapshot{}).
		Select("COALESCE(SUM(checks_up), 0) AS checks_up, COALESCE(SUM(checks_total), 0) AS checks_total").
		Where("server_id = ? AND window_size = ?", serverID, windowSize).
		Where("window_start >= ? AND window_start <= ?", from, to).
		Scan(&sums)
	if result.Error != nil {
		return 0, 0, fmt.Errorf("SnapshotRepository.SumChecks: %w", result.Error)
	}
	return sums.ChecksUp, sums.ChecksTotal, nil
}

func NewSnapshotRepository(db *gorm.DB) SnapshotRepository {
	return &snapshotRepository{
		db: db,
	}
}
