package memstore

import (
	"GameHub_Monitor/internal/monitor-service/model"
	"GameHub_Monitor/internal/monitor-service/repository"
	"context"
	"fmt"
	"sort"
	"time"
)

type snapshotRepository struct {
	view
}

func (r snapshotRepository) ApplyEvent(_ context.Context, inc repository.SnapshotIncrement) (model.HealthSnapshot, error) {
	var snapshot model.HealthSnapshot
	err := r.run(func(log *txLog) error {
		key := snapshotKey{serverID: inc.ServerID, windowStart: inc.WindowStart.UnixNano(), windowSize: inc.WindowSize}
		prev, exists := r.store.snapshots[key]
		snapshot = prev
		now := r.store.now()
		if !exists {
			r.store.nextSnapshotID++
			snapshot = model.HealthSnapshot{
				ID:          r.store.nextSnapshotID,
				ServerID:    inc.ServerID,
				WindowStart: inc.WindowStart.UTC(),
				WindowSize:  inc.WindowSize,
				CreatedAt:   now,
			}
		}
		snapshot.Apply(inc.Status, inc.ObservedAt, inc.MetricName, inc.MetricValue, inc.MetricUnit)
		snapshot.UpdatedAt = now
		r.store.snapshots[key] = snapshot
		log.push(func() {
			if exists {
				r.store.snapshots[key] = prev
				return
			}
			delete(r.store.snapshots, key)
			r.store.nextSnapshotID--
		})
		return nil
	})
	if err != nil {
		return snapshot, fmt.Errorf("SnapshotRepository.ApplyEvent: %w", err)
	}
	return snapshot, nil
}

func (r snapshotRepository) inRange(serverID string, windowSize string, from time.Time, to time.Time) []model.HealthSnapshot {
	var snapshots []model.HealthSnapshot
	for _, s := range r.store.snapshots {
		if s.ServerID != serverID || s.WindowSize != windowSize {
			continue
		}
		if s.WindowStart.Before(from) || s.WindowStart.After(to) {
			continue
		}
		snapshots = append(snapshots, s)
	}
	return snapshots
}

func (r snapshotRepository) GetSnapshots(_ context.Context, serverID string, windowSize string, from time.Time, to time.Time) ([]model.HealthSnapshot, error) {
	var snapshots []model.HealthSnapshot
	_ = r.run(func(*txLog) error {
		snapshots = r.inRange(serverID, windowSize, from, to)
		return nil
	})
	sort.Slice(snapshots, func(i, j int) bool { return snapshots[i].WindowStart.Before(snapshots[j].WindowStart) })
	return snapshots, nil
}

func (r snapshotRepository) SumChecks(_ context.Context, serverID string, windowSize string, from time.Time, to time.Time) (int64, int64, error) {
	var up, total int64
	_ = r.run(func(*txLog) error {
		for _, s := range r.inRange(serverID, windowSize, from, to) {
			up += s.ChecksUp
			total += s.ChecksTotal
		}
		return nil
	})
	return up, total, nil
}
