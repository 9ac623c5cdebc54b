package memstore

import (
	"GameHub_Monitor/internal/monitor-service/model"
	"context"
	"sort"
	"time"
)

type outageRepository struct {
	view
}

func (r outageRepository) openIndex(serverID string) int {
	for i, o := range r.store.outages {
		if o.ServerID == serverID && o.IsOpen() {
			return i
		}
	}
	return -1
}

func (r outageRepository) OpenOutage(_ context.Context, outage model.Outage) (bool, error) {
	var opened bool
	_ = r.run(func(log *txLog) error {
		if r.openIndex(outage.ServerID) >= 0 {
			return nil
		}
		r.store.nextOutageID++
		now := r.store.now()
		outage.ID = r.store.nextOutageID
		outage.EndedAt, outage.DurationSec = nil, nil
		outage.CreatedAt, outage.UpdatedAt = now, now
		r.store.outages = append(r.store.outages, outage)
		opened = true
		log.push(func() {
			r.store.outages = r.store.outages[:len(r.store.outages)-1]
			r.store.nextOutageID--
		})
		return nil
	})
	return opened, nil
}

func (r outageRepository) CloseOutage(_ context.Context, serverID string, endedAt time.Time) (bool, error) {
	var closed bool
	_ = r.run(func(log *txLog) error {
		i := r.openIndex(serverID)
		if i < 0 {
			return nil
		}
		prev := r.store.outages[i]
		ended := endedAt
		duration := model.OutageDuration(prev.StartedAt, endedAt)
		updated := prev
		updated.EndedAt = &ended
		updated.DurationSec = &duration
		updated.UpdatedAt = r.store.now()
		r.store.outages[i] = updated
		closed = true
		log.push(func() {
			r.store.outages[i] = prev
		})
		return nil
	})
	return closed, nil
}

func (r outageRepository) GetOpenOutage(_ context.Context, serverID string) (*model.Outage, error) {
	var open *model.Outage
	_ = r.run(func(*txLog) error {
		if i := r.openIndex(serverID); i >= 0 {
			found := r.store.outages[i]
			open = &found
		}
		return nil
	})
	return open, nil
}

func (r outageRepository) GetOutages(_ context.Context, serverID string, from time.Time, to time.Time) ([]model.Outage, error) {
	var outages []model.Outage
	_ = r.run(func(*txLog) error {
		for _, o := range r.store.outages {
			if o.ServerID != serverID || o.StartedAt.After(to) {
				continue
			}
			if o.EndedAt != nil && o.EndedAt.Before(from) {
				continue
			}
			outages = append(outages, o)
		}
		return nil
	})
	sort.Slice(outages, func(i, j int) bool { return outages[i].StartedAt.After(outages[j].StartedAt) })
	return outages, nil
}
