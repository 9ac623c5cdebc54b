package model

import (
	"math"
	"time"
)

type Outage struct {
	ID            int64 `gorm:"primaryKey"`
	ServerID      string
	StartedAt     time.Time
	EndedAt       *time.Time
	DurationSec   *int64
	Reason        *string
	SampleEventID int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Outage) TableName() string {
	return "server_outages"
}

func (o Outage) IsOpen() bool {
	return o.EndedAt == nil
}

// OutageDuration returns whole seconds between start and end, never negative.
func OutageDuration(startedAt, endedAt time.Time) int64 {
	sec := math.Floor(endedAt.Sub(startedAt).Seconds())
	if sec < 0 {
		return 0
	}
	return int64(sec)
}
