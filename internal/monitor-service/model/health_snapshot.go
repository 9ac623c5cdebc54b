package model

import (
	"math"
	"time"
)

const (
	Window1m = "1m"
	Window5m = "5m"
	Window1h = "1h"
)

var windowDurations = map[string]time.Duration{
	Window1m: time.Minute,
	Window5m: 5 * time.Minute,
	Window1h: time.Hour,
}

// SnapshotWindows lists the window sizes every ingested event is folded into.
var SnapshotWindows = []string{Window1m, Window5m, Window1h}

func IsValidWindowSize(size string) bool {
	_, ok := windowDurations[size]
	return ok
}

// WindowStart floors t to the start of its window, in UTC.
func WindowStart(t time.Time, size string) time.Time {
	d, ok := windowDurations[size]
	if !ok {
		return t.UTC()
	}
	return t.UTC().Truncate(d)
}

type HealthSnapshot struct {
	ID           int64 `gorm:"primaryKey"`
	ServerID     string
	WindowStart  time.Time
	WindowSize   string
	ChecksTotal  int64
	ChecksUp     int64
	UptimeRatio  float64
	MetricAvg    *float64
	MetricP50    *float64 `gorm:"column:metric_p50"`
	MetricP95    *float64 `gorm:"column:metric_p95"`
	MetricName   *string
	MetricUnit   *string
	LastStatus   string
	LastChangeAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Apply folds one observation into the snapshot. It is the in-process
// counterpart of the snapshot upsert in the postgres repository and must
// stay arithmetically identical to it.
func (s *HealthSnapshot) Apply(status string, observedAt time.Time, metricName *string, metricValue *float64, metricUnit *string) {
	n := s.ChecksTotal
	if metricValue != nil {
		prev := 0.0
		if s.MetricAvg != nil {
			prev = *s.MetricAvg
		}
		avg := (prev*float64(n) + *metricValue) / float64(n+1)
		s.MetricAvg = &avg
	}
	if s.MetricName == nil && metricName != nil {
		name := *metricName
		s.MetricName = &name
	}
	if s.MetricUnit == nil && metricUnit != nil {
		unit := *metricUnit
		s.MetricUnit = &unit
	}

	s.ChecksTotal = n + 1
	if status == StatusUp {
		s.ChecksUp++
	}
	s.UptimeRatio = RoundRatio(float64(s.ChecksUp) / float64(s.ChecksTotal))

	if s.LastStatus != status {
		at := observedAt.UTC()
		s.LastChangeAt = &at
	}
	s.LastStatus = status
}

func RoundRatio(v float64) float64 {
	return math.Round(v*10000) / 10000
}
