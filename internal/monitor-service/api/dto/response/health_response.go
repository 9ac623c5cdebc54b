package response

import (
	"encoding/json"
	"time"
)

type IngestEventResponse struct {
	EventID        int64     `json:"event_id"`
	ServerID       string    `json:"server_id"`
	ObservedAt     time.Time `json:"observed_at"`
	AutoRegistered bool      `json:"auto_registered"`
	OutageOpened   bool      `json:"outage_opened"`
	OutageClosed   bool      `json:"outage_closed"`
}

type EventResponse struct {
	ID          int64           `json:"id"`
	ObservedAt  time.Time       `json:"observed_at"`
	Status      string          `json:"status"`
	Method      string          `json:"method"`
	MetricName  *string         `json:"metric_name,omitempty"`
	MetricValue *float64        `json:"metric_value,omitempty"`
	MetricUnit  *string         `json:"metric_unit,omitempty"`
	HTTPStatus  *int            `json:"http_status,omitempty"`
	Detail      *string         `json:"detail,omitempty"`
	Meta        json.RawMessage `json:"meta,omitempty"`
}

type SnapshotResponse struct {
	WindowStart  time.Time  `json:"window_start"`
	WindowSize   string     `json:"window_size"`
	ChecksTotal  int64      `json:"checks_total"`
	ChecksUp     int64      `json:"checks_up"`
	UptimeRatio  float64    `json:"uptime_ratio"`
	MetricName   *string    `json:"metric_name,omitempty"`
	MetricUnit   *string    `json:"metric_unit,omitempty"`
	MetricAvg    *float64   `json:"metric_avg,omitempty"`
	MetricP50    *float64   `json:"metric_p50"`
	MetricP95    *float64   `json:"metric_p95"`
	LastStatus   string     `json:"last_status"`
	LastChangeAt *time.Time `json:"last_change_at,omitempty"`
}

type CurrentStatusResponse struct {
	ServerID        string     `json:"server_id"`
	ServerCode      string     `json:"server_code"`
	Name            string     `json:"name"`
	IsActive        bool       `json:"is_active"`
	Status          string     `json:"status"`
	ObservedAt      *time.Time `json:"observed_at,omitempty"`
	MetricName      *string    `json:"metric_name,omitempty"`
	MetricValue     *float64   `json:"metric_value,omitempty"`
	MetricUnit      *string    `json:"metric_unit,omitempty"`
	OutageOpen      bool       `json:"outage_open"`
	OutageStartedAt *time.Time `json:"outage_started_at,omitempty"`
	UptimeLastHour  *float64   `json:"uptime_1h"`
}

type OutageResponse struct {
	ID            int64      `json:"id"`
	StartedAt     time.Time  `json:"started_at"`
	EndedAt       *time.Time `json:"ended_at"`
	DurationSec   *int64     `json:"duration_sec"`
	Reason        *string    `json:"reason,omitempty"`
	SampleEventID int64      `json:"sample_event_id"`
}

type FleetSummaryResponse struct {
	GameID             string  `json:"game_id"`
	TotalServers       int     `json:"total_servers"`
	UpServers          int     `json:"up_servers"`
	DownServers        int     `json:"down_servers"`
	DegradedServers    int     `json:"degraded_servers"`
	UnknownServers     int     `json:"unknown_servers"`
	AverageUptimeRatio float64 `json:"average_uptime_ratio"`
}
