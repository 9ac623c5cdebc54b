package model

import "time"

// HealthEventMessage is the JSON envelope carried on the health events topic.
// It is keyed by game_id/server_code so one server's events stay ordered.
type HealthEventMessage struct {
	GameID      string                 `json:"game_id"`
	ServerCode  string                 `json:"server_code"`
	ObservedAt  *time.Time             `json:"observed_at,omitempty"`
	Status      string                 `json:"status"`
	Method      string                 `json:"method"`
	MetricName  *string                `json:"metric_name,omitempty"`
	MetricValue *float64               `json:"metric_value,omitempty"`
	MetricUnit  *string                `json:"metric_unit,omitempty"`
	HTTPStatus  *int                   `json:"http_status,omitempty"`
	Detail      *string                `json:"detail,omitempty"`
	Meta        map[string]interface{} `json:"meta,omitempty"`
	Host        *string                `json:"host,omitempty"`
	Port        *int                   `json:"port,omitempty"`
	DisplayName *string                `json:"display_name,omitempty"`
}

func (m HealthEventMessage) Key() string {
	return m.GameID + "/" + m.ServerCode
}
