package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	StatusUp       = "UP"
	StatusDown     = "DOWN"
	StatusDegraded = "DEGRADED"
	StatusUnknown  = "UNKNOWN"
)

const (
	MethodHTTP = "http"
	MethodTCP  = "tcp"
)

type HealthEvent struct {
	ID          int64 `gorm:"primaryKey"`
	ServerID    string
	ObservedAt  time.Time
	Status      string
	Method      string
	MetricName  *string
	MetricValue *float64
	MetricUnit  *string
	HTTPStatus  *int `gorm:"column:http_status"`
	Detail      *string
	Meta        datatypes.JSON
	CreatedAt   time.Time
}

func IsValidStatus(status string) bool {
	switch status {
	case StatusUp, StatusDown, StatusDegraded, StatusUnknown:
		return true
	}
	return false
}

func IsValidMethod(method string) bool {
	return method == MethodHTTP || method == MethodTCP
}
