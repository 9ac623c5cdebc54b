package request

import "time"

type IngestEventRequest struct {
	ObservedAt  *time.Time             `json:"observed_at"`
	Status      string                 `json:"status" binding:"required"`
	Method      string                 `json:"method" binding:"required"`
	MetricName  *string                `json:"metric_name" binding:"omitempty,max=64"`
	MetricValue *float64               `json:"metric_value"`
	MetricUnit  *string                `json:"metric_unit" binding:"omitempty,max=16"`
	HTTPStatus  *int                   `json:"http_status" binding:"omitempty,gte=100,lte=599"`
	Detail      *string                `json:"detail" binding:"omitempty,max=1024"`
	Meta        map[string]interface{} `json:"meta"`
	Host        *string                `json:"host" binding:"omitempty,hostname_rfc1123|ip"`
	Port        *int                   `json:"port" binding:"omitempty,gte=1,lte=65535"`
	DisplayName *string                `json:"display_name" binding:"omitempty,max=128"`
}
