package repository

import (
	apperrors "GameHub_Monitor/internal/monitor-service/errors"
	"GameHub_Monitor/internal/monitor-service/model"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
)

type FleetSummary struct {
	TotalServers       int
	UpServers          int
	DownServers        int
	DegradedServers    int
	UnknownServers     int
	AverageUptimeRatio float64
}

// EventIndexRepository mirrors health events into Elasticsearch for
// fleet-wide aggregations. Postgres stays the store of record.
type EventIndexRepository interface {
	EnsureIndex(ctx context.Context) error
	IndexEvent(ctx context.Context, server model.Server, event model.HealthEvent) error
	GetFleetSummary(ctx context.Context, gameID string, startTime time.Time, endTime time.Time) (FleetSummary, error)
}

const esHealthEventIndexName = "health_events"

var esHealthEventMapping = map[string]interface{}{
	"mappings": map[string]interface{}{
		"properties": map[string]interface{}{
			"event_id":       map[string]interface{}{"type": "long"},
			"game_id":        map[string]interface{}{"type": "keyword"},
			"server_id":      map[string]interface{}{"type": "keyword"},
			"server_code":    map[string]interface{}{"type": "keyword"},
			"status":         map[string]interface{}{"type": "keyword"},
			"status_numeric": map[string]interface{}{"type": "integer"},
			"method":         map[string]interface{}{"type": "keyword"},
			"observed_at":    map[string]interface{}{"type": "date"},
			"metric_name":    map[string]interface{}{"type": "keyword"},
			"metric_value":   map[string]interface{}{"type": "double"},
			"metric_unit":    map[string]interface{}{"type": "keyword"},
			"http_status":    map[string]interface{}{"type": "integer"},
		},
	},
}

type esHealthEventDocument struct {
	EventID       int64     `json:"event_id"`
	GameID        string    `json:"game_id"`
	ServerID      string    `json:"server_id"`
	ServerCode    string    `json:"server_code"`
	Status        string    `json:"status"`
	StatusNumeric int       `json:"status_numeric"` // 1 for UP, 0 otherwise
	Method        string    `json:"method"`
	ObservedAt    time.Time `json:"observed_at"`
	MetricName    *string   `json:"metric_name,omitempty"`
	MetricValue   *float64  `json:"metric_value,omitempty"`
	MetricUnit    *string   `json:"metric_unit,omitempty"`
	HTTPStatus    *int      `json:"http_status,omitempty"`
}

type esErrorResponse struct {
	Error struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	}
}

type esFleetSummaryResponse struct {
	Aggregations struct {
		AvgUptimeRatio struct {
			Value *float64 `json:"value"`
		} `json:"avg_uptime_ratio"`
		Servers struct {
			Buckets []struct {
				Key         string `json:"key"`
				LatestEvent struct {
					Hits struct {
						Hits []struct {
							Source struct {
								Status string `json:"status"`
							} `json:"_source"`
						} `json:"hits"`
					} `json:"hits"`
				} `json:"latest_event"`
			} `json:"buckets"`
		} `json:"servers"`
	} `json:"aggregations"`
}

type eventIndexRepository struct {
	es *elasticsearch.Client
}

func (h *eventIndexRepository) EnsureIndex(ctx context.Context) error {
	res, err := h.es.Indices.Exists([]string{esHealthEventIndexName}, h.es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("EventIndexRepo.EnsureIndex: %w", err)
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}

	var buf bytes.Buffer
	if err = json.NewEncoder(&buf).Encode(esHealthEventMapping); err != nil {
		return fmt.Errorf("EventIndexRepo.EnsureIndex encode mapping: %w", err)
	}
	res, err = h.es.Indices.Create(esHealthEventIndexName, h.es.Indices.Create.WithContext(ctx), h.es.Indices.Create.WithBody(&buf))
	if err != nil {
		return fmt.Errorf("EventIndexRepo.EnsureIndex: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		var e esErrorResponse
		if err = json.NewDecoder(res.Body).Decode(&e); err != nil {
			return fmt.Errorf("EventIndexRepo.EnsureIndex decode err response: %w", err)
		}
		if e.Error.Type == "resource_already_exists_exception" {
			return nil
		}
		return fmt.Errorf("EventIndexRepo.EnsureIndex: %w", apperrors.NewElasticSearchError(res.StatusCode, e.Error.Type, e.Error.Reason))
	}
	return nil
}

func (h *eventIndexRepository) IndexEvent(ctx context.Context, server model.Server, event model.HealthEvent) error {
	doc := esHealthEventDocument{
		EventID:     event.ID,
		GameID:      server.GameID,
		ServerID:    server.ID,
		ServerCode:  server.Code,
		Status:      event.Status,
		Method:      event.Method,
		ObservedAt:  event.ObservedAt.UTC(),
		MetricName:  event.MetricName,
		MetricValue: event.MetricValue,
		MetricUnit:  event.MetricUnit,
		HTTPStatus:  event.HTTPStatus,
	}
	if event.Status == model.StatusUp {
		doc.StatusNumeric = 1
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(doc); err != nil {
		return fmt.Errorf("EventIndexRepo.IndexEvent encode document: %w", err)
	}
	res, err := h.es.Index(esHealthEventIndexName, &buf,
		h.es.Index.WithContext(ctx),
		h.es.Index.WithDocumentID(strconv.FormatInt(event.ID, 10)))
	if err != nil {
		return fmt.Errorf("EventIndexRepo.IndexEvent: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		var e esErrorResponse
		if err = json.NewDecoder(res.Body).Decode(&e); err != nil {
			return fmt.Errorf("EventIndexRepo.IndexEvent decode err response: %w", err)
		}
		return fmt.Errorf("EventIndexRepo.IndexEvent: %w", apperrors.NewElasticSearchError(res.StatusCode, e.Error.Type, e.Error.Reason))
	}
	return nil
}

func (h *eventIndexRepository) GetFleetSummary(ctx context.Context, gameID string, startTime time.Time, endTime time.Time) (FleetSummary, error) {
	query := map[string]interface{}{
		"size": 0,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": []map[string]interface{}{
					{
						"term": map[string]interface{}{
							"game_id": gameID,
						},
					},
					{
						"range": map[string]interface{}{
							"observed_at": map[string]interface{}{
								"gte": startTime,
								"lte": endTime,
							},
						},
					},
				},
			},
		},
		"aggs": map[string]interface{}{
			"avg_uptime_ratio": map[string]interface{}{
				"avg": map[string]interface{}{
					"field": "status_numeric",
				},
			},
			"servers": map[string]interface{}{
				"terms": map[string]interface{}{
					"field": "server_code",
					"size":  10000,
				},
				"aggs": map[string]interface{}{
					"latest_event": map[string]interface{}{
						"top_hits": map[string]interface{}{
							"size": 1,
							"sort": []map[string]interface{}{
								{
									"observed_at": map[string]interface{}{
										"order": "desc",
									},
								},
							},
							"_source": map[string]interface{}{
								"includes": "status",
							},
						},
					},
				},
			},
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return FleetSummary{}, fmt.Errorf("EventIndexRepo.GetFleetSummary encode query: %w", err)
	}
	res, err := h.es.Search(
		h.es.Search.WithContext(ctx),
		h.es.Search.WithIndex(esHealthEventIndexName),
		h.es.Search.WithBody(&buf))
	if err != nil {
		return FleetSummary{}, fmt.Errorf("EventIndexRepo.GetFleetSummary: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		var e esErrorResponse
		if err = json.NewDecoder(res.Body).Decode(&e); err != nil {
			return FleetSummary{}, fmt.Errorf("EventIndexRepo.GetFleetSummary decode err response: %w", err)
		}
		return FleetSummary{}, fmt.Errorf("EventIndexRepo.GetFleetSummary: %w", apperrors.NewElasticSearchError(res.StatusCode, e.Error.Type, e.Error.Reason))
	}

	var fleetRes esFleetSummaryResponse
	if err = json.NewDecoder(res.Body).Decode(&fleetRes); err != nil {
		return FleetSummary{}, fmt.Errorf("EventIndexRepo.GetFleetSummary decode response body: %w", err)
	}
	summary := FleetSummary{
		TotalServers: len(fleetRes.Aggregations.Servers.Buckets),
	}
	if v := fleetRes.Aggregations.AvgUptimeRatio.Value; v != nil {
		summary.AverageUptimeRatio = model.RoundRatio(*v)
	}
	for _, bucket := range fleetRes.Aggregations.Servers.Buckets {
		status := model.StatusUnknown
		if hits := bucket.LatestEvent.Hits.Hits; len(hits) > 0 {
			status = hits[0].Source.Status
		}
		switch status {
		case model.StatusUp:
			summary.UpServers++
		case model.StatusDown:
			summary.DownServers++
		case model.StatusDegraded:
			summary.DegradedServers++
		default:
			summary.UnknownServers++
		}
	}
	return summary, nil
}

func NewEventIndexRepository(esClient *elasticsearch.Client) EventIndexRepository {
	return &eventIndexRepository{
		es: esClient,
	}
}
