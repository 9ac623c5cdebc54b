package handler

import (
	"GameHub_Monitor/internal/monitor-service/api/dto/request"
	"GameHub_Monitor/internal/monitor-service/api/dto/response"
	"GameHub_Monitor/internal/monitor-service/model"
	"GameHub_Monitor/internal/monitor-service/service"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const RegistrationKeyHeader = "X-Registration-Key"

type HealthHandler interface {
	IngestEvent() gin.HandlerFunc
	GetEvents() gin.HandlerFunc
	GetSnapshots() gin.HandlerFunc
	ExportSnapshots() gin.HandlerFunc
	GetCurrentStatus() gin.HandlerFunc
	GetOutages() gin.HandlerFunc
	GetFleetSummary() gin.HandlerFunc
}

type healthHandler struct {
	Logger
	ingestionService service.IngestionService
	queryService     service.QueryService
}

func (h *healthHandler) IngestEvent() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req request.IngestEventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.Response{
				Message: bindingErrorMessage(err),
			})
			return
		}
		gameID := c.Param("game_id")
		res, err := h.ingestionService.Ingest(c, gameID, service.IngestRequest{
			ServerCode:      c.Param("code"),
			ObservedAt:      req.ObservedAt,
			Status:          req.Status,
			Method:          req.Method,
			MetricName:      req.MetricName,
			MetricValue:     req.MetricValue,
			MetricUnit:      req.MetricUnit,
			HTTPStatus:      req.HTTPStatus,
			Detail:          req.Detail,
			Meta:            req.Meta,
			Host:            req.Host,
			Port:            req.Port,
			DisplayName:     req.DisplayName,
			RegistrationKey: c.GetHeader(RegistrationKeyHeader),
		})
		if err != nil {
			err = fmt.Errorf("HealthHandler.IngestEvent: %w", err)
			respondServiceError(c, h.Logger, err, "failed to ingest health event")
			return
		}
		c.JSON(http.StatusAccepted, response.IngestEventResponse{
			EventID:        res.Event.ID,
			ServerID:       res.Server.ID,
			ObservedAt:     res.Event.ObservedAt,
			AutoRegistered: res.AutoRegistered,
			OutageOpened:   res.OutageOpened,
			OutageClosed:   res.OutageClosed,
		})
	}
}

func (h *healthHandler) GetEvents() gin.HandlerFunc {
	return func(c *gin.Context) {
		from, ok := parseTimeQuery(c, "from")
		if !ok {
			return
		}
		to, ok := parseTimeQuery(c, "to")
		if !ok {
			return
		}
		limit := 0
		if raw := c.Query("limit"); raw != "" {
			l, err := strconv.Atoi(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, response.Response{
					Message: "Limit must be an integer",
				})
				return
			}
			limit = l
		}
		events, err := h.queryService.GetEvents(c, c.Param("game_id"), c.Param("code"), service.EventQuery{
			From:       from,
			To:         to,
			MetricName: c.Query("metric"),
			Limit:      limit,
			Order:      c.Query("order"),
		})
		if err != nil {
			err = fmt.Errorf("HealthHandler.GetEvents: %w", err)
			respondServiceError(c, h.Logger, err, "failed to get health events")
			return
		}
		eventsRes := make([]response.EventResponse, 0, len(events))
		for _, e := range events {
			eventsRes = append(eventsRes, response.EventResponse{
				ID:          e.ID,
				ObservedAt:  e.ObservedAt,
				Status:      e.Status,
				Method:      e.Method,
				MetricName:  e.MetricName,
				MetricValue: e.MetricValue,
				MetricUnit:  e.MetricUnit,
				HTTPStatus:  e.HTTPStatus,
				Detail:      e.Detail,
				Meta:        json.RawMessage(e.Meta),
			})
		}
		c.JSON(http.StatusOK, eventsRes)
	}
}

func (h *healthHandler) snapshotQuery(c *gin.Context) (service.SnapshotQuery, bool) {
	from, ok := parseTimeQuery(c, "from")
	if !ok {
		return service.SnapshotQuery{}, false
	}
	to, ok := parseTimeQuery(c, "to")
	if !ok {
		return service.SnapshotQuery{}, false
	}
	return service.SnapshotQuery{
		From:       from,
		To:         to,
		WindowSize: c.Query("window_size"),
	}, true
}

func (h *healthHandler) GetSnapshots() gin.HandlerFunc {
	return func(c *gin.Context) {
		query, ok := h.snapshotQuery(c)
		if !ok {
			return
		}
		snapshots, err := h.queryService.GetSnapshots(c, c.Param("game_id"), c.Param("code"), query)
		if err != nil {
			err = fmt.Errorf("HealthHandler.GetSnapshots: %w", err)
			respondServiceError(c, h.Logger, err, "failed to get health snapshots")
			return
		}
		snapshotsRes := make([]response.SnapshotResponse, 0, len(snapshots))
		for _, s := range snapshots {
			snapshotsRes = append(snapshotsRes, response.SnapshotResponse{
				WindowStart:  s.WindowStart,
				WindowSize:   s.WindowSize,
				ChecksTotal:  s.ChecksTotal,
				ChecksUp:     s.ChecksUp,
				UptimeRatio:  s.UptimeRatio,
				MetricName:   s.MetricName,
				MetricUnit:   s.MetricUnit,
				MetricAvg:    s.MetricAvg,
				MetricP50:    s.MetricP50,
				MetricP95:    s.MetricP95,
				LastStatus:   s.LastStatus,
				LastChangeAt: s.LastChangeAt,
			})
		}
		c.JSON(http.StatusOK, snapshotsRes)
	}
}

func (h *healthHandler) ExportSnapshots() gin.HandlerFunc {
	return func(c *gin.Context) {
		query, ok := h.snapshotQuery(c)
		if !ok {
			return
		}
		code := c.Param("code")
		snapshots, err := h.queryService.GetSnapshots(c, c.Param("game_id"), code, query)
		if err != nil {
			err = fmt.Errorf("HealthHandler.ExportSnapshots: %w", err)
			respondServiceError(c, h.Logger, err, "failed to export health snapshots")
			return
		}
		file, err := generateSnapshotsExcelFile(snapshots)
		if err != nil {
			err = fmt.Errorf("HealthHandler.ExportSnapshots: %w", err)
			h.LoggingError(c, err, "failed to export health snapshots", zap.ErrorLevel)
			c.JSON(http.StatusInternalServerError, response.Response{
				Message: "Internal server error",
			})
			return
		}
		defer file.Close()
		fileName := fmt.Sprintf("snapshots-%s-%s.xlsx", code, time.Now().UTC().Format("2006-01-02T15-04-05"))
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", fileName))
		if err = file.Write(c.Writer); err != nil {
			err = fmt.Errorf("HealthHandler.ExportSnapshots: %w", err)
			h.LoggingError(c, err, "failed to write snapshots workbook", zap.ErrorLevel)
			return
		}
		c.Status(http.StatusOK)
	}
}

const snapshotsSheet = "Snapshots"

func generateSnapshotsExcelFile(snapshots []model.HealthSnapshot) (*excelize.File, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(snapshotsSheet)
	if err != nil {
		f.Close()
		return nil, err
	}
	headers := []interface{}{"window_start", "window_size", "checks_total", "checks_up", "uptime_ratio", "metric_name", "metric_avg", "metric_unit", "last_status", "last_change_at"}
	if err = f.SetSheetRow(snapshotsSheet, "A1", &headers); err != nil {
		f.Close()
		return nil, err
	}
	for i, s := range snapshots {
		rowData := []interface{}{
			s.WindowStart.UTC().Format(time.RFC3339),
			s.WindowSize,
			s.ChecksTotal,
			s.ChecksUp,
			s.UptimeRatio,
			derefOrEmpty(s.MetricName),
			"",
			derefOrEmpty(s.MetricUnit),
			s.LastStatus,
			"",
		}
		if s.MetricAvg != nil {
			rowData[6] = *s.MetricAvg
		}
		if s.LastChangeAt != nil {
			rowData[9] = s.LastChangeAt.UTC().Format(time.RFC3339)
		}
		if err = f.SetSheetRow(snapshotsSheet, fmt.Sprintf("A%d", i+2), &rowData); err != nil {
			f.Close()
			return nil, err
		}
	}
	f.SetActiveSheet(index)
	if err = f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (h *healthHandler) GetCurrentStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		status, err := h.queryService.GetCurrentStatus(c, c.Param("game_id"), c.Param("code"))
		if err != nil {
			err = fmt.Errorf("HealthHandler.GetCurrentStatus: %w", err)
			respondServiceError(c, h.Logger, err, "failed to get current status")
			return
		}
		res := response.CurrentStatusResponse{
			ServerID:        status.Server.ID,
			ServerCode:      status.Server.Code,
			Name:            status.Server.Name,
			IsActive:        status.Server.IsActive,
			Status:          model.StatusUnknown,
			OutageOpen:      status.OutageOpen,
			OutageStartedAt: status.OutageStartedAt,
			UptimeLastHour:  status.UptimeLastHour,
		}
		if e := status.LatestEvent; e != nil {
			res.Status = e.Status
			res.ObservedAt = &e.ObservedAt
			res.MetricName = e.MetricName
			res.MetricValue = e.MetricValue
			res.MetricUnit = e.MetricUnit
		}
		c.JSON(http.StatusOK, res)
	}
}

func (h *healthHandler) GetOutages() gin.HandlerFunc {
	return func(c *gin.Context) {
		from, ok := parseTimeQuery(c, "from")
		if !ok {
			return
		}
		to, ok := parseTimeQuery(c, "to")
		if !ok {
			return
		}
		outages, err := h.queryService.GetOutages(c, c.Param("game_id"), c.Param("code"), from, to)
		if err != nil {
			err = fmt.Errorf("HealthHandler.GetOutages: %w", err)
			respondServiceError(c, h.Logger, err, "failed to get outages")
			return
		}
		outagesRes := make([]response.OutageResponse, 0, len(outages))
		for _, o := range outages {
			outagesRes = append(outagesRes, response.OutageResponse{
				ID:            o.ID,
				StartedAt:     o.StartedAt,
				EndedAt:       o.EndedAt,
				DurationSec:   o.DurationSec,
				Reason:        o.Reason,
				SampleEventID: o.SampleEventID,
			})
		}
		c.JSON(http.StatusOK, outagesRes)
	}
}

func (h *healthHandler) GetFleetSummary() gin.HandlerFunc {
	return func(c *gin.Context) {
		from, ok := parseTimeQuery(c, "from")
		if !ok {
			return
		}
		to, ok := parseTimeQuery(c, "to")
		if !ok {
			return
		}
		gameID := c.Param("game_id")
		summary, err := h.queryService.GetFleetSummary(c, gameID, from, to)
		if err != nil {
			err = fmt.Errorf("HealthHandler.GetFleetSummary: %w", err)
			respondServiceError(c, h.Logger, err, "failed to get fleet summary")
			return
		}
		res := response.FleetSummaryResponse{
			GameID:             gameID,
			TotalServers:       summary.TotalServers,
			UpServers:          summary.UpServers,
			DownServers:        summary.DownServers,
			DegradedServers:    summary.DegradedServers,
			UnknownServers:     summary.UnknownServers,
			AverageUptimeRatio: summary.AverageUptimeRatio,
		}
		c.JSON(http.StatusOK, res)
	}
}

func NewHealthHandler(ingestionService service.IngestionService, queryService service.QueryService, logger *zap.Logger) HealthHandler {
	return &healthHandler{
		Logger:           NewLogger(logger),
		ingestionService: ingestionService,
		queryService:     queryService,
	}
}
