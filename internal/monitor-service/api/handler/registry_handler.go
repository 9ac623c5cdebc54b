package handler

import (
	"GameHub_Monitor/internal/monitor-service/api/dto/request"
	"GameHub_Monitor/internal/monitor-service/api/dto/response"
	"GameHub_Monitor/internal/monitor-service/service"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RegistryHandler interface {
	SyncRegistry() gin.HandlerFunc
}

type registryHandler struct {
	Logger
	syncService       service.RegistrySyncService
	defaultActiveOnly bool
}

func (r *registryHandler) SyncRegistry() gin.HandlerFunc {
	return func(c *gin.Context) {
		activeOnly := r.defaultActiveOnly
		if raw := c.Query("active_only"); raw != "" {
			v, err := strconv.ParseBool(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, response.Response{
					Message: "active_only must be a boolean",
				})
				return
			}
			activeOnly = v
		}
		// the body is optional: without one the configured list for the game is synced
		var req request.SyncRegistryRequest
		if c.Request.Body != nil && c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
				c.JSON(http.StatusBadRequest, response.Response{
					Message: bindingErrorMessage(err),
				})
				return
			}
		}

		gameID := c.Param("game_id")
		var (
			result service.SyncResult
			err    error
		)
		if req.Entries != nil {
			result, err = r.syncService.Sync(c, gameID, req.Entries, activeOnly)
		} else {
			result, err = r.syncService.SyncConfigured(c, gameID, activeOnly)
		}
		if err != nil {
			err = fmt.Errorf("RegistryHandler.SyncRegistry: %w", err)
			respondServiceError(c, r.Logger, err, "failed to sync registry")
			return
		}
		c.JSON(http.StatusOK, toSyncResponse(result))
	}
}

func toSyncResponse(result service.SyncResult) response.SyncResponse {
	res := response.SyncResponse{
		GameID:        result.GameID,
		Total:         result.Total,
		Created:       result.Created,
		Updated:       result.Updated,
		Unchanged:     result.Unchanged,
		Skipped:       result.Skipped,
		Failed:        result.Failed,
		PublishFailed: result.PublishFailed,
		Servers:       make([]response.SyncedServerResponse, 0, len(result.Servers)),
	}
	for _, s := range result.Servers {
		synced := response.SyncedServerResponse{
			Code:   s.Code,
			Action: s.Action,
			Online: s.Online,
			Error:  s.Error,
		}
		if s.Server != nil {
			isActive := s.Server.IsActive
			synced.ServerID = s.Server.ID
			synced.IsActive = &isActive
		}
		res.Servers = append(res.Servers, synced)
	}
	return res
}

func NewRegistryHandler(syncService service.RegistrySyncService, defaultActiveOnly bool, logger *zap.Logger) RegistryHandler {
	return &registryHandler{
		Logger:            NewLogger(logger),
		syncService:       syncService,
		defaultActiveOnly: defaultActiveOnly,
	}
}
