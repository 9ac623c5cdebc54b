package routes

import (
	"GameHub_Monitor/internal/monitor-service/api/handler"
	"GameHub_Monitor/pkg/middleware"

	"github.com/gin-gonic/gin"
)

const (
	ScopeHealthIngest = "health:ingest"
	ScopeHealthRead   = "health:read"
	ScopeRegistrySync = "registry:sync"
)

func SetUpHealthRoutes(r *gin.Engine, healthHandler handler.HealthHandler, registryHandler handler.RegistryHandler, m middleware.ScopeMiddleware) {
	gameRoutes := r.Group("/games/:game_id")
	gameRoutes.GET("/summary", m.RequireScope(ScopeHealthRead), healthHandler.GetFleetSummary())
	gameRoutes.POST("/registry/sync", m.RequireScope(ScopeRegistrySync), registryHandler.SyncRegistry())

	serverRoutes := gameRoutes.Group("/servers/:code")
	serverRoutes.POST("/events", m.RequireScope(ScopeHealthIngest), healthHandler.IngestEvent())
	serverRoutes.GET("/events", m.RequireScope(ScopeHealthRead), healthHandler.GetEvents())
	serverRoutes.GET("/snapshots", m.RequireScope(ScopeHealthRead), healthHandler.GetSnapshots())
	serverRoutes.GET("/snapshots/export", m.RequireScope(ScopeHealthRead), healthHandler.ExportSnapshots())
	serverRoutes.GET("/status", m.RequireScope(ScopeHealthRead), healthHandler.GetCurrentStatus())
	serverRoutes.GET("/outages", m.RequireScope(ScopeHealthRead), healthHandler.GetOutages())
}
