package routes

import (
	mockhandler "GameHub_Monitor/internal/monitor-service/mocks/api/handler"
	mockmiddleware "GameHub_Monitor/pkg/middleware/mocks"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestSetUpHealthRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockHealthHandler := mockhandler.NewMockHealthHandler(ctrl)
	mockRegistryHandler := mockhandler.NewMockRegistryHandler(ctrl)
	mockMiddleware := mockmiddleware.NewMockScopeMiddleware(ctrl)

	gin.SetMode(gin.TestMode)
	r := gin.New()

	handlerWithName := func(name string) gin.HandlerFunc {
		return func(c *gin.Context) {
			c.String(http.StatusOK, name)
		}
	}
	nextMiddleware := func(c *gin.Context) {
		c.Next()
	}

	mockMiddleware.EXPECT().RequireScope(ScopeHealthRead).Return(nextMiddleware).Times(6)
	mockMiddleware.EXPECT().RequireScope(ScopeHealthIngest).Return(nextMiddleware).Times(1)
	mockMiddleware.EXPECT().RequireScope(ScopeRegistrySync).Return(nextMiddleware).Times(1)

	mockHealthHandler.EXPECT().IngestEvent().Return(handlerWithName("ingest"))
	mockHealthHandler.EXPECT().GetEvents().Return(handlerWithName("events"))
	mockHealthHandler.EXPECT().GetSnapshots().Return(handlerWithName("snapshots"))
	mockHealthHandler.EXPECT().ExportSnapshots().Return(handlerWithName("export"))
	mockHealthHandler.EXPECT().GetCurrentStatus().Return(handlerWithName("status"))
	mockHealthHandler.EXPECT().GetOutages().Return(handlerWithName("outages"))
	mockHealthHandler.EXPECT().GetFleetSummary().Return(handlerWithName("summary"))
	mockRegistryHandler.EXPECT().SyncRegistry().Return(handlerWithName("sync"))

	SetUpHealthRoutes(r, mockHealthHandler, mockRegistryHandler, mockMiddleware)

	testCases := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
		expectedBody   string
	}{
		{name: "Ingest Event Route", method: http.MethodPost, path: "/games/g1/servers/eu-1/events", expectedStatus: http.StatusOK, expectedBody: "ingest"},
		{name: "Get Events Route", method: http.MethodGet, path: "/games/g1/servers/eu-1/events", expectedStatus: http.StatusOK, expectedBody: "events"},
		{name: "Get Snapshots Route", method: http.MethodGet, path: "/games/g1/servers/eu-1/snapshots", expectedStatus: http.StatusOK, expectedBody: "snapshots"},
		{name: "Export Snapshots Route", method: http.MethodGet, path: "/games/g1/servers/eu-1/snapshots/export", expectedStatus: http.StatusOK, expectedBody: "export"},
		{name: "Current Status Route", method: http.MethodGet, path: "/games/g1/servers/eu-1/status", expectedStatus: http.StatusOK, expectedBody: "status"},
		{name: "Outages Route", method: http.MethodGet, path: "/games/g1/servers/eu-1/outages", expectedStatus: http.StatusOK, expectedBody: "outages"},
		{name: "Fleet Summary Route", method: http.MethodGet, path: "/games/g1/summary", expectedStatus: http.StatusOK, expectedBody: "summary"},
		{name: "Registry Sync Route", method: http.MethodPost, path: "/games/g1/registry/sync", expectedStatus: http.StatusOK, expectedBody: "sync"},
		{name: "Non-existent Route", method: http.MethodGet, path: "/servers", expectedStatus: http.StatusNotFound},
		{name: "Delete Is Not Routed", method: http.MethodDelete, path: "/games/g1/servers/eu-1/events", expectedStatus: http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req, _ := http.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.expectedStatus, w.Code)
			if tc.expectedBody != "" {
				assert.Equal(t, tc.expectedBody, w.Body.String())
			}
		})
	}
}
