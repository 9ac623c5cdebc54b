package repository

import (
	"GameHub_Monitor/internal/monitor-service/model"
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var eventColumns = []string{"id", "server_id", "observed_at", "status", "method", "metric_name", "metric_value", "metric_unit", "http_status", "detail", "meta", "created_at"}

func TestEventRepository_CreateEvent(t *testing.T) {
	testErr := errors.New("test error")
	latency := 12.5
	metric := "latency"

	testCases := []struct {
		name          string
		mockSetup     func(mock sqlmock.Sqlmock)
		expectedError error
	}{
		{
			name: "Success",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "health_events"`)).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
				mock.ExpectCommit()
			},
		},
		{
			name: "Database error",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "health_events"`)).
					WillReturnError(testErr)
				mock.ExpectRollback()
			},
			expectedError: testErr,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := setupTestDB(t)
			repo := NewEventRepository(db)
			tc.mockSetup(mock)

			event, err := repo.CreateEvent(context.Background(), model.HealthEvent{
				ServerID:    "srv-1",
				ObservedAt:  time.Now(),
				Status:      model.StatusUp,
				Method:      model.MethodHTTP,
				MetricName:  &metric,
				MetricValue: &latency,
			})
			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(42), event.ID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_GetEvents(t *testing.T) {
	now := time.Now().UTC()
	from := now.Add(-time.Hour)

	testCases := []struct {
		name          string
		filter        EventFilter
		expectedQuery string
	}{
		{
			name:          "Descending with metric filter",
			filter:        EventFilter{From: from, To: now, MetricName: "latency", Limit: 10, Descending: true},
			expectedQuery: `SELECT \* FROM "health_events" WHERE server_id = \$1 AND \(observed_at >= \$2 AND observed_at <= \$3\) AND metric_name = \$4 ORDER BY observed_at DESC, id DESC LIMIT`,
		},
		{
			name:          "Ascending",
			filter:        EventFilter{From: from, To: now, Limit: 500},
			expectedQuery: `SELECT \* FROM "health_events" WHERE server_id = \$1 AND \(observed_at >= \$2 AND observed_at <= \$3\) ORDER BY observed_at ASC, id ASC LIMIT`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := setupTestDB(t)
			repo := NewEventRepository(db)

			mock.ExpectQuery(tc.expectedQuery).
				WillReturnRows(sqlmock.NewRows(eventColumns).
					AddRow(2, "srv-1", now, "UP", "http", "latency", 10.0, "ms", 200, nil, []byte(`{}`), now).
					AddRow(1, "srv-1", from, "DOWN", "http", nil, nil, nil, 500, "HTTP 500", []byte(`{}`), from))

			events, err := repo.GetEvents(context.Background(), "srv-1", tc.filter)
			require.NoError(t, err)
			require.Len(t, events, 2)
			require.NotNil(t, events[0].HTTPStatus)
			assert.Equal(t, 200, *events[0].HTTPStatus)
			assert.Nil(t, events[1].MetricValue)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_GetLatestEvent(t *testing.T) {
	now := time.Now().UTC()

	t.Run("Found", func(t *testing.T) {
		db, mock := setupTestDB(t)
		repo := NewEventRepository(db)
		mock.ExpectQuery(`SELECT \* FROM "health_events" WHERE server_id = \$1 ORDER BY observed_at DESC, id DESC LIMIT`).
			WillReturnRows(sqlmock.NewRows(eventColumns).
				AddRow(7, "srv-1", now, "DEGRADED", "tcp", nil, nil, nil, nil, nil, []byte(`{}`), now))

		event, err := repo.GetLatestEvent(context.Background(), "srv-1")
		require.NoError(t, err)
		require.NotNil(t, event)
		assert.Equal(t, model.StatusDegraded, event.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("No events", func(t *testing.T) {
		db, mock := setupTestDB(t)
		repo := NewEventRepository(db)
		mock.ExpectQuery(`SELECT \* FROM "health_events"`).
			WillReturnRows(sqlmock.NewRows(eventColumns))

		event, err := repo.GetLatestEvent(context.Background(), "srv-1")
		require.NoError(t, err)
		assert.Nil(t, event)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
