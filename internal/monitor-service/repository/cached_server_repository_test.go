package repository

import (
	apperrors "GameHub_Monitor/internal/monitor-service/errors"
	"GameHub_Monitor/internal/monitor-service/model"
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestCachedServerRepository_GetServerByCode(t *testing.T) {
	ttl := 5 * time.Minute
	key := "health:server:game-1:eu-1"
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	cached := model.Server{ID: "srv-1", GameID: "game-1", Code: "eu-1", Host: "10.0.0.1", Port: 80, IsActive: true, Meta: datatypes.JSON(`{}`), CreatedAt: now, UpdatedAt: now}
	cachedPayload, err := json.Marshal(cached)
	require.NoError(t, err)

	testCases := []struct {
		name          string
		redisSetup    func(mock redismock.ClientMock)
		dbSetup       func(mock sqlmock.Sqlmock)
		expectedError error
	}{
		{
			name: "Cache hit skips the catalog",
			redisSetup: func(mock redismock.ClientMock) {
				mock.ExpectGet(key).SetVal(string(cachedPayload))
			},
			dbSetup: func(mock sqlmock.Sqlmock) {},
		},
		{
			name: "Cache miss reads through and populates",
			redisSetup: func(mock redismock.ClientMock) {
				mock.ExpectGet(key).RedisNil()
				mock.ExpectSet(key, string(cachedPayload), ttl).SetVal("OK")
			},
			dbSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "servers" WHERE game_id = $1 AND code = $2`)).
					WillReturnRows(sqlmock.NewRows(serverColumns).
						AddRow("srv-1", "game-1", "eu-1", "", "10.0.0.1", 80, true, []byte(`{}`), now, now))
			},
		},
		{
			name: "Cache outage falls back to the catalog",
			redisSetup: func(mock redismock.ClientMock) {
				mock.ExpectGet(key).SetErr(errors.New("connection refused"))
				mock.ExpectSet(key, string(cachedPayload), ttl).SetErr(errors.New("connection refused"))
			},
			dbSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "servers"`)).
					WillReturnRows(sqlmock.NewRows(serverColumns).
						AddRow("srv-1", "game-1", "eu-1", "", "10.0.0.1", 80, true, []byte(`{}`), now, now))
			},
		},
		{
			name: "Unknown server is not cached",
			redisSetup: func(mock redismock.ClientMock) {
				mock.ExpectGet(key).RedisNil()
			},
			dbSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "servers"`)).
					WillReturnRows(sqlmock.NewRows(serverColumns))
			},
			expectedError: apperrors.ErrServerNotFound,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db, sqlMock := setupTestDB(t)
			rdb, redisMock := redismock.NewClientMock()
			repo := NewCachedServerRepository(rdb, NewServerRepository(db), ttl)
			tc.redisSetup(redisMock)
			tc.dbSetup(sqlMock)

			server, err := repo.GetServerByCode(context.Background(), "game-1", "eu-1")
			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "srv-1", server.ID)
			}
			assert.NoError(t, sqlMock.ExpectationsWereMet())
			assert.NoError(t, redisMock.ExpectationsWereMet())
		})
	}
}

func TestCachedServerRepository_UpdateServer(t *testing.T) {
	now := time.Now()
	db, sqlMock := setupTestDB(t)
	rdb, redisMock := redismock.NewClientMock()
	repo := NewCachedServerRepository(rdb, NewServerRepository(db), time.Minute)

	sqlMock.ExpectBegin()
	sqlMock.ExpectQuery(regexp.QuoteMeta(`UPDATE "servers" SET`)).
		WillReturnRows(sqlmock.NewRows(serverColumns).
			AddRow("srv-1", "game-1", "eu-1", "EU 1", "10.0.0.1", 80, false, []byte(`{}`), now, now))
	sqlMock.ExpectCommit()
	redisMock.ExpectDel("health:server:game-1:eu-1").SetVal(1)

	server, err := repo.UpdateServer(context.Background(), "srv-1", map[string]interface{}{"is_active": false})
	require.NoError(t, err)
	assert.False(t, server.IsActive)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
	assert.NoError(t, redisMock.ExpectationsWereMet())
}
