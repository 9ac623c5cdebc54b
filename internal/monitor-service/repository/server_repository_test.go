package repository

import (
	apperrors "GameHub_Monitor/internal/monitor-service/errors"
	"GameHub_Monitor/internal/monitor-service/model"
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

var serverColumns = []string{"id", "game_id", "code", "name", "host", "port", "is_active", "meta", "created_at", "updated_at"}

func TestServerRepository_GetServerByCode(t *testing.T) {
	testErr := errors.New("test error")
	now := time.Now()

	testCases := []struct {
		name          string
		mockSetup     func(mock sqlmock.Sqlmock)
		expectedError error
	}{
		{
			name: "Success",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "servers" WHERE game_id = $1 AND code = $2`)).
					WillReturnRows(sqlmock.NewRows(serverColumns).
						AddRow("srv-1", "game-1", "eu-1", "EU 1", "10.0.0.1", 27015, true, []byte(`{}`), now, now))
			},
		},
		{
			name: "Not found",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "servers" WHERE game_id = $1 AND code = $2`)).
					WillReturnError(gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrServerNotFound,
		},
		{
			name: "Database error",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "servers" WHERE game_id = $1 AND code = $2`)).
					WillReturnError(testErr)
			},
			expectedError: testErr,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := setupTestDB(t)
			repo := NewServerRepository(db)
			tc.mockSetup(mock)

			server, err := repo.GetServerByCode(context.Background(), "game-1", "eu-1")
			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "srv-1", server.ID)
				assert.Equal(t, 27015, server.Port)
				assert.True(t, server.IsActive)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestServerRepository_GetServersByGame(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewServerRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "servers" WHERE game_id = $1 ORDER BY code`)).
		WithArgs("game-1").
		WillReturnRows(sqlmock.NewRows(serverColumns).
			AddRow("srv-1", "game-1", "eu-1", "EU 1", "10.0.0.1", 27015, true, []byte(`{}`), now, now).
			AddRow("srv-2", "game-1", "us-1", "US 1", "10.0.0.2", 27015, false, []byte(`{}`), now, now))

	servers, err := repo.GetServersByGame(context.Background(), "game-1")
	require.NoError(t, err)
	require.Len(t, servers, 2)
	assert.Equal(t, "us-1", servers[1].Code)
	assert.False(t, servers[1].IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServerRepository_CreateServer(t *testing.T) {
	testErr := errors.New("test error")

	testCases := []struct {
		name          string
		input         model.Server
		mockSetup     func(mock sqlmock.Sqlmock)
		expectedError error
	}{
		{
			name:  "Success, id generated",
			input: model.Server{GameID: "game-1", Code: "eu-1", Host: "10.0.0.1", Port: 80, IsActive: true},
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "servers"`)).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name:  "Error, code already exists in game",
			input: model.Server{GameID: "game-1", Code: "eu-1"},
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "servers"`)).
					WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "servers_game_id_code_key"})
				mock.ExpectRollback()
			},
			expectedError: apperrors.ErrServerCodeAlreadyExists,
		},
		{
			name:  "Error, generic database error",
			input: model.Server{GameID: "game-1", Code: "eu-1"},
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "servers"`)).
					WillReturnError(testErr)
				mock.ExpectRollback()
			},
			expectedError: testErr,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := setupTestDB(t)
			repo := NewServerRepository(db)
			tc.mockSetup(mock)

			created, err := repo.CreateServer(context.Background(), tc.input)
			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, created.ID)
				assert.Equal(t, tc.input.Code, created.Code)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestServerRepository_UpdateServer(t *testing.T) {
	testErr := errors.New("test error")
	now := time.Now()
	changes := map[string]interface{}{"host": "10.0.0.9", "port": 7777}

	testCases := []struct {
		name          string
		mockSetup     func(mock sqlmock.Sqlmock)
		expectedError error
	}{
		{
			name: "Success",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(regexp.QuoteMeta(`UPDATE "servers" SET "host"=$1,"port"=$2,"updated_at"=$3 WHERE id = $4 RETURNING *`)).
					WithArgs("10.0.0.9", 7777, sqlmock.AnyArg(), "srv-1").
					WillReturnRows(sqlmock.NewRows(serverColumns).
						AddRow("srv-1", "game-1", "eu-1", "EU 1", "10.0.0.9", 7777, true, []byte(`{}`), now, now))
				mock.ExpectCommit()
			},
		},
		{
			name: "Not found",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(regexp.QuoteMeta(`UPDATE "servers" SET`)).
					WillReturnRows(sqlmock.NewRows(serverColumns))
				mock.ExpectCommit()
			},
			expectedError: apperrors.ErrServerNotFound,
		},
		{
			name: "Database error",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(regexp.QuoteMeta(`UPDATE "servers" SET`)).
					WillReturnError(testErr)
				mock.ExpectRollback()
			},
			expectedError: testErr,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := setupTestDB(t)
			repo := NewServerRepository(db)
			tc.mockSetup(mock)

			server, err := repo.UpdateServer(context.Background(), "srv-1", changes)
			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "10.0.0.9", server.Host)
				assert.Equal(t, 7777, server.Port)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
