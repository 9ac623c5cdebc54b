package repository

import (
	apperrors "GameHub_Monitor/internal/monitor-service/errors"
	"GameHub_Monitor/internal/monitor-service/model"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ServerRepository interface {
	GetServerByCode(ctx context.Context, gameID string, code string) (model.Server, error)
	GetServersByGame(ctx context.Context, gameID string) ([]model.Server, error)
	CreateServer(ctx context.Context, server model.Server) (model.Server, error)
	// UpdateServer applies the given column changes and returns the updated row.
	UpdateServer(ctx context.Context, serverID string, changes map[string]interface{}) (model.Server, error)
}

type serverRepository struct {
	db *gorm.DB
}

func (s *serverRepository) GetServerByCode(ctx context.Context, gameID string, code string) (model.Server, error) {
	var server model.Server
	result := s.db.WithContext(ctx).Where("game_id = ? AND code = ?", gameID, code).Take(&server)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return server, fmt.Errorf("ServerRepository.GetServerByCode: %w", apperrors.ErrServerNotFound)
		}
		return server, fmt.Errorf("ServerRepository.GetServerByCode: %w", result.Error)
	}
	return server, nil
}

func (s *serverRepository) GetServersByGame(ctx context.Context, gameID string) ([]model.Server, error) {
	var servers []model.Server
	result := s.db.WithContext(ctx).Where("game_id = ?", gameID).Order("code").Find(&servers)
	if result.Error != nil {
		return nil, fmt.Errorf("ServerRepository.GetServersByGame: %w", result.Error)
	}
	return servers, nil
}

func (s *serverRepository) CreateServer(ctx context.Context, server model.Server) (model.Server, error) {
	if server.ID == "" {
		server.ID = uuid.NewString()
	}
	if len(server.Meta) == 0 {
		server.Meta = datatypes.JSON("{}")
	}
	result := s.db.WithContext(ctx).Create(&server)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			if pgErr.ConstraintName == "servers_game_id_code_key" {
				return server, fmt.Errorf("ServerRepository.CreateServer: %w", apperrors.ErrServerCodeAlreadyExists)
			}
		}
		return server, fmt.Errorf("ServerRepository.CreateServer: %w", result.Error)
	}
	return server, nil
}

func (s *serverRepository) UpdateServer(ctx context.Context, serverID string, changes map[string]interface{}) (model.Server, error) {
	var server model.Server
	result := s.db.WithContext(ctx).Model(&server).Clauses(clause.Returning{}).Where("id = ?", serverID).Updates(changes)
	if result.Error != nil {
		return server, fmt.Errorf("ServerRepository.UpdateServer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return server, fmt.Errorf("ServerRepository.UpdateServer: %w", apperrors.ErrServerNotFound)
	}
	return server, nil
}

func NewServerRepository(db *gorm.DB) ServerRepository {
	return &serverRepository{
		db: db,
	}
}
