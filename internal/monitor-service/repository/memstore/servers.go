package memstore

import (
	apperrors "GameHub_Monitor/internal/monitor-service/errors"
	"GameHub_Monitor/internal/monitor-service/model"
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type serverRepository struct {
	view
}

func codeKey(gameID string, code string) string {
	return gameID + "/" + code
}

func (r serverRepository) GetServerByCode(_ context.Context, gameID string, code string) (model.Server, error) {
	var server model.Server
	err := r.run(func(*txLog) error {
		id, ok := r.store.codes[codeKey(gameID, code)]
		if !ok {
			return apperrors.ErrServerNotFound
		}
		server = r.store.servers[id]
		return nil
	})
	if err != nil {
		return server, fmt.Errorf("ServerRepository.GetServerByCode: %w", err)
	}
	return server, nil
}

func (r serverRepository) GetServersByGame(_ context.Context, gameID string) ([]model.Server, error) {
	var servers []model.Server
	_ = r.run(func(*txLog) error {
		for _, s := range r.store.servers {
			if s.GameID == gameID {
				servers = append(servers, s)
			}
		}
		return nil
	})
	sort.Slice(servers, func(i, j int) bool { return servers[i].Code < servers[j].Code })
	return servers, nil
}

func (r serverRepository) CreateServer(_ context.Context, server model.Server) (model.Server, error) {
	err := r.run(func(log *txLog) error {
		key := codeKey(server.GameID, server.Code)
		if _, exists := r.store.codes[key]; exists {
			return apperrors.ErrServerCodeAlreadyExists
		}
		if server.ID == "" {
			server.ID = uuid.NewString()
		}
		if len(server.Meta) == 0 {
			server.Meta = datatypes.JSON("{}")
		}
		now := r.store.now()
		server.CreatedAt, server.UpdatedAt = now, now
		r.store.servers[server.ID] = server
		r.store.codes[key] = server.ID
		r.store.catalogWrites++
		log.push(func() {
			delete(r.store.servers, server.ID)
			delete(r.store.codes, key)
			r.store.catalogWrites--
		})
		return nil
	})
	if err != nil {
		return server, fmt.Errorf("ServerRepository.CreateServer: %w", err)
	}
	return server, nil
}

func (r serverRepository) UpdateServer(_ context.Context, serverID string, changes map[string]interface{}) (model.Server, error) {
	var updated model.Server
	err := r.run(func(log *txLog) error {
		prev, ok := r.store.servers[serverID]
		if !ok {
			return apperrors.ErrServerNotFound
		}
		updated = prev
		for column, value := range changes {
			if err := applyServerChange(&updated, column, value); err != nil {
				return err
			}
		}
		updated.UpdatedAt = r.store.now()
		r.store.servers[serverID] = updated
		r.store.catalogWrites++
		log.push(func() {
			r.store.servers[serverID] = prev
			r.store.catalogWrites--
		})
		return nil
	})
	if err != nil {
		return updated, fmt.Errorf("ServerRepository.UpdateServer: %w", err)
	}
	return updated, nil
}

func applyServerChange(server *model.Server, column string, value interface{}) error {
	var ok bool
	switch column {
	case "name":
		server.Name, ok = value.(string)
	case "host":
		server.Host, ok = value.(string)
	case "port":
		server.Port, ok = value.(int)
	case "is_active":
		server.IsActive, ok = value.(bool)
	case "meta":
		server.Meta, ok = value.(datatypes.JSON)
	default:
		return fmt.Errorf("unknown server column %q", column)
	}
	if !ok {
		return fmt.Errorf("unexpected type %T for server column %q", value, column)
	}
	return nil
}
