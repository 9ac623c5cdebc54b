package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

type Repositories struct {
	Servers   ServerRepository
	Events    EventRepository
	Snapshots SnapshotRepository
	Outages   OutageRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Servers:   NewServerRepository(db),
		Events:    NewEventRepository(db),
		Snapshots: NewSnapshotRepository(db),
		Outages:   NewOutageRepository(db),
	}
}

// UnitOfWork runs fn against repositories bound to a single transaction.
// Any error returned by fn rolls back every write made through them.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(repos Repositories) error) error
}

type unitOfWork struct {
	db *gorm.DB
}

func (u *unitOfWork) Do(ctx context.Context, fn func(repos Repositories) error) error {
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
	if err != nil {
		return fmt.Errorf("UnitOfWork.Do: %w", err)
	}
	return nil
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &unitOfWork{
		db: db,
	}
}
