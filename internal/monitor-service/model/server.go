package model

import (
	"time"

	"gorm.io/datatypes"
)

type Server struct {
	ID        string `gorm:"primaryKey"`
	GameID    string
	Code      string
	Name      string
	Host      string
	Port      int
	IsActive  bool
	Meta      datatypes.JSON
	CreatedAt time.Time
	UpdatedAt time.Time
}
