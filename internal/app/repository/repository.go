package repository

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func New(dsn string) (*Repository, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

// NewWithDB wraps an already-open connection (tests use an in-memory sqlite).
func NewWithDB(db *gorm.DB) *Repository {
	return &Repository{db: db}
}
