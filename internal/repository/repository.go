package repository

import (
	"database/sql"
	"errors"

	"nexuslink/internal/models"
)

// ErrNotFound reports an absent record. Every other error returned by a
// store is a transport or storage failure; callers distinguish the two with
// errors.Is.
var ErrNotFound = errors.New("user record not found")

type User interface {
	FindByID(id string) (*models.UserRecord, error)
	// FindByPlatformID locates the record owning a confirmed identity on
	// the given platform. Pending entries never match.
	FindByPlatformID(platform, platformID string) (*models.UserRecord, error)
	Create(links map[string]models.PlatformLink) (*models.UserRecord, error)
	// Update merges the given platform entries into the record. The merge
	// is atomic per record; the last writer wins per platform key.
	Update(id string, links map[string]models.PlatformLink) (*models.UserRecord, error)
	// Delete returns the deleted record's last state for use in a merge.
	Delete(id string) (*models.UserRecord, error)
	List() ([]*models.UserRecord, error)
}

type Repository struct {
	User
	db *sql.DB
}

func NewRepository(cfg *Config, db *sql.DB) *Repository {
	return &Repository{
		User: NewUserPostgres(db),
		db:   db,
	}
}
