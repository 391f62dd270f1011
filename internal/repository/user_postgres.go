package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"nexuslink/internal/models"

	"github.com/google/uuid"
)

type UserPostgres struct {
	db *sql.DB
}

func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

const userColumns = `id, links, created_at, updated_at`

func (r *UserPostgres) FindByID(id string) (*models.UserRecord, error) {
	row := r.db.QueryRow(`
		SELECT `+userColumns+` FROM users WHERE id = $1
	`, id)
	return scanUser(row)
}

func (r *UserPostgres) FindByPlatformID(platform, platformID string) (*models.UserRecord, error) {
	// Pending entries carry no platform_id, so containment on a concrete
	// id can only match a confirmed link.
	row := r.db.QueryRow(`
		SELECT `+userColumns+` FROM users
		WHERE links @> jsonb_build_object($1::text, jsonb_build_object('platform_id', $2::text))
	`, platform, platformID)
	return scanUser(row)
}

func (r *UserPostgres) Create(links map[string]models.PlatformLink) (*models.UserRecord, error) {
	data, err := json.Marshal(links)
	if err != nil {
		return nil, fmt.Errorf("failed to encode links: %w", err)
	}

	row := r.db.QueryRow(`
		INSERT INTO users (id, links) VALUES ($1, $2)
		RETURNING `+userColumns+`
	`, uuid.NewString(), data)

	user, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create user record: %w", err)
	}
	return user, nil
}

func (r *UserPostgres) Update(id string, links map[string]models.PlatformLink) (*models.UserRecord, error) {
	data, err := json.Marshal(links)
	if err != nil {
		return nil, fmt.Errorf("failed to encode links: %w", err)
	}

	// jsonb || replaces top-level platform keys in one row update, which
	// gives the per-record atomic, last-writer-wins merge.
	row := r.db.QueryRow(`
		UPDATE users SET links = links || $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+userColumns+`
	`, id, data)
	return scanUser(row)
}

func (r *UserPostgres) Delete(id string) (*models.UserRecord, error) {
	row := r.db.QueryRow(`
		DELETE FROM users WHERE id = $1
		RETURNING `+userColumns+`
	`, id)
	return scanUser(row)
}

func (r *UserPostgres) List() ([]*models.UserRecord, error) {
	rows, err := r.db.Query(`SELECT ` + userColumns + ` FROM users ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list user records: %w", err)
	}
	defer rows.Close()

	var users []*models.UserRecord
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*models.UserRecord, error) {
	var (
		user models.UserRecord
		data []byte
	)
	err := row.Scan(&user.ID, &data, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user record: %w", err)
	}

	if err := json.Unmarshal(data, &user.Links); err != nil {
		return nil, fmt.Errorf("failed to decode links: %w", err)
	}
	if user.Links == nil {
		user.Links = make(map[string]models.PlatformLink)
	}
	return &user, nil
}
