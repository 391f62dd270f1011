package repository

import (
	"sync"
	"time"

	"nexuslink/internal/models"

	"github.com/google/uuid"
)

// UserMemory keeps records in a map guarded by a RWMutex. It backs the
// engine tests and mirrors the Postgres store's merge semantics.
type UserMemory struct {
	mu    sync.RWMutex
	users map[string]*models.UserRecord
}

func NewUserMemory() *UserMemory {
	return &UserMemory{users: make(map[string]*models.UserRecord)}
}

func (r *UserMemory) FindByID(id string) (*models.UserRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if user, ok := r.users[id]; ok {
		return user.Clone(), nil
	}
	return nil, ErrNotFound
}

func (r *UserMemory) FindByPlatformID(platform, platformID string) (*models.UserRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		link, ok := user.Links[platform]
		if ok && !link.IsPending() && link.PlatformID == platformID {
			return user.Clone(), nil
		}
	}
	return nil, ErrNotFound
}

func (r *UserMemory) Create(links map[string]models.PlatformLink) (*models.UserRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	user := &models.UserRecord{
		ID:        uuid.NewString(),
		Links:     make(map[string]models.PlatformLink, len(links)),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for platform, link := range links {
		user.Links[platform] = link
	}
	r.users[user.ID] = user
	return user.Clone(), nil
}

func (r *UserMemory) Update(id string, links map[string]models.PlatformLink) (*models.UserRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	for platform, link := range links {
		user.Links[platform] = link
	}
	user.UpdatedAt = time.Now()
	return user.Clone(), nil
}

func (r *UserMemory) Delete(id string) (*models.UserRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(r.users, id)
	return user, nil
}

func (r *UserMemory) List() ([]*models.UserRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*models.UserRecord, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, user.Clone())
	}
	return users, nil
}
