package memstore

import (
	"context"

	"github.com/homestead/backend/internal/model"
	"github.com/homestead/backend/internal/repository"
)

type AgentRepository struct {
	s *Store
}

var _ repository.AgentRepository = (*AgentRepository)(nil)

func (r *AgentRepository) GetByID(ctx context.Context, id string) (*model.Agent, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.agents[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *a
	return &c, nil
}

func (r *AgentRepository) FindByUserID(ctx context.Context, userID string) (*model.Agent, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, a := range r.s.agents {
		if a.UserID == userID {
			c := *a
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *AgentRepository) Create(ctx context.Context, a *model.Agent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a.ID == "" {
		a.ID = r.s.newID()
	}
	a.CreatedAt = r.s.now()
	c := *a
	r.s.agents[a.ID] = &c
	return nil
}

func (r *AgentRepository) Update(ctx context.Context, a *model.Agent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.agents[a.ID]
	if !ok {
		return repository.ErrNotFound
	}
	a.UserID = old.UserID
	a.CreatedAt = old.CreatedAt
	c := *a
	r.s.agents[a.ID] = &c
	return nil
}

type UserRepository struct {
	s *Store
}

var _ repository.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) FindByAuthID(ctx context.Context, authID string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.AuthID == authID {
			c := *u
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u.ID == "" {
		u.ID = r.s.newID()
	}
	u.CreatedAt = r.s.now()
	u.UpdatedAt = u.CreatedAt
	c := *u
	r.s.users[u.ID] = &c
	return nil
}

func (r *UserRepository) Update(ctx context.Context, u *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.users[u.ID]
	if !ok {
		return repository.ErrNotFound
	}
	u.AuthID = old.AuthID
	u.CreatedAt = old.CreatedAt
	u.UpdatedAt = r.s.now()
	c := *u
	r.s.users[u.ID] = &c
	return nil
}
