package memstore

import (
	"context"
	"fmt"
	"time"

	"handyhelp/database"
	"handyhelp/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepo implements userRepo.UserRepository.
type UserRepo struct{ s *Store }

func (r *UserRepo) Create(_ context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("users.Create"); err != nil {
		return err
	}
	for _, existing := range r.s.users {
		if existing.Username == u.Username {
			return fmt.Errorf("username %s: %w", u.Username, database.ErrDuplicate)
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	stamp(&u.CreatedAt, &u.UpdatedAt)
	c := *u
	r.s.users = append(r.s.users, &c)
	return nil
}

func (r *UserRepo) find(id string) (*models.User, error) {
	oid, err := database.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	for _, u := range r.s.users {
		if u.ID == oid {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", id, database.ErrNotFound)
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("users.GetByID"); err != nil {
		return nil, err
	}
	u, err := r.find(id)
	if err != nil {
		return nil, err
	}
	c := *u
	c.PasswordHash = ""
	return &c, nil
}

func (r *UserRepo) GetByIDWithProjection(ctx context.Context, id string, _ bson.M) (*models.User, error) {
	return r.GetByID(ctx, id)
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("users.GetByUsername"); err != nil {
		return nil, err
	}
	for _, u := range r.s.users {
		if u.Username == username {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	u, err := r.GetByUsername(ctx, username)
	return u == nil, err
}

func (r *UserRepo) GetByIDs(_ context.Context, ids []string) (map[string]*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("users.GetByIDs"); err != nil {
		return nil, err
	}
	out := make(map[string]*models.User)
	for _, id := range ids {
		if u, err := r.find(id); err == nil {
			c := *u
			c.PasswordHash = ""
			out[id] = &c
		}
	}
	return out, nil
}

func (r *UserRepo) UpdateStatus(_ context.Context, id string, status models.AccountStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("users.UpdateStatus"); err != nil {
		return err
	}
	u, err := r.find(id)
	if err != nil {
		return err
	}
	u.Status = status
	u.UpdatedAt = time.Now()
	return nil
}

// HandymanRepo implements handymanRepo.HandymanRepository.
type HandymanRepo struct{ s *Store }

func (r *HandymanRepo) Create(_ context.Context, h *models.Handyman) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("handymen.Create"); err != nil {
		return err
	}
	for _, existing := range r.s.handymen {
		if existing.Username == h.Username {
			return fmt.Errorf("username %s: %w", h.Username, database.ErrDuplicate)
		}
	}
	if h.ID.IsZero() {
		h.ID = primitive.NewObjectID()
	}
	stamp(&h.CreatedAt, &h.UpdatedAt)
	c := *h
	r.s.handymen = append(r.s.handymen, &c)
	return nil
}

func (r *HandymanRepo) find(id string) (*models.Handyman, error) {
	oid, err := database.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	for _, h := range r.s.handymen {
		if h.ID == oid {
			return h, nil
		}
	}
	return nil, fmt.Errorf("handyman %s: %w", id, database.ErrNotFound)
}

func (r *HandymanRepo) GetByID(_ context.Context, id string) (*models.Handyman, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("handymen.GetByID"); err != nil {
		return nil, err
	}
	h, err := r.find(id)
	if err != nil {
		return nil, err
	}
	c := *h
	c.PasswordHash = ""
	return &c, nil
}

func (r *HandymanRepo) GetByUsername(_ context.Context, username string) (*models.Handyman, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("handymen.GetByUsername"); err != nil {
		return nil, err
	}
	for _, h := range r.s.handymen {
		if h.Username == username {
			c := *h
			return &c, nil
		}
	}
	return nil, nil
}

func (r *HandymanRepo) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	h, err := r.GetByUsername(ctx, username)
	return h == nil, err
}

func (r *HandymanRepo) GetByIDs(_ context.Context, ids []string) (map[string]*models.Handyman, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("handymen.GetByIDs"); err != nil {
		return nil, err
	}
	out := make(map[string]*models.Handyman)
	for _, id := range ids {
		if h, err := r.find(id); err == nil {
			c := *h
			c.PasswordHash = ""
			out[id] = &c
		}
	}
	return out, nil
}

func (r *HandymanRepo) ListByStatus(_ context.Context, status models.AccountStatus) ([]models.Handyman, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("handymen.ListByStatus"); err != nil {
		return nil, err
	}
	out := []models.Handyman{}
	for _, h := range r.s.handymen {
		if h.Status == status {
			c := *h
			c.PasswordHash = ""
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *HandymanRepo) UpdateStatus(_ context.Context, id string, status models.AccountStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("handymen.UpdateStatus"); err != nil {
		return err
	}
	h, err := r.find(id)
	if err != nil {
		return err
	}
	h.Status = status
	h.UpdatedAt = time.Now()
	return nil
}
