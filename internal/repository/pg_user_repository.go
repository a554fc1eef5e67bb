package repository

import (
	"context"

	"github.com/homestead/backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgUserRepository は UserRepository の PostgreSQL 実装
type PgUserRepository struct {
	pool *pgxpool.Pool
}

// NewPgUserRepository は PgUserRepository を生成する
func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

var _ UserRepository = (*PgUserRepository)(nil)

// FindByAuthID は認証プロバイダーの subject でユーザーを取得する
func (r *PgUserRepository) FindByAuthID(ctx context.Context, authID string) (*model.User, error) {
	var u model.User
	err := r.pool.QueryRow(ctx,
		`SELECT id, auth_id, name, email, phone, photo, created_at, updated_at FROM users WHERE auth_id = $1`,
		authID,
	).Scan(&u.ID, &u.AuthID, &u.Name, &u.Email, &u.Phone, &u.Photo, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

// Create はユーザーを作成する
func (r *PgUserRepository) Create(ctx context.Context, u *model.User) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO users (auth_id, name, email, phone, photo) VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		u.AuthID, u.Name, u.Email, u.Phone, u.Photo,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

// Update はユーザーのプロフィールを更新する
func (r *PgUserRepository) Update(ctx context.Context, u *model.User) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE users SET name = $2, email = $3, phone = $4, photo = $5, updated_at = NOW()
		 WHERE id = $1
		 RETURNING updated_at`,
		u.ID, u.Name, u.Email, u.Phone, u.Photo,
	).Scan(&u.UpdatedAt)
	return notFound(err)
}
