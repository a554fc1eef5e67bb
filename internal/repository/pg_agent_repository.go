package repository

import (
	"context"

	"github.com/homestead/backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgAgentRepository は AgentRepository の PostgreSQL 実装
type PgAgentRepository struct {
	pool *pgxpool.Pool
}

// NewPgAgentRepository は PgAgentRepository を生成する
func NewPgAgentRepository(pool *pgxpool.Pool) *PgAgentRepository {
	return &PgAgentRepository{pool: pool}
}

var _ AgentRepository = (*PgAgentRepository)(nil)

const agentSelectCols = `id, user_id, name, email, phone, photo, bio, license_number, agency, onboarding_complete, created_at`

func scanAgent(scan func(...any) error) (*model.Agent, error) {
	var a model.Agent
	if err := scan(&a.ID, &a.UserID, &a.Name, &a.Email, &a.Phone, &a.Photo, &a.Bio,
		&a.LicenseNumber, &a.Agency, &a.OnboardingComplete, &a.CreatedAt); err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

// GetByID は ID でエージェントを取得する
func (r *PgAgentRepository) GetByID(ctx context.Context, id string) (*model.Agent, error) {
	return scanAgent(r.pool.QueryRow(ctx, `SELECT `+agentSelectCols+` FROM agents WHERE id = $1`, id).Scan)
}

// FindByUserID は認証 ID でエージェントを取得する
func (r *PgAgentRepository) FindByUserID(ctx context.Context, userID string) (*model.Agent, error) {
	return scanAgent(r.pool.QueryRow(ctx, `SELECT `+agentSelectCols+` FROM agents WHERE user_id = $1`, userID).Scan)
}

// Create はエージェントを作成する
func (r *PgAgentRepository) Create(ctx context.Context, a *model.Agent) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO agents (user_id, name, email, phone, photo, bio, license_number, agency, onboarding_complete)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at`,
		a.UserID, a.Name, a.Email, a.Phone, a.Photo, a.Bio, a.LicenseNumber, a.Agency, a.OnboardingComplete,
	).Scan(&a.ID, &a.CreatedAt)
}

// Update はエージェントのプロフィールを更新する
func (r *PgAgentRepository) Update(ctx context.Context, a *model.Agent) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE agents SET name = $2, email = $3, phone = $4, photo = $5, bio = $6, license_number = $7,
			agency = $8, onboarding_complete = $9
		 WHERE id = $1`,
		a.ID, a.Name, a.Email, a.Phone, a.Photo, a.Bio, a.LicenseNumber, a.Agency, a.OnboardingComplete,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
