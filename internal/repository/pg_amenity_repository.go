package repository

import (
	"context"

	"github.com/homestead/backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgAmenityRepository は AmenityRepository の PostgreSQL 実装
type PgAmenityRepository struct {
	pool *pgxpool.Pool
}

// NewPgAmenityRepository は PgAmenityRepository を生成する
func NewPgAmenityRepository(pool *pgxpool.Pool) *PgAmenityRepository {
	return &PgAmenityRepository{pool: pool}
}

var _ AmenityRepository = (*PgAmenityRepository)(nil)

// List はカタログを表示順で返す
func (r *PgAmenityRepository) List(ctx context.Context) ([]*model.Amenity, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, value, label, icon, sort_order FROM amenities ORDER BY sort_order, label`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	amenities := []*model.Amenity{}
	for rows.Next() {
		var a model.Amenity
		if err := rows.Scan(&a.ID, &a.Value, &a.Label, &a.Icon, &a.Order); err != nil {
			return nil, err
		}
		amenities = append(amenities, &a)
	}
	return amenities, rows.Err()
}

// Upsert は value をキーにアメニティを作成または更新する
func (r *PgAmenityRepository) Upsert(ctx context.Context, a *model.Amenity) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO amenities (value, label, icon, sort_order)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (value) DO UPDATE SET label = EXCLUDED.label, icon = EXCLUDED.icon, sort_order = EXCLUDED.sort_order
		 RETURNING id`,
		a.Value, a.Label, a.Icon, a.Order,
	).Scan(&a.ID)
}
