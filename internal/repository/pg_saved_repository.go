package repository

import (
	"context"

	"github.com/homestead/backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgSavedRepository は SavedRepository の PostgreSQL 実装
type PgSavedRepository struct {
	pool *pgxpool.Pool
}

// NewPgSavedRepository は PgSavedRepository を生成する
func NewPgSavedRepository(pool *pgxpool.Pool) *PgSavedRepository {
	return &PgSavedRepository{pool: pool}
}

var _ SavedRepository = (*PgSavedRepository)(nil)

// IsSaved はユーザーが物件を保存済みかを返す
func (r *PgSavedRepository) IsSaved(ctx context.Context, userID, listingID string) (bool, error) {
	var saved bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM saved_listings WHERE user_id = $1 AND listing_id = $2)`,
		userID, listingID,
	).Scan(&saved)
	return saved, err
}

// Add は物件を保存する（冪等: 既に存在する場合は無視）
func (r *PgSavedRepository) Add(ctx context.Context, userID, listingID string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO saved_listings (user_id, listing_id)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id, listing_id) DO NOTHING`,
		userID, listingID,
	)
	return err
}

// Remove は保存を解除する（冪等: 存在しない場合は無視）
func (r *PgSavedRepository) Remove(ctx context.Context, userID, listingID string) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM saved_listings WHERE user_id = $1 AND listing_id = $2`,
		userID, listingID,
	)
	return err
}

// ListListings はユーザーが保存した物件一覧を保存日時の新しい順に返す
func (r *PgSavedRepository) ListListings(ctx context.Context, userID string) ([]*model.Listing, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+prefixed("p.", listingColumns)+`
		 FROM listings p
		 INNER JOIN saved_listings s ON s.listing_id = p.id
		 WHERE s.user_id = $1
		 ORDER BY s.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	listings := []*model.Listing{}
	for rows.Next() {
		l, err := scanListing(rows.Scan)
		if err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}
