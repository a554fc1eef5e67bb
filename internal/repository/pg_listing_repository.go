package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/homestead/backend/internal/model"
	"github.com/homestead/backend/internal/search"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgListingRepository は ListingRepository の PostgreSQL 実装
type PgListingRepository struct {
	pool *pgxpool.Pool
}

// NewPgListingRepository は PgListingRepository を生成する
func NewPgListingRepository(pool *pgxpool.Pool) *PgListingRepository {
	return &PgListingRepository{pool: pool}
}

var _ ListingRepository = (*PgListingRepository)(nil)

// Ping は DB 接続を確認する（DB インターフェース実装）
func (r *PgListingRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

var listingColumns = []string{
	"id", "agent_id", "title", "slug", "description", "price", "original_price", "property_type", "status",
	"bedrooms", "bathrooms", "square_feet", "year_built", "lot_size", "street", "city", "state", "zip_code", "lat", "lng",
	"images", "amenities", "featured", "open_house_at", "created_at", "updated_at",
}

var listingSelectCols = strings.Join(listingColumns, ", ")

// prefixed qualifies each column with a table alias.
func prefixed(alias string, cols []string) string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = alias + c
	}
	return strings.Join(out, ", ")
}

func scanListing(scan func(...any) error) (*model.Listing, error) {
	var l model.Listing
	var lat, lng *float64
	if err := scan(
		&l.ID, &l.AgentID, &l.Title, &l.Slug, &l.Description, &l.Price, &l.OriginalPrice, &l.PropertyType, &l.Status,
		&l.Bedrooms, &l.Bathrooms, &l.SquareFeet, &l.YearBuilt, &l.LotSize,
		&l.Address.Street, &l.Address.City, &l.Address.State, &l.Address.ZipCode, &lat, &lng,
		&l.Images, &l.Amenities, &l.Featured, &l.OpenHouseAt, &l.CreatedAt, &l.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if lat != nil && lng != nil {
		l.Location = &model.GeoPoint{Lat: *lat, Lng: *lng}
	}
	return &l, nil
}

func geoArgs(l *model.Listing) (lat, lng *float64) {
	if l.Location == nil {
		return nil, nil
	}
	return &l.Location.Lat, &l.Location.Lng
}

// Search runs a compiled query against the listings table.
func (r *PgListingRepository) Search(ctx context.Context, q search.Query) ([]*model.Listing, error) {
	sql, args := search.RenderSQL(q, "listings", listingSelectCols)
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("search listings: %w", err)
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

// Count returns the number of rows matching the query predicate.
func (r *PgListingRepository) Count(ctx context.Context, q search.Query) (int, error) {
	sql, args := search.RenderSQLCount(q, "listings")
	var n int
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count listings: %w", err)
	}
	return n, nil
}

// GetByID は ID で物件を取得する
func (r *PgListingRepository) GetByID(ctx context.Context, id string) (*model.Listing, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+listingSelectCols+` FROM listings WHERE id = $1`, id)
	l, err := scanListing(row.Scan)
	if err != nil {
		return nil, notFound(err)
	}
	return l, nil
}

// Create は物件を作成し、ID とタイムスタンプを設定する
func (r *PgListingRepository) Create(ctx context.Context, l *model.Listing) error {
	lat, lng := geoArgs(l)
	return r.pool.QueryRow(ctx,
		`INSERT INTO listings (agent_id, title, slug, description, price, original_price, property_type, status,
			bedrooms, bathrooms, square_feet, year_built, lot_size, street, city, state, zip_code, lat, lng,
			images, amenities, featured, open_house_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
		 RETURNING id, created_at, updated_at`,
		l.AgentID, l.Title, l.Slug, l.Description, l.Price, l.OriginalPrice, l.PropertyType, l.Status,
		l.Bedrooms, l.Bathrooms, l.SquareFeet, l.YearBuilt, l.LotSize,
		l.Address.Street, l.Address.City, l.Address.State, l.Address.ZipCode, lat, lng,
		l.Images, l.Amenities, l.Featured, l.OpenHouseAt,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
}

// Replace overwrites every mutable column of the listing. The owner and
// creation time are kept.
func (r *PgListingRepository) Replace(ctx context.Context, l *model.Listing) error {
	lat, lng := geoArgs(l)
	err := r.pool.QueryRow(ctx,
		`UPDATE listings SET title = $2, slug = $3, description = $4, price = $5, original_price = $6,
			property_type = $7, status = $8, bedrooms = $9, bathrooms = $10, square_feet = $11, year_built = $12,
			lot_size = $13, street = $14, city = $15, state = $16, zip_code = $17, lat = $18, lng = $19,
			images = $20, amenities = $21, featured = $22, open_house_at = $23, updated_at = NOW()
		 WHERE id = $1
		 RETURNING updated_at`,
		l.ID, l.Title, l.Slug, l.Description, l.Price, l.OriginalPrice, l.PropertyType, l.Status,
		l.Bedrooms, l.Bathrooms, l.SquareFeet, l.YearBuilt, l.LotSize,
		l.Address.Street, l.Address.City, l.Address.State, l.Address.ZipCode, lat, lng,
		l.Images, l.Amenities, l.Featured, l.OpenHouseAt,
	).Scan(&l.UpdatedAt)
	return notFound(err)
}

// Delete は物件を削除する
func (r *PgListingRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
