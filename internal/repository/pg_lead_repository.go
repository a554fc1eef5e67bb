package repository

import (
	"context"

	"github.com/homestead/backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgLeadRepository is the PostgreSQL implementation of LeadRepository.
type PgLeadRepository struct {
	pool *pgxpool.Pool
}

// NewPgLeadRepository creates a PgLeadRepository backed by the given pool.
func NewPgLeadRepository(pool *pgxpool.Pool) *PgLeadRepository {
	return &PgLeadRepository{pool: pool}
}

// Ensure PgLeadRepository implements LeadRepository at compile time.
var _ LeadRepository = (*PgLeadRepository)(nil)

const leadSelectCols = `l.id, l.listing_id, l.agent_id, l.buyer_name, l.buyer_email, l.buyer_phone, l.message, l.status, l.created_at`

func scanLead(scan func(...any) error, extra ...any) (*model.Lead, error) {
	var l model.Lead
	dest := append([]any{&l.ID, &l.ListingID, &l.AgentID, &l.BuyerName, &l.BuyerEmail, &l.BuyerPhone,
		&l.Message, &l.Status, &l.CreatedAt}, extra...)
	if err := scan(dest...); err != nil {
		return nil, notFound(err)
	}
	return &l, nil
}

// FindByListingAndEmail returns the lead a buyer already submitted for a listing.
func (r *PgLeadRepository) FindByListingAndEmail(ctx context.Context, listingID, email string) (*model.Lead, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+leadSelectCols+` FROM leads l
		 WHERE l.listing_id = $1 AND lower(l.buyer_email) = lower($2)
		 ORDER BY l.created_at
		 LIMIT 1`,
		listingID, email)
	return scanLead(row.Scan)
}

// Create inserts a lead and populates lead.ID and lead.CreatedAt from the
// RETURNING clause.
func (r *PgLeadRepository) Create(ctx context.Context, lead *model.Lead) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO leads (listing_id, agent_id, buyer_name, buyer_email, buyer_phone, message, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		lead.ListingID, lead.AgentID, lead.BuyerName, lead.BuyerEmail, lead.BuyerPhone, lead.Message, lead.Status,
	).Scan(&lead.ID, &lead.CreatedAt)
}

// GetByID returns a single lead.
func (r *PgLeadRepository) GetByID(ctx context.Context, id string) (*model.Lead, error) {
	return scanLead(r.pool.QueryRow(ctx, `SELECT `+leadSelectCols+` FROM leads l WHERE l.id = $1`, id).Scan)
}

// ListByAgent returns the agent's leads with their listing titles, newest first.
func (r *PgLeadRepository) ListByAgent(ctx context.Context, agentID string) ([]*model.Lead, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+leadSelectCols+`, COALESCE(p.title, '')
		 FROM leads l
		 LEFT JOIN listings p ON p.id = l.listing_id
		 WHERE l.agent_id = $1
		 ORDER BY l.created_at DESC, l.id`,
		agentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := []*model.Lead{}
	for rows.Next() {
		var title string
		l, err := scanLead(rows.Scan, &title)
		if err != nil {
			return nil, err
		}
		l.ListingTitle = title
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

// UpdateStatus changes the status of a lead.
func (r *PgLeadRepository) UpdateStatus(ctx context.Context, id string, status model.LeadStatus) error {
	tag, err := r.pool.Exec(ctx, `UPDATE leads SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByAgent counts the agent's leads, optionally restricted to one status.
func (r *PgLeadRepository) CountByAgent(ctx context.Context, agentID string, status model.LeadStatus) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM leads WHERE agent_id = $1 AND ($2::text = '' OR status = $2)`,
		agentID, string(status),
	).Scan(&n)
	return n, err
}
