package service

import (
	"cmp"
	"context"
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/homestead/backend/internal/model"
	"github.com/homestead/backend/internal/repository"
	"github.com/homestead/backend/internal/search"
	"github.com/homestead/backend/internal/storage"
	"github.com/homestead/backend/pkg/auth"
	"golang.org/x/sync/errgroup"
)

// DashboardServiceImpl は DashboardService の実装
type DashboardServiceImpl struct {
	identity auth.IdentityProvider
	agents   repository.AgentRepository
	listings repository.ListingRepository
	leads    repository.LeadRepository
	storage  storage.Storage
	newKey   func() string
}

// NewDashboardService は DashboardServiceImpl を生成する
func NewDashboardService(
	identity auth.IdentityProvider,
	agents repository.AgentRepository,
	listings repository.ListingRepository,
	leads repository.LeadRepository,
	store storage.Storage,
) DashboardService {
	return &DashboardServiceImpl{
		identity: identity,
		agents:   agents,
		listings: listings,
		leads:    leads,
		storage:  store,
		newKey:   uuid.NewString,
	}
}

func ownedBy(agentID string) search.Clause {
	return search.Compare{Field: search.FieldAgentID, Op: search.OpEq, Value: agentID}
}

// Stats はダッシュボードのカウンターを並列に集計する
func (s *DashboardServiceImpl) Stats(ctx context.Context) (*model.DashboardStats, error) {
	agent, err := currentAgent(ctx, s.identity, s.agents)
	if err != nil {
		return nil, err
	}
	var stats model.DashboardStats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.listings.Count(gctx, search.Query{Where: ownedBy(agent.ID)})
		stats.Listings = n
		return err
	})
	g.Go(func() error {
		n, err := s.leads.CountByAgent(gctx, agent.ID, "")
		stats.Leads = n
		return err
	})
	g.Go(func() error {
		n, err := s.leads.CountByAgent(gctx, agent.ID, model.LeadNew)
		stats.NewLeads = n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Analytics はステータス別件数と、リード数の多い物件上位を返す。
// リードのない物件も 0 件としてランキングに含める。
func (s *DashboardServiceImpl) Analytics(ctx context.Context) (*model.Analytics, error) {
	agent, err := currentAgent(ctx, s.identity, s.agents)
	if err != nil {
		return nil, err
	}

	a := &model.Analytics{
		ListingsByStatus: make([]model.StatusCount, 0, len(model.ListingStatuses)),
		LeadsByStatus:    make([]model.StatusCount, 0, len(model.LeadStatuses)),
	}
	for _, st := range model.ListingStatuses {
		n, err := s.listings.Count(ctx, search.Query{Where: search.Conjoin(
			ownedBy(agent.ID),
			search.Compare{Field: search.FieldStatus, Op: search.OpEq, Value: string(st)},
		)})
		if err != nil {
			return nil, err
		}
		a.ListingsByStatus = append(a.ListingsByStatus, model.StatusCount{Status: string(st), Count: n})
		a.ListingsTotal += n
	}
	for _, st := range model.LeadStatuses {
		n, err := s.leads.CountByAgent(ctx, agent.ID, st)
		if err != nil {
			return nil, err
		}
		a.LeadsByStatus = append(a.LeadsByStatus, model.StatusCount{Status: string(st), Count: n})
		a.LeadsTotal += n
	}

	listings, err := s.listings.Search(ctx, search.Query{Where: ownedBy(agent.ID), OrderBy: search.DefaultOrder})
	if err != nil {
		return nil, err
	}
	leads, err := s.leads.ListByAgent(ctx, agent.ID)
	if err != nil {
		return nil, err
	}
	a.TopListings = topListings(listings, leads, TopListingsLimit)
	return a, nil
}

// topListings ranks listings by lead count. Ties keep the listing order.
func topListings(listings []*model.Listing, leads []*model.Lead, limit int) []model.ListingLeadCount {
	counts := make(map[string]int, len(listings))
	for _, l := range leads {
		counts[l.ListingID]++
	}
	ranked := make([]model.ListingLeadCount, 0, len(listings))
	for _, l := range listings {
		ranked = append(ranked, model.ListingLeadCount{ListingID: l.ID, Title: l.Title, LeadCount: counts[l.ID]})
	}
	slices.SortStableFunc(ranked, func(a, b model.ListingLeadCount) int {
		return cmp.Compare(b.LeadCount, a.LeadCount)
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func (s *DashboardServiceImpl) Listings(ctx context.Context) ([]*model.Listing, error) {
	agent, err := currentAgent(ctx, s.identity, s.agents)
	if err != nil {
		return nil, err
	}
	return s.listings.Search(ctx, search.Query{Where: ownedBy(agent.ID), OrderBy: search.DefaultOrder})
}

func (s *DashboardServiceImpl) CreateListing(ctx context.Context, in ListingInput) (*model.Listing, error) {
	agent, err := currentAgent(ctx, s.identity, s.agents)
	if err != nil {
		return nil, err
	}
	l, err := listingFromInput(in)
	if err != nil {
		return nil, err
	}
	l.AgentID = agent.ID
	// 新規物件にはまだアップロード済み画像がない
	l.Images = ownImages(l.Images, "", nil)
	if err := s.listings.Create(ctx, l); err != nil {
		return nil, err
	}
	slog.Info("listing created", "listing_id", l.ID, "agent_id", agent.ID)
	return l, nil
}

// ReplaceListing は物件ドキュメント全体を置き換える。所有者と作成日時は引き継ぐ。
func (s *DashboardServiceImpl) ReplaceListing(ctx context.Context, id string, in ListingInput) (*model.Listing, error) {
	old, err := s.ownedListing(ctx, id)
	if err != nil {
		return nil, err
	}
	l, err := listingFromInput(in)
	if err != nil {
		return nil, err
	}
	l.ID = old.ID
	l.AgentID = old.AgentID
	l.CreatedAt = old.CreatedAt
	l.Images = ownImages(l.Images, old.ID, old.Images)
	if err := s.listings.Replace(ctx, l); err != nil {
		return nil, err
	}
	s.deleteAssets(ctx, old.ID, droppedImages(old.Images, l.Images))
	return l, nil
}

// DeleteListing は物件を削除し、アップロード済み画像も削除する
func (s *DashboardServiceImpl) DeleteListing(ctx context.Context, id string) error {
	l, err := s.ownedListing(ctx, id)
	if err != nil {
		return err
	}
	if err := s.listings.Delete(ctx, id); err != nil {
		return err
	}
	s.deleteAssets(ctx, id, l.Images)
	slog.Info("listing deleted", "listing_id", id)
	return nil
}

func (s *DashboardServiceImpl) AttachImage(ctx context.Context, id string, upload ImageUpload) (*model.Image, error) {
	l, err := s.ownedListing(ctx, id)
	if err != nil {
		return nil, err
	}
	key := assetPrefix(l.ID) + s.newKey() + upload.Ext
	url, err := s.storage.Save(ctx, key, upload.Data, upload.ContentType)
	if err != nil {
		return nil, err
	}
	img := model.Image{AssetRef: key, URL: url, Alt: strings.TrimSpace(upload.Alt)}
	l.Images = append(l.Images, img)
	if err := s.listings.Replace(ctx, l); err != nil {
		// 保存済みファイルは参照されないので消しておく
		_ = s.storage.Delete(ctx, key)
		return nil, err
	}
	return &img, nil
}

// deleteAssets removes the uploaded files of images. Only keys under the
// listing's own asset prefix are touched.
func (s *DashboardServiceImpl) deleteAssets(ctx context.Context, listingID string, images []model.Image) {
	prefix := assetPrefix(listingID)
	for _, img := range images {
		if !strings.HasPrefix(img.AssetRef, prefix) {
			continue
		}
		if err := s.storage.Delete(ctx, img.AssetRef); err != nil {
			slog.Warn("listing image delete failed", "error", err, "listing_id", listingID, "asset_ref", img.AssetRef)
		}
	}
}

func assetPrefix(listingID string) string {
	return "listings/" + listingID + "/"
}

// ownImages keeps the submitted images an editor may reference: external
// images without an asset and assets already attached to the listing.
// Asset metadata is taken from the stored copy.
func ownImages(submitted []model.Image, listingID string, stored []model.Image) []model.Image {
	byRef := make(map[string]model.Image, len(stored))
	for _, img := range stored {
		if img.AssetRef != "" && listingID != "" && strings.HasPrefix(img.AssetRef, assetPrefix(listingID)) {
			byRef[img.AssetRef] = img
		}
	}
	var out []model.Image
	for _, img := range submitted {
		if img.AssetRef == "" {
			if img.URL != "" {
				out = append(out, img)
			}
			continue
		}
		own, ok := byRef[img.AssetRef]
		if !ok {
			continue
		}
		own.Alt = strings.TrimSpace(img.Alt)
		out = append(out, own)
	}
	return out
}

// droppedImages returns the images of before whose asset is no longer referenced by after.
func droppedImages(before, after []model.Image) []model.Image {
	kept := make(map[string]bool, len(after))
	for _, img := range after {
		kept[img.AssetRef] = true
	}
	var out []model.Image
	for _, img := range before {
		if img.AssetRef != "" && !kept[img.AssetRef] {
			out = append(out, img)
		}
	}
	return out
}

// ownedListing returns the listing if it belongs to the calling agent.
func (s *DashboardServiceImpl) ownedListing(ctx context.Context, id string) (*model.Listing, error) {
	agent, err := currentAgent(ctx, s.identity, s.agents)
	if err != nil {
		return nil, err
	}
	l, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.AgentID != agent.ID {
		return nil, ErrForbidden
	}
	return l, nil
}

func listingFromInput(in ListingInput) (*model.Listing, error) {
	title := strings.TrimSpace(in.Title)
	switch {
	case title == "":
		return nil, invalid("title")
	case in.Price < 0:
		return nil, invalid("price")
	case in.OriginalPrice != nil && *in.OriginalPrice < 0:
		return nil, invalid("original_price")
	case !in.PropertyType.Valid():
		return nil, invalid("property_type")
	case in.Bedrooms < 0:
		return nil, invalid("bedrooms")
	case in.Bathrooms < 0:
		return nil, invalid("bathrooms")
	case in.SquareFeet < 0:
		return nil, invalid("square_feet")
	case in.YearBuilt < 0:
		return nil, invalid("year_built")
	case in.LotSize < 0:
		return nil, invalid("lot_size")
	}
	status := in.Status
	if status == "" {
		status = model.StatusActive
	}
	if !status.Valid() {
		return nil, invalid("status")
	}

	var amenities []string
	for _, a := range in.Amenities {
		if a = strings.TrimSpace(a); a != "" && !slices.Contains(amenities, a) {
			amenities = append(amenities, a)
		}
	}
	return &model.Listing{
		Title:         title,
		Slug:          slugify(title),
		Description:   strings.TrimSpace(in.Description),
		Price:         in.Price,
		OriginalPrice: in.OriginalPrice,
		PropertyType:  in.PropertyType,
		Status:        status,
		Bedrooms:      in.Bedrooms,
		Bathrooms:     in.Bathrooms,
		SquareFeet:    in.SquareFeet,
		YearBuilt:     in.YearBuilt,
		LotSize:       in.LotSize,
		Address:       in.Address,
		Location:      in.Location,
		Images:        in.Images,
		Amenities:     amenities,
		Featured:      in.Featured,
		OpenHouseAt:   in.OpenHouseAt,
	}, nil
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// slugify lowercases s and joins its alphanumeric runs with hyphens.
func slugify(s string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
}
