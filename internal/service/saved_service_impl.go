package service

import (
	"context"
	"errors"

	"github.com/homestead/backend/internal/model"
	"github.com/homestead/backend/internal/repository"
	"github.com/homestead/backend/pkg/auth"
)

// SavedServiceImpl は SavedService の実装
type SavedServiceImpl struct {
	identity auth.IdentityProvider
	users    repository.UserRepository
	listings repository.ListingRepository
	saved    repository.SavedRepository
}

// NewSavedService は SavedServiceImpl を生成する
func NewSavedService(
	identity auth.IdentityProvider,
	users repository.UserRepository,
	listings repository.ListingRepository,
	saved repository.SavedRepository,
) SavedService {
	return &SavedServiceImpl{identity: identity, users: users, listings: listings, saved: saved}
}

// profile resolves the onboarded user behind the request.
func (s *SavedServiceImpl) profile(ctx context.Context) (*model.User, Outcome, error) {
	id, ok := s.identity.CurrentIdentity(ctx)
	if !ok {
		return nil, OutcomeAuthRequired, nil
	}
	u, err := s.users.FindByAuthID(ctx, id.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, OutcomeOnboardingRequired, nil
	}
	if err != nil {
		return nil, "", err
	}
	return u, OutcomeOK, nil
}

// Toggle は保存状態を反転し、反転後の状態を返す
func (s *SavedServiceImpl) Toggle(ctx context.Context, listingID string) (*ToggleResult, error) {
	u, outcome, err := s.profile(ctx)
	if err != nil {
		return nil, err
	}
	if outcome != OutcomeOK {
		return &ToggleResult{Outcome: outcome}, nil
	}

	saved, err := s.saved.IsSaved(ctx, u.ID, listingID)
	if err != nil {
		return nil, err
	}
	if saved {
		if err := s.saved.Remove(ctx, u.ID, listingID); err != nil {
			return nil, err
		}
		return &ToggleResult{Outcome: OutcomeOK, Saved: false}, nil
	}

	if _, err := s.listings.GetByID(ctx, listingID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &ToggleResult{Outcome: OutcomeNotFound}, nil
		}
		return nil, err
	}
	if err := s.saved.Add(ctx, u.ID, listingID); err != nil {
		return nil, err
	}
	return &ToggleResult{Outcome: OutcomeOK, Saved: true}, nil
}

func (s *SavedServiceImpl) IsSaved(ctx context.Context, listingID string) (bool, error) {
	u, outcome, err := s.profile(ctx)
	if err != nil || outcome != OutcomeOK {
		return false, err
	}
	return s.saved.IsSaved(ctx, u.ID, listingID)
}

// List はユーザーが保存した物件一覧を返す
func (s *SavedServiceImpl) List(ctx context.Context) ([]*model.Listing, Outcome, error) {
	u, outcome, err := s.profile(ctx)
	if err != nil || outcome != OutcomeOK {
		return nil, outcome, err
	}
	listings, err := s.saved.ListListings(ctx, u.ID)
	if err != nil {
		return nil, "", err
	}
	return listings, OutcomeOK, nil
}
