package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/homestead/backend/internal/model"
	"github.com/homestead/backend/internal/repository"
	"github.com/homestead/backend/pkg/auth"
)

// OnboardingServiceImpl は OnboardingService の実装
type OnboardingServiceImpl struct {
	identity auth.IdentityProvider
	users    repository.UserRepository
	agents   repository.AgentRepository
}

// NewOnboardingService は OnboardingServiceImpl を生成する
func NewOnboardingService(identity auth.IdentityProvider, users repository.UserRepository, agents repository.AgentRepository) OnboardingService {
	return &OnboardingServiceImpl{identity: identity, users: users, agents: agents}
}

// CompleteUser はユーザープロフィールを作成し、オンボーディング完了フラグを立てる
func (s *OnboardingServiceImpl) CompleteUser(ctx context.Context, in ProfileInput) (*model.User, error) {
	id, ok := s.identity.CurrentIdentity(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	u, err := s.users.FindByAuthID(ctx, id.ID)
	switch {
	case err == nil:
		// 既存プロフィールはそのまま返す。フラグだけ補修する。
	case errors.Is(err, repository.ErrNotFound):
		name := strings.TrimSpace(in.Name)
		if name == "" {
			name = id.Name
		}
		if name == "" {
			return nil, invalid("name")
		}
		u = &model.User{
			AuthID: id.ID,
			Name:   name,
			Email:  normalizeEmail(id.Email),
			Phone:  strings.TrimSpace(in.Phone),
		}
		if err := s.users.Create(ctx, u); err != nil {
			return nil, err
		}
		slog.Info("user onboarded", "user_id", u.ID)
	default:
		return nil, err
	}

	if err := s.identity.SetMetadata(ctx, auth.MetaOnboardingComplete, "true"); err != nil {
		return nil, err
	}
	return u, nil
}

// CompleteAgent はエージェントプロフィールを作成または更新する
func (s *OnboardingServiceImpl) CompleteAgent(ctx context.Context, in AgentProfileInput) (*model.Agent, error) {
	id, ok := s.identity.CurrentIdentity(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	if !s.identity.HasPlan(ctx, auth.PlanAgent) {
		return nil, ErrPlanRequired
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = id.Name
	}
	if name == "" {
		return nil, invalid("name")
	}

	agent, err := s.agents.FindByUserID(ctx, id.ID)
	isNew := errors.Is(err, repository.ErrNotFound)
	if err != nil && !isNew {
		return nil, err
	}
	if isNew {
		agent = &model.Agent{UserID: id.ID, Email: normalizeEmail(id.Email)}
	}
	agent.Name = name
	agent.Phone = strings.TrimSpace(in.Phone)
	agent.Bio = strings.TrimSpace(in.Bio)
	agent.LicenseNumber = strings.TrimSpace(in.LicenseNumber)
	agent.Agency = strings.TrimSpace(in.Agency)
	agent.OnboardingComplete = true

	if isNew {
		err = s.agents.Create(ctx, agent)
	} else {
		err = s.agents.Update(ctx, agent)
	}
	if err != nil {
		return nil, err
	}
	if err := s.identity.SetMetadata(ctx, auth.MetaAgentOnboardingComplete, "true"); err != nil {
		return nil, err
	}
	slog.Info("agent onboarded", "agent_id", agent.ID, "created", isNew)
	return agent, nil
}

func (s *OnboardingServiceImpl) Profile(ctx context.Context) (*model.User, error) {
	id, ok := s.identity.CurrentIdentity(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	return s.users.FindByAuthID(ctx, id.ID)
}

// UpdateProfile は名前と電話番号を更新する。メールアドレスは ID プロバイダ側の値を維持する。
func (s *OnboardingServiceImpl) UpdateProfile(ctx context.Context, in ProfileInput) (*model.User, error) {
	u, err := s.Profile(ctx)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("name")
	}
	u.Name = name
	u.Phone = strings.TrimSpace(in.Phone)
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
