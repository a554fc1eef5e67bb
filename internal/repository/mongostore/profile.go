package mongostore

import (
	"context"

	"github.com/homestead/backend/internal/model"
	"github.com/homestead/backend/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type AgentRepository struct {
	coll *mongo.Collection
}

var _ repository.AgentRepository = (*AgentRepository)(nil)

func (r *AgentRepository) GetByID(ctx context.Context, id string) (*model.Agent, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: id}})
}

func (r *AgentRepository) FindByUserID(ctx context.Context, userID string) (*model.Agent, error) {
	return r.findOne(ctx, bson.D{{Key: "userId", Value: userID}})
}

func (r *AgentRepository) findOne(ctx context.Context, filter bson.D) (*model.Agent, error) {
	var a model.Agent
	if err := r.coll.FindOne(ctx, filter).Decode(&a); err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

func (r *AgentRepository) Create(ctx context.Context, a *model.Agent) error {
	if a.ID == "" {
		a.ID = newID()
	}
	a.CreatedAt = now()
	_, err := r.coll.InsertOne(ctx, a)
	return err
}

func (r *AgentRepository) Update(ctx context.Context, a *model.Agent) error {
	res, err := r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: a.ID}}, bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: a.Name},
		{Key: "email", Value: a.Email},
		{Key: "phone", Value: a.Phone},
		{Key: "photo", Value: a.Photo},
		{Key: "bio", Value: a.Bio},
		{Key: "licenseNumber", Value: a.LicenseNumber},
		{Key: "agency", Value: a.Agency},
		{Key: "onboardingComplete", Value: a.OnboardingComplete},
	}}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

type UserRepository struct {
	coll *mongo.Collection
}

var _ repository.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) FindByAuthID(ctx context.Context, authID string) (*model.User, error) {
	var u model.User
	if err := r.coll.FindOne(ctx, bson.D{{Key: "authId", Value: authID}}).Decode(&u); err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	if u.ID == "" {
		u.ID = newID()
	}
	u.CreatedAt = now()
	u.UpdatedAt = u.CreatedAt
	_, err := r.coll.InsertOne(ctx, u)
	return err
}

func (r *UserRepository) Update(ctx context.Context, u *model.User) error {
	u.UpdatedAt = now()
	res, err := r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: u.ID}}, bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: u.Name},
		{Key: "email", Value: u.Email},
		{Key: "phone", Value: u.Phone},
		{Key: "photo", Value: u.Photo},
		{Key: "updatedAt", Value: u.UpdatedAt},
	}}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
