package model

import "time"

// User is the buyer profile created during onboarding. AuthID is the identity
// provider's subject; a missing User means onboarding is incomplete.
type User struct {
	ID        string    `json:"id" bson:"_id"`
	AuthID    string    `json:"-" bson:"authId"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Phone     string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Photo     *Image    `json:"photo,omitempty" bson:"photo,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" bson:"updatedAt"`
}
