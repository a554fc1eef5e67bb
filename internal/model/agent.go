package model

import "time"

// Agent is the professional profile of an identity that holds the agent plan.
type Agent struct {
	ID                 string    `json:"id" bson:"_id"`
	UserID             string    `json:"user_id" bson:"userId"`
	Name               string    `json:"name" bson:"name"`
	Email              string    `json:"email" bson:"email"`
	Phone              string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Photo              *Image    `json:"photo,omitempty" bson:"photo,omitempty"`
	Bio                string    `json:"bio,omitempty" bson:"bio,omitempty"`
	LicenseNumber      string    `json:"license_number,omitempty" bson:"licenseNumber,omitempty"`
	Agency             string    `json:"agency,omitempty" bson:"agency,omitempty"`
	OnboardingComplete bool      `json:"onboarding_complete" bson:"onboardingComplete"`
	CreatedAt          time.Time `json:"created_at" bson:"createdAt"`
}
