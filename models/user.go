package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile carries the role-specific optional fields. Only the fields that
// fit the user's role are ever populated.
type Profile struct {
	Specialty       string `json:"specialty,omitempty" bson:"specialty,omitempty"`
	LicenseNumber   string `json:"licenseNumber,omitempty" bson:"licenseNumber,omitempty"`
	PharmacyName    string `json:"pharmacyName,omitempty" bson:"pharmacyName,omitempty"`
	PharmacyDetails string `json:"pharmacyDetails,omitempty" bson:"pharmacyDetails,omitempty"`
}

type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"-" bson:"password"`
	Role      string             `json:"role" bson:"role"`
	Profile   Profile            `json:"profile" bson:"profile"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// UserRef is the resolved partial view attached to responses wherever a
// document stores a user id.
type UserRef struct {
	ID    primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name  string             `json:"name" bson:"name"`
	Email string             `json:"email" bson:"email"`
	Role  string             `json:"role" bson:"role"`
}

func (u User) Ref() UserRef {
	return UserRef{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
