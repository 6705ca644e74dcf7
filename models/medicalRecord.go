package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MedicalRecord is append-only: there is no update or delete operation.
type MedicalRecord struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Patient   primitive.ObjectID `json:"patient" bson:"patient"`
	CreatedBy primitive.ObjectID `json:"createdBy" bson:"createdBy"`
	Title     string             `json:"title" bson:"title"`
	Notes     string             `json:"notes,omitempty" bson:"notes,omitempty"`
	FileURL   string             `json:"fileUrl,omitempty" bson:"fileUrl,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type MedicalRecordView struct {
	ID        primitive.ObjectID `json:"id"`
	Patient   primitive.ObjectID `json:"patient"`
	CreatedBy UserRef            `json:"createdBy"`
	Title     string             `json:"title"`
	Notes     string             `json:"notes,omitempty"`
	FileURL   string             `json:"fileUrl,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}
