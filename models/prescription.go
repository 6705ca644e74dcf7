package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Prescription statuses. Dispensed is terminal except for the cancel
// override.
const (
	PrescriptionPending   = "pending"
	PrescriptionReady     = "ready"
	PrescriptionDispensed = "dispensed"
	PrescriptionCancelled = "cancelled"
)

// ValidPrescriptionStatus reports whether s is one of the enumerated
// statuses. Anything else fails validation before the state machine.
func ValidPrescriptionStatus(s string) bool {
	switch s {
	case PrescriptionPending, PrescriptionReady, PrescriptionDispensed, PrescriptionCancelled:
		return true
	}
	return false
}

type Medication struct {
	Name   string `json:"name" bson:"name"`
	Dosage string `json:"dosage" bson:"dosage"`
	Notes  string `json:"notes,omitempty" bson:"notes,omitempty"`
}

type Prescription struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Patient     primitive.ObjectID `json:"patient" bson:"patient"`
	Doctor      primitive.ObjectID `json:"doctor" bson:"doctor"`
	Medications []Medication       `json:"medications" bson:"medications"`
	Status      string             `json:"status" bson:"status"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type PrescriptionView struct {
	ID          primitive.ObjectID `json:"id"`
	Patient     UserRef            `json:"patient"`
	Doctor      UserRef            `json:"doctor"`
	Medications []Medication       `json:"medications"`
	Status      string             `json:"status"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}
