package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Appointment statuses. Transitions only move forward; cancellation is the
// single escape hatch out of pending and confirmed.
const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

type Appointment struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Patient     primitive.ObjectID `json:"patient" bson:"patient"`
	Doctor      primitive.ObjectID `json:"doctor" bson:"doctor"`
	Datetime    time.Time          `json:"datetime" bson:"datetime"`
	Reason      string             `json:"reason,omitempty" bson:"reason,omitempty"`
	Status      string             `json:"status" bson:"status"`
	ApprovedBy  primitive.ObjectID `json:"approvedBy,omitempty" bson:"approvedBy,omitempty"`
	CompletedAt *time.Time         `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// AppointmentView is the response shape: references resolved to partial
// user views so the caller needs no second round trip.
type AppointmentView struct {
	ID          primitive.ObjectID `json:"id"`
	Patient     UserRef            `json:"patient"`
	Doctor      UserRef            `json:"doctor"`
	Datetime    time.Time          `json:"datetime"`
	Reason      string             `json:"reason,omitempty"`
	Status      string             `json:"status"`
	ApprovedBy  *UserRef           `json:"approvedBy,omitempty"`
	CompletedAt *time.Time         `json:"completedAt,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}
