package services

import (
	"context"
	"errors"
	"log"
	"time"

	"MedConnect/config"
	"MedConnect/models"
	"MedConnect/role"
	"MedConnect/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CreateAppointmentInput struct {
	Doctor   string    `json:"doctor" binding:"required"`
	Datetime time.Time `json:"datetime" binding:"required"`
	Reason   string    `json:"reason"`
}

type UpdateAppointmentInput struct {
	Datetime *time.Time `json:"datetime"`
	Reason   *string    `json:"reason"`
	Status   *string    `json:"status"`
}

func fetchAppointmentDoc(ctx context.Context, oid primitive.ObjectID) (*models.Appointment, error) {
	appt := models.Appointment{}
	coll := config.OpenCollection(util.AppointmentCollection)
	if err := config.FindOne(ctx, coll, bson.M{"_id": oid}, &appt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, util.NotFound(util.APPOINTMENT_NOT_FOUND)
		}
		log.Println("Error fetching appointment:", err)
		return nil, err
	}
	return &appt, nil
}

func cacheAppointment(ctx context.Context, appt *models.Appointment) {
	key := util.AppointmentKey + appt.ID.Hex()
	if err := config.DeleteCache(ctx, key); err != nil {
		log.Println("Failed deleting old appointment cache:", err)
	}
	if err := config.SetCache(ctx, key, appt); err != nil {
		log.Println("Failed caching appointment:", err)
	}
}

/*
* Patients book their own appointments: the actor becomes the patient
* New appointments always start pending
 */
func CreateAppointment(ctx context.Context, actor role.Actor, input CreateAppointmentInput) (*models.AppointmentView, error) {
	if err := role.CanCreateAppointment(actor); err != nil {
		return nil, err
	}
	doctorID, err := primitive.ObjectIDFromHex(input.Doctor)
	if err != nil {
		return nil, util.ValidationError("invalid doctor id")
	}

	now := time.Now()
	appt := models.Appointment{
		Patient:   actor.ID,
		Doctor:    doctorID,
		Datetime:  input.Datetime,
		Reason:    input.Reason,
		Status:    models.AppointmentPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	coll := config.OpenCollection(util.AppointmentCollection)
	inserted, err := config.CreateOne(ctx, coll, appt)
	if err != nil {
		log.Println("Error creating appointment:", err)
		return nil, err
	}
	appt.ID = inserted.InsertedID.(primitive.ObjectID)
	cacheAppointment(ctx, &appt)
	return ResolveAppointment(ctx, appt)
}

/*
* Scope the listing through the policy, then resolve references
 */
func ListAppointments(ctx context.Context, actor role.Actor, patientID, doctorID string) ([]models.AppointmentView, error) {
	filter, err := role.AppointmentListFilter(actor, patientID, doctorID)
	if err != nil {
		return nil, err
	}
	var appts []models.Appointment
	coll := config.OpenCollection(util.AppointmentCollection)
	if err := config.FindAll(ctx, coll, filter, nil, &appts); err != nil {
		log.Println("Error fetching appointments:", err)
		return nil, err
	}
	views, err := ResolveAppointments(ctx, appts)
	if err != nil {
		return nil, err
	}
	if views == nil {
		views = []models.AppointmentView{}
	}
	return views, nil
}

func FetchAppointment(ctx context.Context, id string) (*models.AppointmentView, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, util.ValidationError("invalid appointment id")
	}

	key := util.AppointmentKey + id
	cached := models.Appointment{}
	if ok, err := config.GetCache(ctx, key, &cached); ok && err == nil {
		return ResolveAppointment(ctx, cached)
	}

	appt, err := fetchAppointmentDoc(ctx, oid)
	if err != nil {
		return nil, err
	}
	if err := config.SetCache(ctx, key, appt); err != nil {
		log.Println("Error caching appointment:", err)
	}
	return ResolveAppointment(ctx, *appt)
}

// transition applies a guarded status change with a compare-and-set on the
// expected current status. When the swap misses, the caller lost a race or
// the precondition never held; either way the current status is reported.
func transition(ctx context.Context, oid primitive.ObjectID, expected string, set bson.M, failMessage string) (*models.Appointment, error) {
	updated := models.Appointment{}
	coll := config.OpenCollection(util.AppointmentCollection)
	err := config.FindOneAndUpdate(ctx, coll, bson.M{"_id": oid, "status": expected}, bson.M{"$set": set}, &updated)
	if err == nil {
		return &updated, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		log.Println("Error applying appointment transition:", err)
		return nil, err
	}
	current, fetchErr := fetchAppointmentDoc(ctx, oid)
	if fetchErr != nil {
		return nil, fetchErr
	}
	return nil, util.InvalidTransition(failMessage, current.Status)
}

/*
* approve: pending -> confirmed, stamps the approver exactly once
* Admin or the assigned doctor only
 */
func ApproveAppointment(ctx context.Context, actor role.Actor, id string) (*models.AppointmentView, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, util.ValidationError("invalid appointment id")
	}
	appt, err := fetchAppointmentDoc(ctx, oid)
	if err != nil {
		return nil, err
	}
	if err := role.CanApproveAppointment(actor, *appt); err != nil {
		return nil, err
	}
	updated, err := transition(ctx, oid, models.AppointmentPending, bson.M{
		"status":     models.AppointmentConfirmed,
		"approvedBy": actor.ID,
		"updatedAt":  time.Now(),
	}, util.ONLY_PENDING_CAN_BE_APPROVED)
	if err != nil {
		return nil, err
	}
	cacheAppointment(ctx, updated)
	return ResolveAppointment(ctx, *updated)
}

/*
* complete: confirmed -> completed, stamps completedAt exactly once
* Only the assigned doctor
 */
func CompleteAppointment(ctx context.Context, actor role.Actor, id string) (*models.AppointmentView, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, util.ValidationError("invalid appointment id")
	}
	appt, err := fetchAppointmentDoc(ctx, oid)
	if err != nil {
		return nil, err
	}
	if err := role.CanCompleteAppointment(actor, *appt); err != nil {
		return nil, err
	}
	now := time.Now()
	updated, err := transition(ctx, oid, models.AppointmentConfirmed, bson.M{
		"status":      models.AppointmentCompleted,
		"completedAt": now,
		"updatedAt":   now,
	}, util.ONLY_CONFIRMED_CAN_BE_COMPLETED)
	if err != nil {
		return nil, err
	}
	cacheAppointment(ctx, updated)
	return ResolveAppointment(ctx, *updated)
}

/*
* Generic field edit for admin, the patient, or the doctor on the record
* Direct status writes are rejected: transitions only run through
* approve/complete
 */
func UpdateAppointment(ctx context.Context, actor role.Actor, id string, input UpdateAppointmentInput) (*models.AppointmentView, error) {
	if input.Status != nil {
		return nil, util.ValidationError(util.STATUS_NOT_EDITABLE)
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, util.ValidationError("invalid appointment id")
	}
	appt, err := fetchAppointmentDoc(ctx, oid)
	if err != nil {
		return nil, err
	}
	if err := role.CanEditAppointment(actor, *appt); err != nil {
		return nil, err
	}

	set := bson.M{"updatedAt": time.Now()}
	if input.Datetime != nil {
		set["datetime"] = *input.Datetime
	}
	if input.Reason != nil {
		set["reason"] = *input.Reason
	}

	updated := models.Appointment{}
	coll := config.OpenCollection(util.AppointmentCollection)
	err = config.FindOneAndUpdate(ctx, coll, bson.M{"_id": oid}, bson.M{"$set": set}, &updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, util.NotFound(util.APPOINTMENT_NOT_FOUND)
		}
		log.Println("Error updating appointment:", err)
		return nil, err
	}
	cacheAppointment(ctx, &updated)
	return ResolveAppointment(ctx, updated)
}

/*
* Admin or the owning patient may delete
 */
func DeleteAppointment(ctx context.Context, actor role.Actor, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return util.ValidationError("invalid appointment id")
	}
	appt, err := fetchAppointmentDoc(ctx, oid)
	if err != nil {
		return err
	}
	if err := role.CanDeleteAppointment(actor, *appt); err != nil {
		return err
	}
	coll := config.OpenCollection(util.AppointmentCollection)
	if _, err := config.DeleteOne(ctx, coll, bson.M{"_id": oid}); err != nil {
		log.Println("Error deleting appointment:", err)
		return err
	}
	if err := config.DeleteCache(ctx, util.AppointmentKey+id); err != nil {
		log.Println("Error deleting appointment from cache:", err)
	}
	return nil
}
