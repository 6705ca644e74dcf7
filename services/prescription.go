package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"MedConnect/config"
	"MedConnect/models"
	"MedConnect/role"
	"MedConnect/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CreatePrescriptionInput struct {
	Patient     string              `json:"patient" binding:"required"`
	Medications []models.Medication `json:"medications" binding:"required"`
}

/*
* Every medication needs a non-empty name and dosage; notes are optional
 */
func ValidateMedications(medications []models.Medication) error {
	if len(medications) == 0 {
		return util.ValidationError(util.AT_LEAST_ONE_MEDICATION)
	}
	for _, m := range medications {
		if strings.TrimSpace(m.Name) == "" || strings.TrimSpace(m.Dosage) == "" {
			return util.ValidationError(util.MEDICATION_FIELDS_REQUIRED)
		}
	}
	return nil
}

/*
* Doctors prescribe: the actor becomes the prescriber
* New prescriptions always start pending
 */
func CreatePrescription(ctx context.Context, actor role.Actor, input CreatePrescriptionInput) (*models.PrescriptionView, error) {
	if err := role.CanCreatePrescription(actor); err != nil {
		return nil, err
	}
	if err := ValidateMedications(input.Medications); err != nil {
		return nil, err
	}
	patientID, err := primitive.ObjectIDFromHex(input.Patient)
	if err != nil {
		return nil, util.ValidationError("invalid patient id")
	}

	now := time.Now()
	pres := models.Prescription{
		Patient:     patientID,
		Doctor:      actor.ID,
		Medications: input.Medications,
		Status:      models.PrescriptionPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	coll := config.OpenCollection(util.PrescriptionCollection)
	inserted, err := config.CreateOne(ctx, coll, pres)
	if err != nil {
		log.Println("Error creating prescription:", err)
		return nil, err
	}
	pres.ID = inserted.InsertedID.(primitive.ObjectID)
	cachePrescription(ctx, &pres)
	return ResolvePrescription(ctx, pres)
}

func cachePrescription(ctx context.Context, pres *models.Prescription) {
	key := util.PrescriptionKey + pres.ID.Hex()
	if err := config.DeleteCache(ctx, key); err != nil {
		log.Println("Failed deleting old prescription cache:", err)
	}
	if err := config.SetCache(ctx, key, pres); err != nil {
		log.Println("Failed caching prescription:", err)
	}
}

func findPrescriptions(ctx context.Context, filter bson.M) ([]models.PrescriptionView, error) {
	var list []models.Prescription
	coll := config.OpenCollection(util.PrescriptionCollection)
	if err := config.FindAll(ctx, coll, filter, nil, &list); err != nil {
		log.Println("Error fetching prescriptions:", err)
		return nil, err
	}
	views, err := ResolvePrescriptions(ctx, list)
	if err != nil {
		return nil, err
	}
	if views == nil {
		views = []models.PrescriptionView{}
	}
	return views, nil
}

/*
* Role-scoped listing: patients their own, doctors what they authored,
* pharmacists the fulfillment queue, admins everything
 */
func ListPrescriptions(ctx context.Context, actor role.Actor) ([]models.PrescriptionView, error) {
	return findPrescriptions(ctx, role.PrescriptionListFilter(actor))
}

/*
* Per-patient listing: a patient may only request their own
 */
func ListPatientPrescriptions(ctx context.Context, actor role.Actor, patientID string) ([]models.PrescriptionView, error) {
	pid, err := primitive.ObjectIDFromHex(patientID)
	if err != nil {
		return nil, util.ValidationError("invalid patient id")
	}
	if err := role.CanViewPatientPrescriptions(actor, pid); err != nil {
		return nil, err
	}
	return findPrescriptions(ctx, bson.M{"patient": pid})
}

func FetchPrescriptionByID(ctx context.Context, id string) (*models.PrescriptionView, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, util.ValidationError("invalid prescription id")
	}

	key := util.PrescriptionKey + id
	cached := models.Prescription{}
	if ok, err := config.GetCache(ctx, key, &cached); ok && err == nil {
		return ResolvePrescription(ctx, cached)
	}

	pres, err := fetchPrescriptionDoc(ctx, oid)
	if err != nil {
		return nil, err
	}
	if err := config.SetCache(ctx, key, pres); err != nil {
		log.Println("Error caching prescription:", err)
	}
	return ResolvePrescription(ctx, *pres)
}

func fetchPrescriptionDoc(ctx context.Context, oid primitive.ObjectID) (*models.Prescription, error) {
	pres := models.Prescription{}
	coll := config.OpenCollection(util.PrescriptionCollection)
	if err := config.FindOne(ctx, coll, bson.M{"_id": oid}, &pres); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, util.NotFound(util.PRESCRIPTION_NOT_FOUND)
		}
		log.Println("Error fetching prescription:", err)
		return nil, err
	}
	return &pres, nil
}

// The fulfillment queue: what a pharmacist works through.
func ListPharmacyQueue(ctx context.Context) ([]models.PrescriptionView, error) {
	return findPrescriptions(ctx, bson.M{
		"status": bson.M{"$in": []string{models.PrescriptionPending, models.PrescriptionReady}},
	})
}

func ListPendingPrescriptions(ctx context.Context) ([]models.PrescriptionView, error) {
	return findPrescriptions(ctx, bson.M{"status": models.PrescriptionPending})
}

// prescriptionTransitionAllowed encodes the one hard rule of the
// prescription machine: dispensed only ever moves to cancelled.
func prescriptionTransitionAllowed(current, next string) bool {
	if current == models.PrescriptionDispensed {
		return next == models.PrescriptionCancelled
	}
	return true
}

/*
* Pharmacist or admin moves a prescription through its lifecycle
* The swap is compare-and-set on the observed status so racing updates
* serialize: the loser reports the status it lost to
 */
func UpdatePrescriptionStatus(ctx context.Context, actor role.Actor, id string, status string) (*models.PrescriptionView, error) {
	if err := role.CanTransitionPrescription(actor); err != nil {
		return nil, err
	}
	if !models.ValidPrescriptionStatus(status) {
		return nil, util.ValidationError("invalid status")
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, util.ValidationError("invalid prescription id")
	}
	pres, err := fetchPrescriptionDoc(ctx, oid)
	if err != nil {
		return nil, err
	}
	if !prescriptionTransitionAllowed(pres.Status, status) {
		return nil, util.InvalidTransition(util.DISPENSED_IS_FINAL, pres.Status)
	}

	updated := models.Prescription{}
	coll := config.OpenCollection(util.PrescriptionCollection)
	err = config.FindOneAndUpdate(ctx, coll,
		bson.M{"_id": oid, "status": pres.Status},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
		&updated,
	)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			current, fetchErr := fetchPrescriptionDoc(ctx, oid)
			if fetchErr != nil {
				return nil, fetchErr
			}
			return nil, util.InvalidTransition("prescription status changed concurrently", current.Status)
		}
		log.Println("Error updating prescription status:", err)
		return nil, err
	}
	cachePrescription(ctx, &updated)
	return ResolvePrescription(ctx, updated)
}
