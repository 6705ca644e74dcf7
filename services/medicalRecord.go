package services

import (
	"context"
	"log"
	"time"

	"MedConnect/config"
	"MedConnect/models"
	"MedConnect/role"
	"MedConnect/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
* Doctors and admins append records; the creator is stamped from the actor
* Records are append-only: there is no update or delete path
 */
func CreateMedicalRecord(ctx context.Context, actor role.Actor, patientID, title, notes, fileURL string) (*models.MedicalRecordView, error) {
	if err := role.CanCreateRecord(actor); err != nil {
		return nil, err
	}
	pid, err := primitive.ObjectIDFromHex(patientID)
	if err != nil {
		return nil, util.ValidationError("invalid patient id")
	}

	now := time.Now()
	rec := models.MedicalRecord{
		Patient:   pid,
		CreatedBy: actor.ID,
		Title:     title,
		Notes:     notes,
		FileURL:   fileURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	coll := config.OpenCollection(util.MedicalRecordCollection)
	inserted, err := config.CreateOne(ctx, coll, rec)
	if err != nil {
		log.Println("Error creating medical record:", err)
		return nil, err
	}
	rec.ID = inserted.InsertedID.(primitive.ObjectID)
	return ResolveMedicalRecord(ctx, rec)
}

/*
* Chronological listing for a patient, creator resolved
* A patient may only read their own records; other roles may read any
 */
func ListMedicalRecords(ctx context.Context, actor role.Actor, patientID string) ([]models.MedicalRecordView, error) {
	pid, err := primitive.ObjectIDFromHex(patientID)
	if err != nil {
		return nil, util.ValidationError("invalid patient id")
	}
	if err := role.CanListRecords(actor, pid); err != nil {
		return nil, err
	}

	var records []models.MedicalRecord
	coll := config.OpenCollection(util.MedicalRecordCollection)
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	if err := config.FindAll(ctx, coll, bson.M{"patient": pid}, opts, &records); err != nil {
		log.Println("Error fetching medical records:", err)
		return nil, err
	}
	views, err := ResolveMedicalRecords(ctx, records)
	if err != nil {
		return nil, err
	}
	if views == nil {
		views = []models.MedicalRecordView{}
	}
	return views, nil
}
