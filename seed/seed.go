package seed

import (
	"context"
	"log"
	"time"

	"MedConnect/config"
	"MedConnect/models"
	"MedConnect/services"
	"MedConnect/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

/*
* Wipe the collections and load the demo fixtures:
* one user per role plus a pending appointment for tomorrow
 */
func Run(ctx context.Context) error {
	for _, name := range []string{util.UserCollection, util.AppointmentCollection, util.PrescriptionCollection, util.MedicalRecordCollection} {
		if _, err := config.DeleteMany(ctx, config.OpenCollection(name), bson.M{}); err != nil {
			return err
		}
	}

	users := []models.User{
		{Name: "Alice Patient", Email: "alice@patient.test", Role: "patient"},
		{Name: "Dr. Bob", Email: "bob@doctor.test", Role: "doctor", Profile: models.Profile{Specialty: "Cardiology"}},
		{Name: "Pharma Phil", Email: "phil@pharmacy.test", Role: "pharmacist"},
		{Name: "Admin Amy", Email: "amy@admin.test", Role: "admin"},
	}

	ids := make(map[string]primitive.ObjectID)
	userColl := config.OpenCollection(util.UserCollection)
	now := time.Now()
	for _, u := range users {
		hashed, err := services.HashPassword("password1")
		if err != nil {
			return err
		}
		u.Password = hashed
		u.CreatedAt = now
		u.UpdatedAt = now
		inserted, err := config.CreateOne(ctx, userColl, u)
		if err != nil {
			return err
		}
		ids[u.Role] = inserted.InsertedID.(primitive.ObjectID)
	}

	appt := models.Appointment{
		Patient:   ids["patient"],
		Doctor:    ids["doctor"],
		Datetime:  now.Add(24 * time.Hour),
		Reason:    "Checkup",
		Status:    models.AppointmentPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := config.CreateOne(ctx, config.OpenCollection(util.AppointmentCollection), appt); err != nil {
		return err
	}

	log.Println("Seed complete")
	return nil
}
