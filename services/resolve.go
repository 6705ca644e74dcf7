package services

import (
	"context"
	"log"

	"MedConnect/config"
	"MedConnect/models"
	"MedConnect/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

/*
* Batch-load the referenced users and index them by id
* Deleting a user does not cascade, so a missing reference resolves to a
* view carrying only the raw id
 */
func loadUserRefs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserRef, error) {
	refs := make(map[primitive.ObjectID]models.UserRef)
	unique := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if id.IsZero() {
			continue
		}
		if _, seen := refs[id]; !seen {
			refs[id] = models.UserRef{ID: id}
			unique = append(unique, id)
		}
	}
	if len(unique) == 0 {
		return refs, nil
	}
	var users []models.User
	coll := config.OpenCollection(util.UserCollection)
	if err := config.FindAll(ctx, coll, bson.M{"_id": bson.M{"$in": unique}}, nil, &users); err != nil {
		log.Println("Error resolving user references:", err)
		return nil, err
	}
	for _, u := range users {
		refs[u.ID] = u.Ref()
	}
	return refs, nil
}

func appointmentView(appt models.Appointment, refs map[primitive.ObjectID]models.UserRef) models.AppointmentView {
	view := models.AppointmentView{
		ID:          appt.ID,
		Patient:     refs[appt.Patient],
		Doctor:      refs[appt.Doctor],
		Datetime:    appt.Datetime,
		Reason:      appt.Reason,
		Status:      appt.Status,
		CompletedAt: appt.CompletedAt,
		CreatedAt:   appt.CreatedAt,
		UpdatedAt:   appt.UpdatedAt,
	}
	if !appt.ApprovedBy.IsZero() {
		approver := refs[appt.ApprovedBy]
		view.ApprovedBy = &approver
	}
	return view
}

func ResolveAppointments(ctx context.Context, appts []models.Appointment) ([]models.AppointmentView, error) {
	ids := make([]primitive.ObjectID, 0, len(appts)*3)
	for _, a := range appts {
		ids = append(ids, a.Patient, a.Doctor, a.ApprovedBy)
	}
	refs, err := loadUserRefs(ctx, ids)
	if err != nil {
		return nil, err
	}
	views := make([]models.AppointmentView, 0, len(appts))
	for _, a := range appts {
		views = append(views, appointmentView(a, refs))
	}
	return views, nil
}

func ResolveAppointment(ctx context.Context, appt models.Appointment) (*models.AppointmentView, error) {
	refs, err := loadUserRefs(ctx, []primitive.ObjectID{appt.Patient, appt.Doctor, appt.ApprovedBy})
	if err != nil {
		return nil, err
	}
	view := appointmentView(appt, refs)
	return &view, nil
}

func prescriptionView(pres models.Prescription, refs map[primitive.ObjectID]models.UserRef) models.PrescriptionView {
	return models.PrescriptionView{
		ID:          pres.ID,
		Patient:     refs[pres.Patient],
		Doctor:      refs[pres.Doctor],
		Medications: pres.Medications,
		Status:      pres.Status,
		CreatedAt:   pres.CreatedAt,
		UpdatedAt:   pres.UpdatedAt,
	}
}

func ResolvePrescriptions(ctx context.Context, list []models.Prescription) ([]models.PrescriptionView, error) {
	ids := make([]primitive.ObjectID, 0, len(list)*2)
	for _, p := range list {
		ids = append(ids, p.Patient, p.Doctor)
	}
	refs, err := loadUserRefs(ctx, ids)
	if err != nil {
		return nil, err
	}
	views := make([]models.PrescriptionView, 0, len(list))
	for _, p := range list {
		views = append(views, prescriptionView(p, refs))
	}
	return views, nil
}

func ResolvePrescription(ctx context.Context, pres models.Prescription) (*models.PrescriptionView, error) {
	refs, err := loadUserRefs(ctx, []primitive.ObjectID{pres.Patient, pres.Doctor})
	if err != nil {
		return nil, err
	}
	view := prescriptionView(pres, refs)
	return &view, nil
}

func recordView(rec models.MedicalRecord, refs map[primitive.ObjectID]models.UserRef) models.MedicalRecordView {
	return models.MedicalRecordView{
		ID:        rec.ID,
		Patient:   rec.Patient,
		CreatedBy: refs[rec.CreatedBy],
		Title:     rec.Title,
		Notes:     rec.Notes,
		FileURL:   rec.FileURL,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

func ResolveMedicalRecords(ctx context.Context, list []models.MedicalRecord) ([]models.MedicalRecordView, error) {
	ids := make([]primitive.ObjectID, 0, len(list))
	for _, r := range list {
		ids = append(ids, r.CreatedBy)
	}
	refs, err := loadUserRefs(ctx, ids)
	if err != nil {
		return nil, err
	}
	views := make([]models.MedicalRecordView, 0, len(list))
	for _, r := range list {
		views = append(views, recordView(r, refs))
	}
	return views, nil
}

func ResolveMedicalRecord(ctx context.Context, rec models.MedicalRecord) (*models.MedicalRecordView, error) {
	refs, err := loadUserRefs(ctx, []primitive.ObjectID{rec.CreatedBy})
	if err != nil {
		return nil, err
	}
	view := recordView(rec, refs)
	return &view, nil
}
