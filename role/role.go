package role

import (
	"MedConnect/models"
	"MedConnect/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The four roles. Role is immutable after signup except by admin edit.
const (
	Patient    = "patient"
	Doctor     = "doctor"
	Pharmacist = "pharmacist"
	Admin      = "admin"
)

func Valid(r string) bool {
	switch r {
	case Patient, Doctor, Pharmacist, Admin:
		return true
	}
	return false
}

// Actor is the authenticated identity performing a request. Every policy
// decision is a pure function of the actor and the resource snapshot, so
// the whole rule set is testable without storage.
type Actor struct {
	ID   primitive.ObjectID
	Role string
}

// ---- Users ----

// UserListFilter scopes a user listing. Any authenticated actor may filter
// by role; listing everyone without a role filter is admin-only.
func UserListFilter(actor Actor, roleFilter string) (bson.M, error) {
	if roleFilter != "" {
		if !Valid(roleFilter) {
			return nil, util.ValidationError("invalid role filter")
		}
		return bson.M{"role": roleFilter}, nil
	}
	if actor.Role != Admin {
		return nil, util.Forbidden("Forbidden: role filter required")
	}
	return bson.M{}, nil
}

// CanManageUser gates single-user read, patch and delete.
func CanManageUser(actor Actor) error {
	if actor.Role != Admin {
		return util.Forbidden(util.FORBIDDEN)
	}
	return nil
}

// ---- Appointments ----

// AppointmentListFilter scopes an appointment listing. Explicit patient or
// doctor query params are allowed only per the symmetric visibility rules;
// without params the actor's role decides the filter.
func AppointmentListFilter(actor Actor, patientID, doctorID string) (bson.M, error) {
	q := bson.M{}
	if patientID != "" {
		pid, err := primitive.ObjectIDFromHex(patientID)
		if err != nil {
			return nil, util.ValidationError("invalid patient id")
		}
		if actor.Role == Admin || actor.Role == Doctor || pid == actor.ID {
			q["patient"] = pid
		} else {
			return nil, util.Forbidden(util.FORBIDDEN)
		}
	}
	if doctorID != "" {
		did, err := primitive.ObjectIDFromHex(doctorID)
		if err != nil {
			return nil, util.ValidationError("invalid doctor id")
		}
		if actor.Role == Admin || actor.Role == Patient || did == actor.ID {
			q["doctor"] = did
		} else {
			return nil, util.Forbidden(util.FORBIDDEN)
		}
	}
	if patientID == "" && doctorID == "" {
		switch actor.Role {
		case Patient:
			q["patient"] = actor.ID
		case Doctor:
			q["doctor"] = actor.ID
		}
		// pharmacists and admins see all
	}
	return q, nil
}

func CanCreateAppointment(actor Actor) error {
	if actor.Role != Patient {
		return util.Forbidden(util.FORBIDDEN)
	}
	return nil
}

// CanApproveAppointment: admin, or the doctor the appointment is assigned to.
func CanApproveAppointment(actor Actor, appt models.Appointment) error {
	switch actor.Role {
	case Admin:
		return nil
	case Doctor:
		if appt.Doctor != actor.ID {
			return util.Forbidden("You can only approve your own appointments")
		}
		return nil
	}
	return util.Forbidden("Only admin or doctor can approve appointments")
}

// CanCompleteAppointment: only the assigned doctor.
func CanCompleteAppointment(actor Actor, appt models.Appointment) error {
	if actor.Role != Doctor {
		return util.Forbidden("Only doctor can complete appointments")
	}
	if appt.Doctor != actor.ID {
		return util.Forbidden("You can only complete your own appointments")
	}
	return nil
}

// CanEditAppointment gates the generic field patch: admin, the owning
// patient, or the assigned doctor.
func CanEditAppointment(actor Actor, appt models.Appointment) error {
	if actor.Role == Admin || appt.Patient == actor.ID || appt.Doctor == actor.ID {
		return nil
	}
	return util.Forbidden(util.FORBIDDEN)
}

// CanDeleteAppointment: admin or the owning patient.
func CanDeleteAppointment(actor Actor, appt models.Appointment) error {
	if actor.Role == Admin || appt.Patient == actor.ID {
		return nil
	}
	return util.Forbidden(util.FORBIDDEN)
}

// ---- Prescriptions ----

func CanCreatePrescription(actor Actor) error {
	if actor.Role != Doctor {
		return util.Forbidden(util.FORBIDDEN)
	}
	return nil
}

// PrescriptionListFilter is total: every role maps to a filter, no error
// path. Patients see their own, doctors what they authored, pharmacists the
// fulfillment queue, admins everything.
func PrescriptionListFilter(actor Actor) bson.M {
	switch actor.Role {
	case Patient:
		return bson.M{"patient": actor.ID}
	case Doctor:
		return bson.M{"doctor": actor.ID}
	case Pharmacist:
		return bson.M{"status": bson.M{"$in": []string{models.PrescriptionPending, models.PrescriptionReady}}}
	}
	return bson.M{}
}

// CanViewPatientPrescriptions gates the per-patient listing: a patient may
// only request their own.
func CanViewPatientPrescriptions(actor Actor, patientID primitive.ObjectID) error {
	if actor.Role == Patient && actor.ID != patientID {
		return util.Forbidden(util.FORBIDDEN)
	}
	return nil
}

func CanTransitionPrescription(actor Actor) error {
	if actor.Role != Pharmacist && actor.Role != Admin {
		return util.Forbidden(util.FORBIDDEN)
	}
	return nil
}

// ---- Medical records ----

func CanCreateRecord(actor Actor) error {
	if actor.Role != Doctor && actor.Role != Admin {
		return util.Forbidden(util.FORBIDDEN)
	}
	return nil
}

// CanListRecords: the patient themselves, or any non-patient role.
func CanListRecords(actor Actor, patientID primitive.ObjectID) error {
	if actor.Role == Patient && actor.ID != patientID {
		return util.Forbidden(util.FORBIDDEN)
	}
	return nil
}
