package role

import (
	"net/http"
	"testing"

	"MedConnect/models"
	"MedConnect/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newActor(r string) Actor {
	return Actor{ID: primitive.NewObjectID(), Role: r}
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	require.Error(t, err)
	return util.StatusOf(err)
}

func TestUserListFilter(t *testing.T) {
	admin := newActor(Admin)
	patient := newActor(Patient)

	filter, err := UserListFilter(admin, "")
	require.NoError(t, err)
	assert.Equal(t, bson.M{}, filter)

	filter, err = UserListFilter(patient, Doctor)
	require.NoError(t, err)
	assert.Equal(t, bson.M{"role": Doctor}, filter)

	_, err = UserListFilter(patient, "")
	assert.Equal(t, http.StatusForbidden, statusOf(t, err))

	_, err = UserListFilter(patient, "wizard")
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestCanManageUser(t *testing.T) {
	require.NoError(t, CanManageUser(newActor(Admin)))
	for _, r := range []string{Patient, Doctor, Pharmacist} {
		err := CanManageUser(newActor(r))
		assert.Equal(t, http.StatusForbidden, statusOf(t, err), r)
	}
}

func TestAppointmentListFilterNoParams(t *testing.T) {
	patient := newActor(Patient)
	doctor := newActor(Doctor)

	filter, err := AppointmentListFilter(patient, "", "")
	require.NoError(t, err)
	assert.Equal(t, bson.M{"patient": patient.ID}, filter)

	filter, err = AppointmentListFilter(doctor, "", "")
	require.NoError(t, err)
	assert.Equal(t, bson.M{"doctor": doctor.ID}, filter)

	for _, r := range []string{Pharmacist, Admin} {
		filter, err = AppointmentListFilter(newActor(r), "", "")
		require.NoError(t, err)
		assert.Equal(t, bson.M{}, filter, r)
	}
}

func TestAppointmentListFilterPatientParam(t *testing.T) {
	other := primitive.NewObjectID()
	patient := newActor(Patient)

	// a patient may query their own id
	filter, err := AppointmentListFilter(patient, patient.ID.Hex(), "")
	require.NoError(t, err)
	assert.Equal(t, bson.M{"patient": patient.ID}, filter)

	// but not another patient's
	_, err = AppointmentListFilter(patient, other.Hex(), "")
	assert.Equal(t, http.StatusForbidden, statusOf(t, err))

	// any doctor and admin may query any patient
	for _, r := range []string{Doctor, Admin} {
		filter, err = AppointmentListFilter(newActor(r), other.Hex(), "")
		require.NoError(t, err)
		assert.Equal(t, bson.M{"patient": other}, filter, r)
	}

	// a pharmacist may not
	_, err = AppointmentListFilter(newActor(Pharmacist), other.Hex(), "")
	assert.Equal(t, http.StatusForbidden, statusOf(t, err))

	_, err = AppointmentListFilter(patient, "not-an-id", "")
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestAppointmentListFilterDoctorParam(t *testing.T) {
	otherDoctor := primitive.NewObjectID()
	doctor := newActor(Doctor)

	filter, err := AppointmentListFilter(doctor, "", doctor.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, bson.M{"doctor": doctor.ID}, filter)

	// a doctor querying a different doctor is the forbidden symmetric case
	_, err = AppointmentListFilter(doctor, "", otherDoctor.Hex())
	assert.Equal(t, http.StatusForbidden, statusOf(t, err))

	for _, r := range []string{Patient, Admin} {
		filter, err = AppointmentListFilter(newActor(r), "", otherDoctor.Hex())
		require.NoError(t, err)
		assert.Equal(t, bson.M{"doctor": otherDoctor}, filter, r)
	}
}

func TestAppointmentListFilterDeterministic(t *testing.T) {
	actor := newActor(Doctor)
	target := primitive.NewObjectID().Hex()
	first, err1 := AppointmentListFilter(actor, target, "")
	second, err2 := AppointmentListFilter(actor, target, "")
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)
}

func TestAppointmentMutationPolicies(t *testing.T) {
	patient := newActor(Patient)
	doctor := newActor(Doctor)
	admin := newActor(Admin)
	otherDoctor := newActor(Doctor)

	appt := models.Appointment{
		ID:      primitive.NewObjectID(),
		Patient: patient.ID,
		Doctor:  doctor.ID,
		Status:  models.AppointmentPending,
	}

	require.NoError(t, CanCreateAppointment(patient))
	assert.Error(t, CanCreateAppointment(doctor))

	require.NoError(t, CanApproveAppointment(admin, appt))
	require.NoError(t, CanApproveAppointment(doctor, appt))
	assert.Error(t, CanApproveAppointment(otherDoctor, appt))
	assert.Error(t, CanApproveAppointment(patient, appt))

	require.NoError(t, CanCompleteAppointment(doctor, appt))
	assert.Error(t, CanCompleteAppointment(otherDoctor, appt))
	assert.Error(t, CanCompleteAppointment(admin, appt))

	require.NoError(t, CanEditAppointment(admin, appt))
	require.NoError(t, CanEditAppointment(patient, appt))
	require.NoError(t, CanEditAppointment(doctor, appt))
	assert.Error(t, CanEditAppointment(otherDoctor, appt))

	require.NoError(t, CanDeleteAppointment(admin, appt))
	require.NoError(t, CanDeleteAppointment(patient, appt))
	assert.Error(t, CanDeleteAppointment(doctor, appt))
}

func TestPrescriptionListFilter(t *testing.T) {
	patient := newActor(Patient)
	doctor := newActor(Doctor)
	pharmacist := newActor(Pharmacist)
	admin := newActor(Admin)

	assert.Equal(t, bson.M{"patient": patient.ID}, PrescriptionListFilter(patient))
	assert.Equal(t, bson.M{"doctor": doctor.ID}, PrescriptionListFilter(doctor))
	assert.Equal(t,
		bson.M{"status": bson.M{"$in": []string{models.PrescriptionPending, models.PrescriptionReady}}},
		PrescriptionListFilter(pharmacist))
	assert.Equal(t, bson.M{}, PrescriptionListFilter(admin))

	// total and deterministic
	assert.Equal(t, PrescriptionListFilter(pharmacist), PrescriptionListFilter(pharmacist))
}

func TestPrescriptionPolicies(t *testing.T) {
	patient := newActor(Patient)
	doctor := newActor(Doctor)
	pharmacist := newActor(Pharmacist)
	admin := newActor(Admin)

	require.NoError(t, CanCreatePrescription(doctor))
	assert.Error(t, CanCreatePrescription(pharmacist))

	require.NoError(t, CanViewPatientPrescriptions(patient, patient.ID))
	assert.Error(t, CanViewPatientPrescriptions(patient, primitive.NewObjectID()))
	require.NoError(t, CanViewPatientPrescriptions(doctor, primitive.NewObjectID()))

	require.NoError(t, CanTransitionPrescription(pharmacist))
	require.NoError(t, CanTransitionPrescription(admin))
	assert.Error(t, CanTransitionPrescription(doctor))
	assert.Error(t, CanTransitionPrescription(patient))
}

func TestMedicalRecordPolicies(t *testing.T) {
	patient := newActor(Patient)
	doctor := newActor(Doctor)
	pharmacist := newActor(Pharmacist)
	admin := newActor(Admin)

	require.NoError(t, CanCreateRecord(doctor))
	require.NoError(t, CanCreateRecord(admin))
	assert.Error(t, CanCreateRecord(patient))
	assert.Error(t, CanCreateRecord(pharmacist))

	require.NoError(t, CanListRecords(patient, patient.ID))
	assert.Error(t, CanListRecords(patient, primitive.NewObjectID()))
	require.NoError(t, CanListRecords(pharmacist, primitive.NewObjectID()))
	require.NoError(t, CanListRecords(doctor, primitive.NewObjectID()))
}

func TestValid(t *testing.T) {
	for _, r := range []string{Patient, Doctor, Pharmacist, Admin} {
		assert.True(t, Valid(r))
	}
	assert.False(t, Valid("superadmin"))
	assert.False(t, Valid(""))
}
