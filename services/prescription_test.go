package services

import (
	"testing"

	"MedConnect/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateMedications(t *testing.T) {
	err := ValidateMedications(nil)
	assert.Error(t, err)

	err = ValidateMedications([]models.Medication{})
	assert.Error(t, err)

	err = ValidateMedications([]models.Medication{{Name: "Amoxicillin", Dosage: "500mg twice daily"}})
	require.NoError(t, err)

	err = ValidateMedications([]models.Medication{{Name: "Amoxicillin"}})
	assert.Error(t, err)

	err = ValidateMedications([]models.Medication{{Dosage: "500mg"}})
	assert.Error(t, err)

	// whitespace-only fields count as empty
	err = ValidateMedications([]models.Medication{{Name: "  ", Dosage: "500mg"}})
	assert.Error(t, err)

	// one bad medication fails the whole list
	err = ValidateMedications([]models.Medication{
		{Name: "Amoxicillin", Dosage: "500mg"},
		{Name: "Ibuprofen", Dosage: ""},
	})
	assert.Error(t, err)

	// notes are optional
	err = ValidateMedications([]models.Medication{{Name: "Ibuprofen", Dosage: "200mg", Notes: "after meals"}})
	require.NoError(t, err)
}

func TestPrescriptionTransitionAllowed(t *testing.T) {
	// dispensed only ever moves to cancelled
	assert.True(t, prescriptionTransitionAllowed(models.PrescriptionDispensed, models.PrescriptionCancelled))
	assert.False(t, prescriptionTransitionAllowed(models.PrescriptionDispensed, models.PrescriptionReady))
	assert.False(t, prescriptionTransitionAllowed(models.PrescriptionDispensed, models.PrescriptionPending))
	assert.False(t, prescriptionTransitionAllowed(models.PrescriptionDispensed, models.PrescriptionDispensed))

	// every other source state is open
	for _, from := range []string{models.PrescriptionPending, models.PrescriptionReady, models.PrescriptionCancelled} {
		for _, to := range []string{models.PrescriptionPending, models.PrescriptionReady, models.PrescriptionDispensed, models.PrescriptionCancelled} {
			assert.True(t, prescriptionTransitionAllowed(from, to), "%s -> %s", from, to)
		}
	}
}

func TestValidPrescriptionStatus(t *testing.T) {
	for _, s := range []string{"pending", "ready", "dispensed", "cancelled"} {
		assert.True(t, models.ValidPrescriptionStatus(s))
	}
	assert.False(t, models.ValidPrescriptionStatus("shipped"))
	assert.False(t, models.ValidPrescriptionStatus(""))
}
