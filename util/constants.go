package util

// Collection names
const (
	UserCollection          = "users"
	AppointmentCollection   = "appointments"
	PrescriptionCollection  = "prescriptions"
	MedicalRecordCollection = "medicalrecords"
)

// Cache key prefixes
const (
	UserKey         = "USER:"
	AppointmentKey  = "APPOINTMENT:"
	PrescriptionKey = "PRESCRIPTION:"
)

// Shared messages
const (
	INVALID_CREDENTIALS             = "Invalid credentials"
	EMAIL_ALREADY_IN_USE            = "email already in use"
	ROLE_MISMATCH                   = "Role mismatch"
	FORBIDDEN                       = "Forbidden"
	AUTHENTICATION_REQUIRED         = "Authentication required"
	INVALID_TOKEN                   = "Invalid token"
	APPOINTMENT_NOT_FOUND           = "Appointment not found"
	PRESCRIPTION_NOT_FOUND          = "Prescription not found"
	USER_NOT_FOUND                  = "User not found"
	ADMIN_SIGNUP_NOT_CONFIGURED     = "admin signup not configured on server"
	INVALID_ADMIN_SECRET            = "invalid admin secret"
	ONLY_PENDING_CAN_BE_APPROVED    = "Only pending appointments can be approved"
	ONLY_CONFIRMED_CAN_BE_COMPLETED = "Only confirmed appointments can be completed"
	DISPENSED_IS_FINAL              = "Cannot change status of dispensed prescription"
	MEDICATION_FIELDS_REQUIRED      = "Each medication must have name and dosage"
	AT_LEAST_ONE_MEDICATION         = "At least one medication is required"
	STATUS_NOT_EDITABLE             = "status cannot be set directly; use the approve or complete action"
	STORAGE_TIMEOUT                 = "storage temporarily unavailable"
)
