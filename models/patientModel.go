package models

import (
	"time"
)

// Patient model. Uniqueness within a tenant (normalized name OR phone) is
// enforced by the repository scan, not by a database constraint, so that
// re-adding an existing patient stays idempotent.
type Patient struct {
	ID        string            `gorm:"primaryKey;column:id" json:"id"`
	DentistID string            `gorm:"column:dentist_id;not null;index" json:"dentist_id"`
	Name      string            `gorm:"column:name;not null;index" json:"name"`
	Phone     string            `gorm:"column:phone" json:"phone"`
	Documents []PatientDocument `gorm:"column:documents;serializer:json" json:"documents"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Dentist   Dentist           `gorm:"foreignKey:DentistID;references:ID" json:"-"`
}

func (Patient) TableName() string {
	return "patient"
}

// Document types accepted by the patient-documents upload.
const (
	DocumentPrescription = "Prescription"
	DocumentXRay         = "X-ray"
	DocumentInvoice      = "Invoice"
	DocumentOther        = "Other"
)

// PatientDocument is one uploaded file attached to a patient record. The
// list is append-only: documents are never edited in place.
type PatientDocument struct {
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// Appointment model. Start and End are RFC3339 strings as entered by the
// calendar UI; end-before-start is accepted input (logged, not rejected).
type Appointment struct {
	ID          string    `gorm:"primaryKey;column:id" json:"id"`
	DentistID   string    `gorm:"column:dentist_id;not null;index" json:"dentist_id"`
	PatientName string    `gorm:"column:patient_name;not null" json:"patientName"`
	Type        string    `gorm:"column:type;check:type IN ('Consultation', 'Cleaning', 'Emergency', 'Follow-up');not null" json:"type"`
	Start       string    `gorm:"column:start_at;not null;index" json:"start"`
	End         string    `gorm:"column:end_at;not null" json:"end"`
	Description string    `gorm:"column:description" json:"description"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Dentist     Dentist   `gorm:"foreignKey:DentistID;references:ID" json:"-"`
}

func (Appointment) TableName() string {
	return "appointment"
}

// Appointment types accepted by the calendar.
const (
	AppointmentConsultation = "Consultation"
	AppointmentCleaning     = "Cleaning"
	AppointmentEmergency    = "Emergency"
	AppointmentFollowUp     = "Follow-up"
)

// Consultation is a single line item inside a bill. Amount is nullable to
// mirror partially filled rows coming from the bill form.
type Consultation struct {
	Description string   `json:"description"`
	Amount      *float64 `json:"amount"`
}

// Bill payment states. Transitions are one-way: unpaid -> paid.
const (
	BillUnpaid = "unpaid"
	BillPaid   = "paid"
)

// Bill model. PatientName is a point-in-time snapshot taken at creation so
// receipts render without a patient lookup; it is not refreshed when the
// patient record is later renamed. Consultations are stored as an ordered
// JSON array and are immutable after creation.
type Bill struct {
	ID            string         `gorm:"primaryKey;column:id" json:"id"`
	DentistID     string         `gorm:"column:dentist_id;not null;index" json:"dentistId"`
	PatientID     string         `gorm:"column:patient_id;index" json:"patientId"`
	PatientName   string         `gorm:"column:patient_name;not null;index" json:"patientName"`
	Consultations []Consultation `gorm:"column:consultations;serializer:json" json:"consultations"`
	Status        string         `gorm:"column:status;check:status IN ('unpaid', 'paid');not null;default:unpaid" json:"status"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Dentist       Dentist        `gorm:"foreignKey:DentistID;references:ID" json:"-"`
}

func (Bill) TableName() string {
	return "bill"
}

// Total sums the consultation amounts. The value is always computed, never
// stored, so repeated reads of the same bill yield the same total.
func (b *Bill) Total() float64 {
	var total float64
	for _, c := range b.Consultations {
		if c.Amount != nil {
			total += *c.Amount
		}
	}
	return total
}
