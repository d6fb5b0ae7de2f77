package models

import (
	"time"
)

// Dentist is the tenant of the system: one clinic account owning all
// patient, appointment and bill records created under it.
type Dentist struct {
	ID        string    `gorm:"primaryKey;column:id" json:"id"`
	Email     string    `gorm:"column:email;unique;not null;index" json:"email"`
	Password  string    `gorm:"column:password;not null" json:"-"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Patients     []Patient     `gorm:"foreignKey:DentistID;references:ID" json:"-"`
	Appointments []Appointment `gorm:"foreignKey:DentistID;references:ID" json:"-"`
	Bills        []Bill        `gorm:"foreignKey:DentistID;references:ID" json:"-"`
}

func (Dentist) TableName() string {
	return "dentist"
}

// ClinicProfile is the per-tenant settings document driving receipt
// branding and legal identifiers. One row per dentist, read and written
// as a whole.
type ClinicProfile struct {
	DentistID      string    `gorm:"primaryKey;column:dentist_id" json:"dentist_id"`
	ClinicName     string    `gorm:"column:clinic_name" json:"clinicName"`
	RegNo          string    `gorm:"column:reg_no" json:"regNo"`
	GSTNo          string    `gorm:"column:gst_no" json:"gstNo"`
	OperatingHours string    `gorm:"column:operating_hours" json:"operatingHours"`
	LogoURL        string    `gorm:"column:logo_url" json:"logoUrl"`
	SignatureURL   string    `gorm:"column:signature_url" json:"signatureUrl"`
	Dentists       []string  `gorm:"column:dentists;serializer:json" json:"dentists"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ClinicProfile) TableName() string {
	return "clinic_profile"
}
