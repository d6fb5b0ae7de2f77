package utils

import (
	"DentaBill/models"
	"log"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Indian mobile numbers: 10 digits starting with 6-9, no country code.
var phoneRegex = regexp.MustCompile(`^[6-9]\d{9}$`)

// ValidatePhone reports whether the given string is a valid 10-digit
// Indian mobile number.
func ValidatePhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}

// ValidatePatientData validates a patient record before it is stored.
func ValidatePatientData(patient models.Patient) error {
	err := validation.ValidateStruct(&patient,
		validation.Field(&patient.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&patient.Phone, validation.Required, validation.Match(phoneRegex).Error("phone must be a 10-digit Indian mobile number")),
	)
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

// ValidateAppointmentData validates an appointment before it is stored.
func ValidateAppointmentData(appointment models.Appointment) error {
	err := validation.ValidateStruct(&appointment,
		validation.Field(&appointment.PatientName, validation.Required, validation.Length(1, 100)),
		validation.Field(&appointment.Type, validation.Required, validation.In(
			models.AppointmentConsultation,
			models.AppointmentCleaning,
			models.AppointmentEmergency,
			models.AppointmentFollowUp,
		)),
		validation.Field(&appointment.Start, validation.Required),
		validation.Field(&appointment.End, validation.Required),
	)
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

// ValidateBillData validates a bill's line items before it is stored.
func ValidateBillData(bill models.Bill) error {
	err := validation.ValidateStruct(&bill,
		validation.Field(&bill.PatientName, validation.Required, validation.Length(1, 100)),
		validation.Field(&bill.Consultations, validation.Required, validation.Each(validation.By(validateConsultation))),
	)
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

// ValidateDocumentData validates a patient document's metadata before the
// file is uploaded.
func ValidateDocumentData(doc models.PatientDocument) error {
	err := validation.ValidateStruct(&doc,
		validation.Field(&doc.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&doc.Type, validation.Required, validation.In(
			models.DocumentPrescription,
			models.DocumentXRay,
			models.DocumentInvoice,
			models.DocumentOther,
		)),
	)
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

func validateConsultation(value interface{}) error {
	consultation, _ := value.(models.Consultation)
	return validation.ValidateStruct(&consultation,
		validation.Field(&consultation.Description, validation.Required, validation.Length(1, 200)),
	)
}
