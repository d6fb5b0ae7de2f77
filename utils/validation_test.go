package utils

import (
	"DentaBill/models"
	"testing"
)

func amount(v float64) *float64 { return &v }

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  bool
	}{
		{"valid starting 9", "9812345678", true},
		{"valid starting 6", "6000000000", true},
		{"starts with 5", "5812345678", false},
		{"too short", "981234567", false},
		{"too long", "98123456789", false},
		{"with country code", "+919812345678", false},
		{"letters", "981234567a", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidatePhone(tt.phone); got != tt.want {
				t.Errorf("ValidatePhone(%q) = %v, want %v", tt.phone, got, tt.want)
			}
		})
	}
}

func TestValidatePatientData(t *testing.T) {
	tests := []struct {
		name    string
		patient models.Patient
		wantErr bool
	}{
		{"valid", models.Patient{Name: "Asha Rao", Phone: "9812345678"}, false},
		{"missing name", models.Patient{Phone: "9812345678"}, true},
		{"missing phone", models.Patient{Name: "Asha Rao"}, true},
		{"bad phone", models.Patient{Name: "Asha Rao", Phone: "12345"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePatientData(tt.patient)
			if tt.wantErr && err == nil {
				t.Error("Expected error but got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Expected no error but got: %v", err)
			}
		})
	}
}

func TestValidateAppointmentData(t *testing.T) {
	valid := models.Appointment{
		PatientName: "Asha Rao",
		Type:        models.AppointmentConsultation,
		Start:       "2025-03-14T10:00:00Z",
		End:         "2025-03-14T10:30:00Z",
	}

	if err := ValidateAppointmentData(valid); err != nil {
		t.Errorf("Expected valid appointment, got: %v", err)
	}

	badType := valid
	badType.Type = "Surgery"
	if err := ValidateAppointmentData(badType); err == nil {
		t.Error("Expected error for unknown appointment type")
	}

	noStart := valid
	noStart.Start = ""
	if err := ValidateAppointmentData(noStart); err == nil {
		t.Error("Expected error for missing start time")
	}
}

func TestValidateBillData(t *testing.T) {
	valid := models.Bill{
		PatientName: "Asha Rao",
		Consultations: []models.Consultation{
			{Description: "Consultation", Amount: amount(500)},
		},
	}

	if err := ValidateBillData(valid); err != nil {
		t.Errorf("Expected valid bill, got: %v", err)
	}

	noItems := valid
	noItems.Consultations = nil
	if err := ValidateBillData(noItems); err == nil {
		t.Error("Expected error for bill without line items")
	}

	blankDescription := valid
	blankDescription.Consultations = []models.Consultation{{Description: "", Amount: amount(500)}}
	if err := ValidateBillData(blankDescription); err == nil {
		t.Error("Expected error for blank consultation description")
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Str0ng!pass", false},
		{"too short", "S1!a", true},
		{"no uppercase", "weak1pass!", true},
		{"no digit", "Weakpass!", true},
		{"no special", "Weak1pass", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePassword(tt.password)
			if tt.wantErr && err == nil {
				t.Error("Expected error but got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Expected no error but got: %v", err)
			}
		})
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Str0ng!pass")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	ok, err := CheckPassword("Str0ng!pass", hash)
	if err != nil {
		t.Fatalf("CheckPassword failed: %v", err)
	}
	if !ok {
		t.Error("Expected matching password to verify")
	}

	ok, err = CheckPassword("wrong-password", hash)
	if err != nil {
		t.Fatalf("CheckPassword failed: %v", err)
	}
	if ok {
		t.Error("Expected mismatched password to fail verification")
	}

	if _, err := CheckPassword("x", "not-a-hash"); err == nil {
		t.Error("Expected error for malformed hash")
	}
}
