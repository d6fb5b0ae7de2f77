package receipt

import (
	"DentaBill/models"
	"bytes"
	"testing"
	"time"
)

func amount(v float64) *float64 { return &v }

func TestFormatINR(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{"zero", 0, "0.00"},
		{"under a thousand", 950, "950.00"},
		{"thousand", 1250.5, "1,250.50"},
		{"lakh", 123456.78, "1,23,456.78"},
		{"ten lakh", 1234567.89, "12,34,567.89"},
		{"crore", 12345678.9, "1,23,45,678.90"},
		{"negative", -1234.5, "-1,234.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatINR(tt.amount); got != tt.want {
				t.Errorf("FormatINR(%v) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestBuildRows(t *testing.T) {
	consultations := []models.Consultation{
		{Description: "Consultation", Amount: amount(500)},
		{Description: "Scaling", Amount: amount(1200.5)},
		{Description: "Follow-up", Amount: nil},
	}

	rows := BuildRows(consultations)
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}

	for i, row := range rows {
		if row.Index != i+1 {
			t.Errorf("Row %d has index %d", i, row.Index)
		}
		if row.Description != consultations[i].Description {
			t.Errorf("Row %d description = %q, want %q", i, row.Description, consultations[i].Description)
		}
	}

	if rows[1].Amount != "1,200.50" {
		t.Errorf("Row 1 amount = %q, want %q", rows[1].Amount, "1,200.50")
	}
	if rows[2].Amount != "0.00" {
		t.Errorf("Nil amount should render as 0.00, got %q", rows[2].Amount)
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name    string
		patient string
		want    string
	}{
		{"single name", "Asha", "Asha_bill.pdf"},
		{"full name", "Asha Rao", "Asha_Rao_bill.pdf"},
		{"padded name", "  Asha Rao ", "Asha_Rao_bill.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Filename(tt.patient); got != tt.want {
				t.Errorf("Filename(%q) = %q, want %q", tt.patient, got, tt.want)
			}
		})
	}
}

func TestRender(t *testing.T) {
	data := &Data{
		ClinicName:     "Smile Care Dental",
		Dentists:       []string{"Dr. Rao", "Dr. Iyer"},
		OperatingHours: "Mon-Sat 9am-7pm",
		RegNo:          "REG-42",
		GSTNo:          "GST-99",
		PatientName:    "Asha Rao",
		CreatedAt:      time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC),
		Consultations: []models.Consultation{
			{Description: "Root Canal", Amount: amount(4500)},
			{Description: "X-Ray", Amount: amount(300)},
		},
	}

	pdf, err := Render(data)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatal("Render produced empty output")
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("Render output is not a PDF document")
	}
}

func TestRenderEmptyProfile(t *testing.T) {
	data := &Data{
		PatientName: "Asha Rao",
		CreatedAt:   time.Now(),
		Consultations: []models.Consultation{
			{Description: "Consultation", Amount: amount(500)},
		},
	}

	pdf, err := Render(data)
	if err != nil {
		t.Fatalf("Render without profile failed: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatal("Render produced empty output")
	}
}

func TestDataTotal(t *testing.T) {
	data := &Data{
		Consultations: []models.Consultation{
			{Description: "a", Amount: amount(100.25)},
			{Description: "b", Amount: nil},
			{Description: "c", Amount: amount(49.75)},
		},
	}

	if got := data.Total(); got != 150 {
		t.Errorf("Total() = %v, want 150", got)
	}
}
