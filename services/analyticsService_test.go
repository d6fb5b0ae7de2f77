package services

import (
	"DentaBill/models"
	"testing"
	"time"
)

func amount(v float64) *float64 { return &v }

func testBills() []models.Bill {
	return []models.Bill{
		{
			PatientName: "Asha Rao",
			CreatedAt:   time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC),
			Consultations: []models.Consultation{
				{Description: "Consultation", Amount: amount(500)},
				{Description: "Scaling", Amount: amount(1500)},
			},
		},
		{
			PatientName: "Vikram Iyer",
			CreatedAt:   time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC),
			Consultations: []models.Consultation{
				{Description: "Root Canal", Amount: amount(4500)},
			},
		},
		{
			PatientName: "Asha Rao",
			CreatedAt:   time.Date(2025, time.February, 2, 0, 0, 0, 0, time.UTC),
			Consultations: []models.Consultation{
				{Description: "Follow-up", Amount: amount(300)},
				{Description: "X-Ray", Amount: nil},
			},
		},
	}
}

func TestTotalRevenue(t *testing.T) {
	if got := TotalRevenue(testBills()); got != 6800 {
		t.Errorf("TotalRevenue = %v, want 6800", got)
	}

	if got := TotalRevenue(nil); got != 0 {
		t.Errorf("TotalRevenue(nil) = %v, want 0", got)
	}
}

func TestMonthlyRevenue(t *testing.T) {
	byMonth := MonthlyRevenue(testBills())

	if len(byMonth) != 2 {
		t.Fatalf("Expected 2 months, got %d: %v", len(byMonth), byMonth)
	}
	if byMonth["Jan"] != 6500 {
		t.Errorf("Jan = %v, want 6500", byMonth["Jan"])
	}
	if byMonth["Feb"] != 300 {
		t.Errorf("Feb = %v, want 300", byMonth["Feb"])
	}
}

func TestRevenuePerPatient(t *testing.T) {
	byPatient := RevenuePerPatient(testBills())

	if len(byPatient) != 2 {
		t.Fatalf("Expected 2 patients, got %d: %v", len(byPatient), byPatient)
	}
	if byPatient["Asha Rao"] != 2300 {
		t.Errorf("Asha Rao = %v, want 2300", byPatient["Asha Rao"])
	}
	if byPatient["Vikram Iyer"] != 4500 {
		t.Errorf("Vikram Iyer = %v, want 4500", byPatient["Vikram Iyer"])
	}
}
