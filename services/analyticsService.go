package services

import (
	"DentaBill/models"
	"DentaBill/repositories"
	"DentaBill/tenant"
	"context"
)

type AnalyticsService struct {
	billRepo *repositories.BillRepository
}

func NewAnalyticsService(billRepo *repositories.BillRepository) *AnalyticsService {
	return &AnalyticsService{billRepo: billRepo}
}

// RevenueReport is the full analytics payload for one clinic. Everything is
// recomputed from the bill list on each request.
type RevenueReport struct {
	TotalRevenue      float64            `json:"totalRevenue"`
	MonthlyRevenue    map[string]float64 `json:"monthlyRevenue"`
	RevenuePerPatient map[string]float64 `json:"revenuePerPatient"`
	BillCount         int                `json:"billCount"`
}

// Revenue builds the report for the session's clinic.
func (s *AnalyticsService) Revenue(ctx context.Context) (*RevenueReport, error) {
	session, err := tenant.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	bills, err := s.billRepo.GetAllForDentist(ctx, session.DentistID)
	if err != nil {
		return nil, err
	}

	return &RevenueReport{
		TotalRevenue:      TotalRevenue(bills),
		MonthlyRevenue:    MonthlyRevenue(bills),
		RevenuePerPatient: RevenuePerPatient(bills),
		BillCount:         len(bills),
	}, nil
}

// TotalRevenue sums every bill's total.
func TotalRevenue(bills []models.Bill) float64 {
	var total float64
	for i := range bills {
		total += bills[i].Total()
	}
	return total
}

// MonthlyRevenue folds bill totals by the short month name of creation
// (Jan, Feb, ...).
func MonthlyRevenue(bills []models.Bill) map[string]float64 {
	byMonth := make(map[string]float64)
	for i := range bills {
		month := bills[i].CreatedAt.Format("Jan")
		byMonth[month] += bills[i].Total()
	}
	return byMonth
}

// RevenuePerPatient folds bill totals by the patient-name snapshot on each
// bill.
func RevenuePerPatient(bills []models.Bill) map[string]float64 {
	byPatient := make(map[string]float64)
	for i := range bills {
		byPatient[bills[i].PatientName] += bills[i].Total()
	}
	return byPatient
}
