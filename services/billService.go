package services

import (
	"DentaBill/models"
	"DentaBill/receipt"
	"DentaBill/repositories"
	"DentaBill/sms"
	"DentaBill/tenant"
	"DentaBill/utils"
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

// ErrBillTooSmall is returned when no line item clears the minimum
// consultation amount.
var ErrBillTooSmall = errors.New("at least one consultation with an amount above 10 is required")

// MinConsultationAmount is the smallest amount a bill's leading consultation
// must exceed before the bill can be generated.
const MinConsultationAmount = 10.0

type BillService struct {
	billRepo    *repositories.BillRepository
	patientRepo *repositories.PatientRepository
	clinicRepo  *repositories.ClinicProfileRepository
	smsClient   *sms.Client
}

func NewBillService(
	billRepo *repositories.BillRepository,
	patientRepo *repositories.PatientRepository,
	clinicRepo *repositories.ClinicProfileRepository,
	smsClient *sms.Client,
) *BillService {
	return &BillService{
		billRepo:    billRepo,
		patientRepo: patientRepo,
		clinicRepo:  clinicRepo,
		smsClient:   smsClient,
	}
}

// CreateBillInput is the bill creation request. Phone is optional: when set
// the patient is registered (idempotently) before the bill is written and
// an SMS notification is attempted. Origin is the caller's base URL, used
// to build the public download link in the SMS body.
type CreateBillInput struct {
	PatientName   string
	Phone         string
	Consultations []models.Consultation
	Origin        string
}

// Create validates and persists a new bill for the session's clinic, then
// attempts the SMS notification. SMS failure never rolls the bill back; the
// returned smsSent flag tells the handler whether the notification went out.
func (s *BillService) Create(ctx context.Context, input CreateBillInput) (bill *models.Bill, smsSent bool, err error) {
	session, err := tenant.FromContext(ctx)
	if err != nil {
		return nil, false, err
	}

	bill = &models.Bill{
		DentistID:     session.DentistID,
		PatientName:   input.PatientName,
		Consultations: input.Consultations,
	}

	if err := utils.ValidateBillData(*bill); err != nil {
		return nil, false, fmt.Errorf("invalid bill data: %w", err)
	}
	if !hasBillableConsultation(input.Consultations) {
		return nil, false, ErrBillTooSmall
	}

	// Register the patient on the fly when the bill form carries a phone
	// number. The repository is idempotent, so billing an existing patient
	// just resolves their id.
	patient := &models.Patient{
		DentistID: session.DentistID,
		Name:      input.PatientName,
		Phone:     input.Phone,
	}
	if input.Phone != "" {
		if err := utils.ValidatePatientData(*patient); err != nil {
			return nil, false, fmt.Errorf("invalid patient data: %w", err)
		}
		if _, err := s.patientRepo.Create(ctx, patient); err != nil {
			return nil, false, fmt.Errorf("failed to register patient: %w", err)
		}
		bill.PatientID = patient.ID
		bill.PatientName = patient.Name
	}

	if err := s.billRepo.Create(ctx, bill); err != nil {
		return nil, false, err
	}

	smsSent = s.notify(ctx, bill, patient.Phone, input.Origin)
	return bill, smsSent, nil
}

// notify sends the bill-ready SMS. Best effort: every failure path logs and
// reports false, the saved bill is left untouched.
func (s *BillService) notify(ctx context.Context, bill *models.Bill, phone, origin string) bool {
	if !s.smsClient.IsEnabled() || phone == "" {
		return false
	}

	treatment := ""
	if len(bill.Consultations) > 0 {
		treatment = bill.Consultations[0].Description
	}
	downloadURL := fmt.Sprintf("%s/api/get-bill-pdf?id=%s", origin, bill.ID)
	body := sms.BillMessage(bill.PatientName, receipt.FormatINR(bill.Total()), treatment, downloadURL)

	sid, err := s.smsClient.SendBillSMS(ctx, sms.ToE164(phone), body)
	if err != nil {
		log.Printf("Failed to send bill SMS for %s: %v", bill.ID, err)
		return false
	}
	log.Printf("Bill SMS sent for %s (sid %s)", bill.ID, sid)
	return true
}

// lookupScope decides how a bill fetch is scoped: by the session's clinic
// when one is attached, across tenants for anonymous public links.
func lookupScope(ctx context.Context) (dentistID string, crossTenant bool, err error) {
	session, err := tenant.FromContext(ctx)
	if err != nil {
		if errors.Is(err, tenant.ErrNotAuthenticated) {
			return "", true, nil
		}
		return "", false, err
	}
	return session.DentistID, false, nil
}

// Get fetches a bill. With an authenticated session the lookup is scoped to
// the session's clinic; without one (public bill links) it falls back to the
// cross-tenant scan.
func (s *BillService) Get(ctx context.Context, id string) (*models.Bill, error) {
	dentistID, crossTenant, err := lookupScope(ctx)
	if err != nil {
		return nil, err
	}
	if crossTenant {
		return s.billRepo.FindAcrossTenants(ctx, id)
	}
	return s.billRepo.GetByID(ctx, dentistID, id)
}

func (s *BillService) GetAll(ctx context.Context) ([]models.Bill, error) {
	session, err := tenant.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.billRepo.GetAllForDentist(ctx, session.DentistID)
}

// GetByPatientID resolves the patient and returns their bills, matched by
// the name snapshot on each bill.
func (s *BillService) GetByPatientID(ctx context.Context, patientID string) ([]models.Bill, error) {
	session, err := tenant.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	patient, err := s.patientRepo.GetByID(ctx, session.DentistID, patientID)
	if err != nil {
		return nil, err
	}
	return s.billRepo.GetByPatientName(ctx, session.DentistID, patient.Name)
}

func (s *BillService) GetByPatientName(ctx context.Context, patientName string) ([]models.Bill, error) {
	session, err := tenant.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.billRepo.GetByPatientName(ctx, session.DentistID, patientName)
}

// GetAllBills returns every bill across all clinics (admin dashboard only).
func (s *BillService) GetAllBills(ctx context.Context) ([]models.Bill, error) {
	return s.billRepo.GetAllBills(ctx)
}

func (s *BillService) MarkPaid(ctx context.Context, id string) error {
	session, err := tenant.FromContext(ctx)
	if err != nil {
		return err
	}
	return s.billRepo.MarkPaid(ctx, session.DentistID, id)
}

// RenderPDF fetches the bill and its clinic's branding profile and renders
// the receipt. Returns the PDF bytes and the download filename.
func (s *BillService) RenderPDF(ctx context.Context, id string) ([]byte, string, error) {
	bill, err := s.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}

	data := &receipt.Data{
		PatientName:   bill.PatientName,
		CreatedAt:     bill.CreatedAt,
		Consultations: bill.Consultations,
	}

	profile, err := s.clinicRepo.Get(ctx, bill.DentistID)
	if err != nil {
		log.Printf("Failed to load clinic profile for %s: %v", bill.DentistID, err)
	}
	if profile != nil {
		data.ClinicName = profile.ClinicName
		data.Dentists = profile.Dentists
		data.OperatingHours = profile.OperatingHours
		data.RegNo = profile.RegNo
		data.GSTNo = profile.GSTNo
		data.LogoURL = profile.LogoURL
		data.SignatureURL = profile.SignatureURL
	}
	if data.CreatedAt.IsZero() {
		data.CreatedAt = time.Now()
	}

	pdf, err := receipt.Render(data)
	if err != nil {
		return nil, "", err
	}
	return pdf, receipt.Filename(bill.PatientName), nil
}

// hasBillableConsultation reports whether any line item clears the minimum
// amount.
func hasBillableConsultation(consultations []models.Consultation) bool {
	for _, c := range consultations {
		if c.Amount != nil && *c.Amount > MinConsultationAmount {
			return true
		}
	}
	return false
}
