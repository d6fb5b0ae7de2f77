package services

import (
	"DentaBill/models"
	"DentaBill/repositories"
	"DentaBill/storage"
	"DentaBill/tenant"
	"DentaBill/utils"
	"context"
	"fmt"
	"io"
	"log"
	"time"
)

type PatientService struct {
	repository      *repositories.PatientRepository
	appointmentRepo *repositories.AppointmentRepository
	billRepo        *repositories.BillRepository
	storage         *storage.Client
}

func NewPatientService(
	repository *repositories.PatientRepository,
	appointmentRepo *repositories.AppointmentRepository,
	billRepo *repositories.BillRepository,
	storage *storage.Client,
) *PatientService {
	return &PatientService{
		repository:      repository,
		appointmentRepo: appointmentRepo,
		billRepo:        billRepo,
		storage:         storage,
	}
}

// Add validates and stores a patient for the session's clinic. When the
// patient already exists (normalized name or phone match) the existing
// record is returned with existing=true instead of an error.
func (s *PatientService) Add(ctx context.Context, patient *models.Patient) (existing bool, err error) {
	session, err := tenant.FromContext(ctx)
	if err != nil {
		return false, err
	}
	patient.DentistID = session.DentistID

	if err := utils.ValidatePatientData(*patient); err != nil {
		return false, fmt.Errorf("invalid patient data: %w", err)
	}

	return s.repository.Create(ctx, patient)
}

func (s *PatientService) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	session, err := tenant.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repository.GetByID(ctx, session.DentistID, id)
}

func (s *PatientService) GetAll(ctx context.Context) ([]models.Patient, error) {
	session, err := tenant.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repository.GetAll(ctx, session.DentistID)
}

func (s *PatientService) Update(ctx context.Context, patient *models.Patient) error {
	session, err := tenant.FromContext(ctx)
	if err != nil {
		return err
	}
	patient.DentistID = session.DentistID

	if err := utils.ValidatePatientData(*patient); err != nil {
		return fmt.Errorf("invalid patient data: %w", err)
	}

	return s.repository.Update(ctx, patient)
}

// Delete removes the patient and flushes the tenant's cached appointment
// and bill listings, which embed the patient's name. Flush failures are
// logged; the caches self-heal on expiry.
func (s *PatientService) Delete(ctx context.Context, id string) error {
	session, err := tenant.FromContext(ctx)
	if err != nil {
		return err
	}
	if err := s.repository.Delete(ctx, session.DentistID, id); err != nil {
		return err
	}

	if err := s.appointmentRepo.DeleteAllCache(ctx, session.DentistID); err != nil {
		log.Printf("Failed to flush appointment cache for %s: %v", session.DentistID, err)
	}
	if err := s.billRepo.DeleteAllCache(ctx, session.DentistID); err != nil {
		log.Printf("Failed to flush bill cache for %s: %v", session.DentistID, err)
	}
	return nil
}

// UploadDocument stores one file for the patient and appends its metadata
// to the record. The stored entry carries the user-given document name, its
// type, the public URL and the upload timestamp.
func (s *PatientService) UploadDocument(ctx context.Context, patientID, docName, docType, filename, contentType string, body io.Reader, size int64) (*models.PatientDocument, error) {
	session, err := tenant.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	doc := models.PatientDocument{Name: docName, Type: docType}
	if err := utils.ValidateDocumentData(doc); err != nil {
		return nil, fmt.Errorf("invalid document data: %w", err)
	}
	if err := storage.ValidateDocumentSize(size); err != nil {
		return nil, err
	}

	key := storage.DocumentKey(session.DentistID, patientID, filename)
	url, err := s.storage.UploadAsset(ctx, key, contentType, body, size)
	if err != nil {
		return nil, err
	}

	doc.URL = url
	doc.UploadedAt = time.Now()
	if err := s.repository.AppendDocument(ctx, session.DentistID, patientID, doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// GetDocuments lists the patient's uploaded documents.
func (s *PatientService) GetDocuments(ctx context.Context, patientID string) ([]models.PatientDocument, error) {
	session, err := tenant.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	patient, err := s.repository.GetByID(ctx, session.DentistID, patientID)
	if err != nil {
		return nil, err
	}
	if patient.Documents == nil {
		return []models.PatientDocument{}, nil
	}
	return patient.Documents, nil
}
