package repositories

import (
	"DentaBill/cache"
	"DentaBill/database"
	"DentaBill/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PatientCacheExpiry = 7 * 24 * time.Hour
)

// ErrPatientNotFound is returned when a patient ID does not exist within
// the tenant's scope.
var ErrPatientNotFound = errors.New("patient not found")

type PatientRepository struct {
	cache *cache.Cache
}

func NewPatientRepository(cache *cache.Cache) *PatientRepository {
	return &PatientRepository{cache: cache}
}

// NormalizeName is the comparison form used for the per-tenant uniqueness
// scan: trimmed and case-folded.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// matchesIdentity reports whether an existing record and a new entry refer
// to the same patient: normalized-name match, or exact phone match when a
// phone was supplied.
func matchesIdentity(existing models.Patient, name, phone string) bool {
	return NormalizeName(existing.Name) == NormalizeName(name) ||
		(phone != "" && existing.Phone == phone)
}

// Create adds a patient to the tenant, enforcing that no two patients share
// the same normalized name or phone. When a match is found the existing
// record's ID is written back into patient and existing=true is returned;
// the insert is idempotent by identity, never a hard failure.
func (r *PatientRepository) Create(ctx context.Context, patient *models.Patient) (existing bool, err error) {
	patient.Name = strings.TrimSpace(patient.Name)
	patient.Phone = strings.TrimSpace(patient.Phone)

	lockKey := fmt.Sprintf("patient_lock:%s_%s", patient.DentistID, NormalizeName(patient.Name))
	lockValue := uuid.New().String()
	maxRetries := 3
	retryDelay := 2 * time.Second
	var locked bool
	for i := 0; i < maxRetries; i++ {
		locked, err = database.NewLock(ctx, lockKey, lockValue, 10*time.Second)
		if err == nil && locked {
			break
		}
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}
	if !locked {
		return false, fmt.Errorf("failed to acquire lock after retries: %w", err)
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release lock: %v", err)
		}
	}()

	// Uniqueness scan over the tenant's patients. The normalized-name
	// comparison cannot be pushed into an index, so this stays a scan.
	var candidates []models.Patient
	if err := database.DB.Where("dentist_id = ?", patient.DentistID).Find(&candidates).Error; err != nil {
		return false, fmt.Errorf("failed to scan existing patients: %w", err)
	}
	for _, c := range candidates {
		if matchesIdentity(c, patient.Name, patient.Phone) {
			patient.ID = c.ID
			patient.Name = c.Name
			patient.CreatedAt = c.CreatedAt
			return true, nil
		}
	}

	patient.ID = uuid.New().String()
	if err := database.DB.Create(patient).Error; err != nil {
		return false, fmt.Errorf("failed to create patient: %w", err)
	}

	return false, r.cache.DeleteAll(ctx, r.getTenantPatientsCacheKey(patient.DentistID))
}

// GetByID fetches one patient within the tenant's scope.
func (r *PatientRepository) GetByID(ctx context.Context, dentistID, id string) (*models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var patient models.Patient
	err := database.DB.First(&patient, "id = ? AND dentist_id = ?", id, dentistID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}

// GetAll returns the tenant's patients, newest first.
func (r *PatientRepository) GetAll(ctx context.Context, dentistID string) ([]models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getTenantPatientsCacheKey(dentistID)
	cachedPatients, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedPatients != "" {
		var patients []models.Patient
		if err := json.Unmarshal([]byte(cachedPatients), &patients); err == nil {
			return patients, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get patients from cache: %v", err)
	}

	var patients []models.Patient
	err = database.DB.
		Where("dentist_id = ?", dentistID).
		Order("created_at DESC").
		Find(&patients).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all patients: %w", err)
	}

	patientsJSON, err := json.Marshal(patients)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal patients: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, patientsJSON, PatientCacheExpiry); err != nil {
		log.Printf("Failed to set patients in cache: %v", err)
	}

	return patients, nil
}

// Update overwrites the patient's mutable fields within the tenant's scope.
func (r *PatientRepository) Update(ctx context.Context, patient *models.Patient) error {
	lockKey := fmt.Sprintf("patient_lock:%s", patient.ID)
	lockValue := uuid.New().String()
	maxRetries := 3
	retryDelay := 2 * time.Second
	var locked bool
	var err error
	for i := 0; i < maxRetries; i++ {
		locked, err = database.NewLock(ctx, lockKey, lockValue, 10*time.Second)
		if err == nil && locked {
			break
		}
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}
	if !locked {
		return fmt.Errorf("failed to acquire lock after retries: %w", err)
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release lock: %v", err)
		}
	}()

	result := database.DB.Model(&models.Patient{}).
		Where("id = ? AND dentist_id = ?", patient.ID, patient.DentistID).
		Updates(map[string]interface{}{
			"name":  strings.TrimSpace(patient.Name),
			"phone": strings.TrimSpace(patient.Phone),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update patient: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPatientNotFound
	}

	return r.cache.DeleteAll(ctx, r.getTenantPatientsCacheKey(patient.DentistID))
}

// AppendDocument appends one uploaded document to the patient's record
// within the tenant's scope.
func (r *PatientRepository) AppendDocument(ctx context.Context, dentistID, id string, doc models.PatientDocument) error {
	lockKey := fmt.Sprintf("patient_lock:%s", id)
	lockValue := uuid.New().String()
	maxRetries := 3
	retryDelay := 2 * time.Second
	var locked bool
	var err error
	for i := 0; i < maxRetries; i++ {
		locked, err = database.NewLock(ctx, lockKey, lockValue, 10*time.Second)
		if err == nil && locked {
			break
		}
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}
	if !locked {
		return fmt.Errorf("failed to acquire lock after retries: %w", err)
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release lock: %v", err)
		}
	}()

	patient, err := r.GetByID(ctx, dentistID, id)
	if err != nil {
		return err
	}

	patient.Documents = append(patient.Documents, doc)
	result := database.DB.Model(&models.Patient{}).
		Where("id = ? AND dentist_id = ?", id, dentistID).
		Updates(models.Patient{Documents: patient.Documents})
	if result.Error != nil {
		return fmt.Errorf("failed to append document: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPatientNotFound
	}

	return r.cache.DeleteAll(ctx, r.getTenantPatientsCacheKey(dentistID))
}

// Delete removes the patient document. Bills keep their denormalized
// patient-name snapshot and are not touched.
func (r *PatientRepository) Delete(ctx context.Context, dentistID, id string) error {
	lockKey := fmt.Sprintf("patient_lock:%s", id)
	lockValue := uuid.New().String()
	maxRetries := 3
	retryDelay := 2 * time.Second
	var locked bool
	var err error
	for i := 0; i < maxRetries; i++ {
		locked, err = database.NewLock(ctx, lockKey, lockValue, 10*time.Second)
		if err == nil && locked {
			break
		}
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}
	if !locked {
		return fmt.Errorf("failed to acquire lock after retries: %w", err)
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release lock: %v", err)
		}
	}()

	err = database.DB.Delete(&models.Patient{}, "id = ? AND dentist_id = ?", id, dentistID).Error
	if err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}

	return r.cache.DeleteAll(ctx, r.getTenantPatientsCacheKey(dentistID))
}

func (r *PatientRepository) getTenantPatientsCacheKey(dentistID string) string {
	return fmt.Sprintf("patients_cache:%s", dentistID)
}
