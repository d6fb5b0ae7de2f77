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
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AppointmentCacheExpiry = 7 * 24 * time.Hour
)

// ErrAppointmentNotFound is returned when an appointment ID does not exist
// within the tenant's scope.
var ErrAppointmentNotFound = errors.New("appointment not found")

type AppointmentRepository struct {
	cache *cache.Cache
}

func NewAppointmentRepository(cache *cache.Cache) *AppointmentRepository {
	return &AppointmentRepository{cache: cache}
}

func (r *AppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	appointment.ID = uuid.New().String()

	lockKey := fmt.Sprintf("appointment_lock:%s", appointment.ID)
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

	if err := database.DB.Create(appointment).Error; err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}

	return r.cache.DeleteAll(ctx, r.getTenantAppointmentsCacheKey(appointment.DentistID))
}

func (r *AppointmentRepository) GetByID(ctx context.Context, dentistID, id string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appointment models.Appointment
	err := database.DB.First(&appointment, "id = ? AND dentist_id = ?", id, dentistID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

// GetAll returns the tenant's appointments ordered by start time. The
// backend does not guarantee creation order; callers sort further as
// needed.
func (r *AppointmentRepository) GetAll(ctx context.Context, dentistID string) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getTenantAppointmentsCacheKey(dentistID)
	cachedAppointments, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedAppointments != "" {
		var appointments []models.Appointment
		if err := json.Unmarshal([]byte(cachedAppointments), &appointments); err == nil {
			return appointments, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get appointments from cache: %v", err)
	}

	var appointments []models.Appointment
	err = database.DB.
		Where("dentist_id = ?", dentistID).
		Order("start_at ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all appointments: %w", err)
	}

	appointmentsJSON, err := json.Marshal(appointments)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal appointments: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, appointmentsJSON, AppointmentCacheExpiry); err != nil {
		log.Printf("Failed to set appointments in cache: %v", err)
	}

	return appointments, nil
}

func (r *AppointmentRepository) Update(ctx context.Context, appointment *models.Appointment) error {
	lockKey := fmt.Sprintf("appointment_lock:%s", appointment.ID)
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

	result := database.DB.Model(&models.Appointment{}).
		Where("id = ? AND dentist_id = ?", appointment.ID, appointment.DentistID).
		Updates(map[string]interface{}{
			"patient_name": appointment.PatientName,
			"type":         appointment.Type,
			"start_at":     appointment.Start,
			"end_at":       appointment.End,
			"description":  appointment.Description,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update appointment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return r.cache.DeleteAll(ctx, r.getTenantAppointmentsCacheKey(appointment.DentistID))
}

func (r *AppointmentRepository) Delete(ctx context.Context, dentistID, id string) error {
	err := database.DB.Delete(&models.Appointment{}, "id = ? AND dentist_id = ?", id, dentistID).Error
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	return r.cache.DeleteAll(ctx, r.getTenantAppointmentsCacheKey(dentistID))
}

func (r *AppointmentRepository) DeleteAllCache(ctx context.Context, dentistID string) error {
	return r.cache.DeleteAll(ctx, r.getTenantAppointmentsCacheKey(dentistID))
}

func (r *AppointmentRepository) getTenantAppointmentsCacheKey(dentistID string) string {
	return fmt.Sprintf("appointments_cache:%s", dentistID)
}
