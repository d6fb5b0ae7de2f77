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
	"gorm.io/gorm"
)

const (
	DentistCacheExpiry = 7 * 24 * time.Hour
)

type DentistRepository struct {
	cache *cache.Cache
}

func NewDentistRepository(cache *cache.Cache) *DentistRepository {
	return &DentistRepository{cache: cache}
}

func (r *DentistRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := database.DB.Model(&models.Dentist{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return count > 0, nil
}

func (r *DentistRepository) Create(ctx context.Context, dentist *models.Dentist) error {
	if err := database.DB.Create(dentist).Error; err != nil {
		return fmt.Errorf("failed to create dentist: %w", err)
	}
	return nil
}

func (r *DentistRepository) GetByEmail(ctx context.Context, email string) (*models.Dentist, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getDentistCacheKey(email)
	cachedDentist, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedDentist != "" {
		var dentist models.Dentist
		if err := json.Unmarshal([]byte(cachedDentist), &dentist); err == nil {
			return &dentist, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get dentist from cache: %v", err)
	}

	var dentist models.Dentist
	err = database.DB.Select("id, email, created_at").
		Where("email = ?", email).
		First(&dentist).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get dentist: %w", err)
	}

	dentistJSON, err := json.Marshal(dentist)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal dentist: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, dentistJSON, DentistCacheExpiry); err != nil {
		log.Printf("Failed to set dentist in cache: %v", err)
	}

	return &dentist, nil
}

func (r *DentistRepository) GetByID(ctx context.Context, id string) (*models.Dentist, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var dentist models.Dentist
	err := database.DB.Select("id, email, created_at").First(&dentist, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get dentist: %w", err)
	}
	return &dentist, nil
}

// GetCredentialsByEmail fetches the dentist including the password hash.
// Used only by the login path and never cached.
func (r *DentistRepository) GetCredentialsByEmail(ctx context.Context, email string) (*models.Dentist, error) {
	var dentist models.Dentist
	err := database.DB.Select("id, email, password, created_at").
		Where("email = ?", email).
		First(&dentist).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("invalid email or password")
		}
		return nil, fmt.Errorf("failed to get dentist credentials: %w", err)
	}
	return &dentist, nil
}

func (r *DentistRepository) UpdatePassword(ctx context.Context, id, hashedPassword string) error {
	result := database.DB.Model(&models.Dentist{}).Where("id = ?", id).Update("password", hashedPassword)
	if result.Error != nil {
		return fmt.Errorf("failed to update password: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("dentist not found")
	}
	return nil
}

func (r *DentistRepository) DeleteCache(ctx context.Context, identifier string) error {
	return r.cache.Delete(ctx, r.getDentistCacheKey(identifier))
}

func (r *DentistRepository) getDentistCacheKey(identifier string) string {
	return fmt.Sprintf("dentist_cache:%s", identifier)
}
