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
	"gorm.io/gorm/clause"
)

const (
	ClinicProfileCacheExpiry = 7 * 24 * time.Hour
)

type ClinicProfileRepository struct {
	cache *cache.Cache
}

func NewClinicProfileRepository(cache *cache.Cache) *ClinicProfileRepository {
	return &ClinicProfileRepository{cache: cache}
}

// Get returns the tenant's profile, or nil when none has been saved yet;
// receipts fall back to placeholder branding in that case.
func (r *ClinicProfileRepository) Get(ctx context.Context, dentistID string) (*models.ClinicProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getProfileCacheKey(dentistID)
	cachedProfile, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedProfile != "" {
		var profile models.ClinicProfile
		if err := json.Unmarshal([]byte(cachedProfile), &profile); err == nil {
			return &profile, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get clinic profile from cache: %v", err)
	}

	var profile models.ClinicProfile
	err = database.DB.First(&profile, "dentist_id = ?", dentistID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get clinic profile: %w", err)
	}

	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal clinic profile: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, profileJSON, ClinicProfileCacheExpiry); err != nil {
		log.Printf("Failed to set clinic profile in cache: %v", err)
	}

	return &profile, nil
}

// Upsert writes the whole profile document for the tenant.
func (r *ClinicProfileRepository) Upsert(ctx context.Context, profile *models.ClinicProfile) error {
	err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "dentist_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"clinic_name", "reg_no", "gst_no", "operating_hours", "logo_url", "signature_url", "dentists"}),
	}).Create(profile).Error
	if err != nil {
		return fmt.Errorf("failed to upsert clinic profile: %w", err)
	}
	return r.cache.Delete(ctx, r.getProfileCacheKey(profile.DentistID))
}

// SetAssetURL updates just the logo or signature URL, merge-style, creating
// the profile row if the tenant has not saved one yet.
func (r *ClinicProfileRepository) SetAssetURL(ctx context.Context, dentistID, assetType, url string) error {
	column := "logo_url"
	if assetType == "signature" {
		column = "signature_url"
	}

	err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "dentist_id"}},
		DoUpdates: clause.AssignmentColumns([]string{column}),
	}).Create(&models.ClinicProfile{
		DentistID:    dentistID,
		LogoURL:      pick(assetType == "logo", url),
		SignatureURL: pick(assetType == "signature", url),
	}).Error
	if err != nil {
		return fmt.Errorf("failed to set %s url: %w", assetType, err)
	}
	return r.cache.Delete(ctx, r.getProfileCacheKey(dentistID))
}

func pick(cond bool, url string) string {
	if cond {
		return url
	}
	return ""
}

func (r *ClinicProfileRepository) getProfileCacheKey(dentistID string) string {
	return fmt.Sprintf("clinic_profile_cache:%s", dentistID)
}
