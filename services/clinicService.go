package services

import (
	"DentaBill/models"
	"DentaBill/repositories"
	"DentaBill/storage"
	"DentaBill/tenant"
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ErrUnknownAssetType is returned for asset types other than logo and
// signature.
var ErrUnknownAssetType = errors.New("asset type must be logo or signature")

type ClinicService struct {
	repository *repositories.ClinicProfileRepository
	storage    *storage.Client
}

func NewClinicService(repository *repositories.ClinicProfileRepository, storage *storage.Client) *ClinicService {
	return &ClinicService{repository: repository, storage: storage}
}

// GetProfile returns the session clinic's profile, or nil when none has
// been saved yet.
func (s *ClinicService) GetProfile(ctx context.Context) (*models.ClinicProfile, error) {
	session, err := tenant.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repository.Get(ctx, session.DentistID)
}

// SaveProfile upserts the whole profile document for the session's clinic.
func (s *ClinicService) SaveProfile(ctx context.Context, profile *models.ClinicProfile) error {
	session, err := tenant.FromContext(ctx)
	if err != nil {
		return err
	}
	profile.DentistID = session.DentistID
	profile.UpdatedAt = time.Now()
	return s.repository.Upsert(ctx, profile)
}

// UploadAsset stores a logo or signature image and records its URL on the
// profile. Size bounds are enforced before anything is uploaded.
func (s *ClinicService) UploadAsset(ctx context.Context, assetType, filename, contentType string, body io.Reader, size int64) (string, error) {
	session, err := tenant.FromContext(ctx)
	if err != nil {
		return "", err
	}
	if assetType != "logo" && assetType != "signature" {
		return "", ErrUnknownAssetType
	}
	if err := storage.ValidateAssetSize(size); err != nil {
		return "", err
	}

	key := storage.AssetKey(session.DentistID, assetType, filename)
	url, err := s.storage.UploadAsset(ctx, key, contentType, body, size)
	if err != nil {
		return "", err
	}

	if err := s.repository.SetAssetURL(ctx, session.DentistID, assetType, url); err != nil {
		return "", fmt.Errorf("uploaded but failed to record %s url: %w", assetType, err)
	}
	return url, nil
}

// DeleteAsset clears the asset URL from the profile and removes the stored
// object when its key can be derived from the recorded URL.
func (s *ClinicService) DeleteAsset(ctx context.Context, assetType string) error {
	session, err := tenant.FromContext(ctx)
	if err != nil {
		return err
	}
	if assetType != "logo" && assetType != "signature" {
		return ErrUnknownAssetType
	}

	profile, err := s.repository.Get(ctx, session.DentistID)
	if err != nil {
		return err
	}
	if profile == nil {
		return nil
	}

	url := profile.LogoURL
	if assetType == "signature" {
		url = profile.SignatureURL
	}
	if url == "" {
		return nil
	}

	if s.storage.IsEnabled() {
		if key, ok := storage.KeyFromURL(url); ok {
			if err := s.storage.DeleteAsset(ctx, key); err != nil {
				return err
			}
		}
	}

	return s.repository.SetAssetURL(ctx, session.DentistID, assetType, "")
}
