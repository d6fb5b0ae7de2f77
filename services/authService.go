package services

import (
	"DentaBill/cache"
	"DentaBill/config"
	"DentaBill/models"
	"DentaBill/repositories"
	"DentaBill/utils"
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
)

type AuthService struct {
	dentistRepo *repositories.DentistRepository
	clinicRepo  *repositories.ClinicProfileRepository
	cache       *cache.Cache
	adminCfg    config.AdminConfig
	smtpCfg     config.SMTPConfig
}

func NewAuthService(
	dentistRepo *repositories.DentistRepository,
	clinicRepo *repositories.ClinicProfileRepository,
	cache *cache.Cache,
	adminCfg config.AdminConfig,
	smtpCfg config.SMTPConfig,
) *AuthService {
	return &AuthService{
		dentistRepo: dentistRepo,
		clinicRepo:  clinicRepo,
		cache:       cache,
		adminCfg:    adminCfg,
		smtpCfg:     smtpCfg,
	}
}

// SignUp validates and registers a new dentist, creating the clinic's empty
// profile row alongside the account.
func (s *AuthService) SignUp(ctx context.Context, dentist *models.Dentist) error {
	if err := utils.ValidateDentistData(*dentist); err != nil {
		return fmt.Errorf("invalid signup data: %w", err)
	}

	if exists, err := s.dentistRepo.EmailExists(ctx, dentist.Email); err != nil {
		return err
	} else if exists {
		return errors.New("email already registered")
	}

	hashedPassword, err := utils.HashPassword(dentist.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	dentist.ID = uuid.New().String()
	dentist.Password = hashedPassword

	if err := s.dentistRepo.Create(ctx, dentist); err != nil {
		return err
	}

	// Seed an empty clinic profile so the receipt renderer and settings
	// page have a row to merge into.
	if err := s.clinicRepo.Upsert(ctx, &models.ClinicProfile{DentistID: dentist.ID}); err != nil {
		log.Printf("Failed to seed clinic profile for %s: %v", dentist.ID, err)
	}

	return nil
}

// Login verifies the credentials and issues access and refresh tokens.
func (s *AuthService) Login(ctx context.Context, email, password string) (dentist *models.Dentist, accessToken, refreshToken string, err error) {
	dentist, err = s.dentistRepo.GetCredentialsByEmail(ctx, email)
	if err != nil {
		return nil, "", "", err
	}

	ok, err := utils.CheckPassword(password, dentist.Password)
	if err != nil || !ok {
		return nil, "", "", errors.New("invalid email or password")
	}

	accessToken, refreshToken, err = utils.GenerateTokens(dentist.ID, utils.RoleDentist)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to generate tokens: %w", err)
	}

	dentist.Password = ""
	return dentist, accessToken, refreshToken, nil
}

// Refresh validates a refresh token and issues a fresh access token.
func (s *AuthService) Refresh(refreshToken string) (string, error) {
	claims, err := utils.ValidateToken(refreshToken, utils.RoleDentist)
	if err != nil {
		return "", err
	}
	return utils.GenerateAccessToken(claims.DentistID, claims.Role)
}

// RequestPasswordReset generates a 6-digit code, stores it in Redis for 15
// minutes and emails it. Unknown emails fail silently so the endpoint does
// not leak which accounts exist.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	dentist, err := s.dentistRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if dentist == nil {
		log.Printf("Password reset requested for unknown email")
		return nil
	}

	code, err := utils.GenerateResetCode()
	if err != nil {
		return err
	}
	if err := utils.SetResetCode(ctx, s.cache, email, code); err != nil {
		return fmt.Errorf("failed to store reset code: %w", err)
	}

	if !s.smtpCfg.Enabled() {
		return errors.New("password reset email is not configured")
	}
	return utils.SendResetCodeEmail(s.smtpCfg, email, code)
}

// ResetPassword validates the reset code and sets the new password.
func (s *AuthService) ResetPassword(ctx context.Context, email, resetCode, newPassword string) error {
	if err := utils.ValidatePasswordReset(resetCode, newPassword); err != nil {
		return err
	}

	stored, err := utils.GetResetCode(ctx, s.cache, email)
	if err != nil {
		return fmt.Errorf("failed to read reset code: %w", err)
	}
	if stored == nil || *stored != resetCode {
		return utils.ErrInvalidResetCode
	}

	dentist, err := s.dentistRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if dentist == nil {
		return utils.ErrInvalidResetCode
	}

	hashedPassword, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.dentistRepo.UpdatePassword(ctx, dentist.ID, hashedPassword); err != nil {
		return err
	}

	if err := utils.DeleteResetCode(ctx, s.cache, email); err != nil {
		log.Printf("Failed to delete reset code: %v", err)
	}
	return s.dentistRepo.DeleteCache(ctx, email)
}

// AuthenticateAdmin compares the submitted credentials against the
// configured admin account using constant-time comparison. With no admin
// account configured every attempt fails.
func (s *AuthService) AuthenticateAdmin(username, password string) bool {
	if s.adminCfg.Username == "" || s.adminCfg.Password == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.adminCfg.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.adminCfg.Password)) == 1
	return userOK && passOK
}
