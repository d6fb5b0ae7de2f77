package utils

import "testing"

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("SYMMETRIC_KEY", "0123456789abcdef0123456789abcdef")

	token, err := GenerateAccessToken("d-1", RoleDentist)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.DentistID != "d-1" {
		t.Errorf("DentistID = %q, want %q", claims.DentistID, "d-1")
	}
	if claims.Role != RoleDentist {
		t.Errorf("Role = %q, want %q", claims.Role, RoleDentist)
	}
}

func TestValidateTokenRole(t *testing.T) {
	t.Setenv("SYMMETRIC_KEY", "0123456789abcdef0123456789abcdef")

	token, err := GenerateAccessToken("d-1", RoleDentist)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, err := ValidateToken(token, RoleDentist); err != nil {
		t.Errorf("Expected dentist role to validate, got: %v", err)
	}
	if _, err := ValidateToken(token, RoleAdmin); err == nil {
		t.Error("Expected role mismatch to fail validation")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	t.Setenv("SYMMETRIC_KEY", "0123456789abcdef0123456789abcdef")

	if _, err := ValidateToken("v2.local.not-a-real-token"); err == nil {
		t.Error("Expected malformed token to fail validation")
	}
}
