package services

import (
	"DentaBill/models"
	"DentaBill/tenant"
	"context"
	"testing"
)

func TestHasBillableConsultation(t *testing.T) {
	tests := []struct {
		name          string
		consultations []models.Consultation
		want          bool
	}{
		{
			name: "one item above the minimum",
			consultations: []models.Consultation{
				{Description: "Consultation", Amount: amount(500)},
			},
			want: true,
		},
		{
			name: "all items at or below the minimum",
			consultations: []models.Consultation{
				{Description: "a", Amount: amount(10)},
				{Description: "b", Amount: amount(5)},
			},
			want: false,
		},
		{
			name: "mixed items",
			consultations: []models.Consultation{
				{Description: "a", Amount: amount(2)},
				{Description: "b", Amount: amount(11)},
			},
			want: true,
		},
		{
			name: "nil amounts only",
			consultations: []models.Consultation{
				{Description: "a", Amount: nil},
			},
			want: false,
		},
		{
			name:          "no items",
			consultations: nil,
			want:          false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hasBillableConsultation(tt.consultations); got != tt.want {
				t.Errorf("hasBillableConsultation = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLookupScope(t *testing.T) {
	t.Run("authenticated session scopes to its clinic", func(t *testing.T) {
		ctx := tenant.NewContext(context.Background(), tenant.Session{
			DentistID:     "d-1",
			Authenticated: true,
		})
		dentistID, crossTenant, err := lookupScope(ctx)
		if err != nil {
			t.Fatalf("lookupScope() error = %v", err)
		}
		if crossTenant {
			t.Error("lookupScope() crossTenant = true, want false")
		}
		if dentistID != "d-1" {
			t.Errorf("lookupScope() dentistID = %q, want %q", dentistID, "d-1")
		}
	})

	t.Run("anonymous context routes to the cross-tenant scan", func(t *testing.T) {
		dentistID, crossTenant, err := lookupScope(context.Background())
		if err != nil {
			t.Fatalf("lookupScope() error = %v", err)
		}
		if !crossTenant {
			t.Error("lookupScope() crossTenant = false, want true")
		}
		if dentistID != "" {
			t.Errorf("lookupScope() dentistID = %q, want empty", dentistID)
		}
	})
}
