package repositories

import (
	"DentaBill/models"
	"testing"
)

func TestMarkPaidStatus(t *testing.T) {
	tests := []struct {
		name        string
		current     string
		wantNext    string
		wantChanged bool
	}{
		{"unpaid moves to paid", models.BillUnpaid, models.BillPaid, true},
		{"paid stays paid", models.BillPaid, models.BillPaid, false},
		{"empty status moves to paid", "", models.BillPaid, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, changed := markPaidStatus(tt.current)
			if next != tt.wantNext || changed != tt.wantChanged {
				t.Errorf("markPaidStatus(%q) = (%q, %v), want (%q, %v)",
					tt.current, next, changed, tt.wantNext, tt.wantChanged)
			}
		})
	}

	// Applying the transition twice lands in the same state as applying it
	// once.
	first, _ := markPaidStatus(models.BillUnpaid)
	second, changed := markPaidStatus(first)
	if second != first || changed {
		t.Errorf("second transition = (%q, %v), want (%q, false)", second, changed, first)
	}
}
