package models

import "testing"

func amount(v float64) *float64 { return &v }

func TestBillTotal(t *testing.T) {
	tests := []struct {
		name          string
		consultations []Consultation
		want          float64
	}{
		{
			name: "sums all amounts",
			consultations: []Consultation{
				{Description: "Consultation", Amount: amount(500)},
				{Description: "Scaling", Amount: amount(1200.5)},
			},
			want: 1700.5,
		},
		{
			name: "skips nil amounts",
			consultations: []Consultation{
				{Description: "Consultation", Amount: amount(500)},
				{Description: "X-Ray", Amount: nil},
			},
			want: 500,
		},
		{
			name:          "empty bill",
			consultations: nil,
			want:          0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bill := Bill{Consultations: tt.consultations}
			if got := bill.Total(); got != tt.want {
				t.Errorf("Total() = %v, want %v", got, tt.want)
			}
			// Repeated reads stay stable.
			if got := bill.Total(); got != tt.want {
				t.Errorf("Second Total() = %v, want %v", got, tt.want)
			}
		})
	}
}
