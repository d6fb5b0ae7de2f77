package repositories

import (
	"DentaBill/models"
	"testing"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "Asha Rao", "asha rao"},
		{"trims", "  Asha Rao  ", "asha rao"},
		{"already normalized", "asha rao", "asha rao"},
		{"mixed case and padding", " ASHA rao ", "asha rao"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeName(tt.in); got != tt.want {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMatchesIdentity(t *testing.T) {
	existing := models.Patient{ID: "p-1", Name: "Asha Rao", Phone: "9812345678"}

	tests := []struct {
		name  string
		entry models.Patient
		want  bool
	}{
		{"same name different case", models.Patient{Name: " ASHA rao "}, true},
		{"same phone different name", models.Patient{Name: "A. Rao", Phone: "9812345678"}, true},
		{"same name and phone", models.Patient{Name: "Asha Rao", Phone: "9812345678"}, true},
		{"different name no phone", models.Patient{Name: "Ravi Kumar"}, false},
		{"different name different phone", models.Patient{Name: "Ravi Kumar", Phone: "9898989898"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchesIdentity(existing, tt.entry.Name, tt.entry.Phone); got != tt.want {
				t.Errorf("matchesIdentity(%q, %q) = %v, want %v", tt.entry.Name, tt.entry.Phone, got, tt.want)
			}
		})
	}

	// An empty submitted phone never matches, even against a record that
	// also has no phone.
	noPhone := models.Patient{ID: "p-2", Name: "Ravi Kumar", Phone: ""}
	if matchesIdentity(noPhone, "Someone Else", "") {
		t.Error("empty phone must not match an empty stored phone")
	}
}
