package storage

import (
	"DentaBill/config"
	"testing"
)

func TestAssetKey(t *testing.T) {
	got := AssetKey("d-1", "logo", "clinic.png")
	want := "dentists/d-1/logo/clinic.png"
	if got != want {
		t.Errorf("AssetKey = %q, want %q", got, want)
	}
}

func TestDocumentKey(t *testing.T) {
	got := DocumentKey("d-1", "p-1", "xray.pdf")
	want := "dentists/d-1/patients/p-1/documents/xray.pdf"
	if got != want {
		t.Errorf("DocumentKey = %q, want %q", got, want)
	}
}

func TestKeyFromURL(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		want   string
		wantOK bool
	}{
		{
			name:   "stored asset url",
			url:    "https://s3.example.com/bucket/dentists/d-1/logo/clinic.png",
			want:   "dentists/d-1/logo/clinic.png",
			wantOK: true,
		},
		{
			name:   "foreign url",
			url:    "https://cdn.example.com/images/clinic.png",
			wantOK: false,
		},
		{
			name:   "empty",
			url:    "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := KeyFromURL(tt.url)
			if ok != tt.wantOK {
				t.Fatalf("KeyFromURL(%q) ok = %v, want %v", tt.url, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("KeyFromURL(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestValidateAssetSize(t *testing.T) {
	tests := []struct {
		name    string
		size    int64
		wantErr bool
	}{
		{"below minimum", 50 * 1024, true},
		{"at minimum", MinAssetSize, false},
		{"typical image", 500 * 1024, false},
		{"at maximum", MaxAssetSize, false},
		{"above maximum", MaxAssetSize + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAssetSize(tt.size)
			if tt.wantErr && err == nil {
				t.Error("Expected error but got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Expected no error but got: %v", err)
			}
		})
	}
}

func TestValidateDocumentSize(t *testing.T) {
	tests := []struct {
		name    string
		size    int64
		wantErr bool
	}{
		{"empty file", 0, true},
		{"small scan", 10 * 1024, false},
		{"at maximum", MaxAssetSize, false},
		{"above maximum", MaxAssetSize + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocumentSize(tt.size)
			if tt.wantErr && err == nil {
				t.Error("Expected error but got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Expected no error but got: %v", err)
			}
		})
	}
}

func TestDisabledClient(t *testing.T) {
	client, err := NewFromConfig(config.S3Config{})
	if err != nil {
		t.Fatalf("NewFromConfig failed: %v", err)
	}
	if client.IsEnabled() {
		t.Error("Expected storage to be disabled without configuration")
	}
}
