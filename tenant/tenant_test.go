package tenant

import (
	"context"
	"errors"
	"testing"
)

func TestFromContext(t *testing.T) {
	tests := []struct {
		name    string
		ctx     context.Context
		want    string
		wantErr bool
	}{
		{
			name: "authenticated session",
			ctx:  NewContext(context.Background(), Session{DentistID: "d-1", Role: "dentist", Authenticated: true}),
			want: "d-1",
		},
		{
			name:    "no session",
			ctx:     context.Background(),
			wantErr: true,
		},
		{
			name:    "unauthenticated session",
			ctx:     NewContext(context.Background(), Session{DentistID: "d-1"}),
			wantErr: true,
		},
		{
			name:    "authenticated without identity",
			ctx:     NewContext(context.Background(), Session{Authenticated: true}),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := FromContext(tt.ctx)
			if tt.wantErr {
				if !errors.Is(err, ErrNotAuthenticated) {
					t.Errorf("Expected ErrNotAuthenticated, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FromContext failed: %v", err)
			}
			if session.DentistID != tt.want {
				t.Errorf("DentistID = %q, want %q", session.DentistID, tt.want)
			}
		})
	}
}
