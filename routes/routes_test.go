package routes

import (
	"DentaBill/cache"
	"DentaBill/config"
	"DentaBill/database"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-redis/redis/v8"
)

// Method routing is decided before any handler runs, so the Redis client is
// never dialed here.
func TestWrongMethodReturns405(t *testing.T) {
	database.RedisClient = redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	cacheInstance, err := cache.NewCache()
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}

	handler := SetupRoutes(cacheInstance, &config.AppConfig{BearerToken: "gateway-token"})

	tests := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{"wrong method on public route", http.MethodPost, "/api/fetch-bill", http.StatusMethodNotAllowed},
		{"wrong method on admin login", http.MethodDelete, "/api/admin-login", http.StatusMethodNotAllowed},
		{"right method still routed", http.MethodGet, "/api/fetch-bill", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("%s %s = %d, want %d", tt.method, tt.path, w.Code, tt.want)
			}
		})
	}
}
