package middlewares

import (
	"DentaBill/tenant"
	"DentaBill/utils"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func sessionRouter(session *tenant.Session, requiredRole string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	if session != nil {
		router.Use(func(c *gin.Context) {
			c.Request = c.Request.WithContext(tenant.NewContext(c.Request.Context(), *session))
		})
	}
	router.GET("/", RoleAuthMiddleware(requiredRole), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestRoleAuthMiddleware(t *testing.T) {
	dentist := &tenant.Session{DentistID: "d-1", Role: utils.RoleDentist, Authenticated: true}

	tests := []struct {
		name         string
		session      *tenant.Session
		requiredRole string
		want         int
	}{
		{"matching role passes", dentist, utils.RoleDentist, http.StatusOK},
		{"mismatched role is forbidden", dentist, utils.RoleAdmin, http.StatusForbidden},
		{"no session is unauthorized", nil, utils.RoleDentist, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := sessionRouter(tt.session, tt.requiredRole)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}
