package handlers

import (
	"DentaBill/services"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	authService *services.AuthService
	billService *services.BillService
}

func NewAdminHandler(authService *services.AuthService, billService *services.BillService) *AdminHandler {
	return &AdminHandler{authService: authService, billService: billService}
}

// AdminLogin checks the submitted credentials against the configured admin
// account.
func (h *AdminHandler) AdminLogin(c *gin.Context) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	if !h.authService.AuthenticateAdmin(body.Username, body.Password) {
		c.JSON(401, gin.H{"success": false, "error": "Invalid credentials"})
		return
	}
	c.JSON(200, gin.H{"success": true})
}

// GetAllBills returns every bill across all clinics for the admin
// dashboard.
func (h *AdminHandler) GetAllBills(c *gin.Context) {
	bills, err := h.billService.GetAllBills(c.Request.Context())
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, bills)
}
