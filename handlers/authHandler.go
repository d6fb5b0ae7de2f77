package handlers

import (
	"DentaBill/models"
	"DentaBill/services"
	"DentaBill/utils"
	"fmt"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service *services.AuthService
}

func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register handles new dentist sign-up.
func (h *AuthHandler) Register(c *gin.Context) {
	var dentist models.Dentist
	if err := c.ShouldBindJSON(&dentist); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.service.SignUp(c.Request.Context(), &dentist); err != nil {
		c.JSON(400, gin.H{"error": fmt.Sprintf("Sign-up failed: %v", err)})
		return
	}

	c.JSON(201, gin.H{"id": dentist.ID, "email": dentist.Email})
}

// Login authenticates the dentist, sets the auth cookies and returns the
// tokens.
func (h *AuthHandler) Login(c *gin.Context) {
	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&credentials); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	dentist, accessToken, refreshToken, err := h.service.Login(c.Request.Context(), credentials.Email, credentials.Password)
	if err != nil {
		c.JSON(401, gin.H{"error": "Invalid email or password"})
		return
	}

	utils.SetAuthCookies(c, accessToken, refreshToken)
	c.JSON(200, gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
		"dentist":      gin.H{"id": dentist.ID, "email": dentist.Email},
	})
}

// RefreshToken exchanges a valid refresh token for a new access token.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	token, err := c.Cookie("refreshToken")
	if err != nil || token == "" {
		token = c.DefaultQuery("refreshToken", "")
	}
	if token == "" {
		c.JSON(400, gin.H{"error": "refresh token is required"})
		return
	}

	accessToken, err := h.service.Refresh(token)
	if err != nil {
		c.JSON(401, gin.H{"error": "Invalid refresh token"})
		return
	}

	c.JSON(200, gin.H{"accessToken": accessToken})
}

// Logoff clears the auth cookies.
func (h *AuthHandler) Logoff(c *gin.Context) {
	utils.ClearAuthCookies(c)
	c.Status(200)
}

// RequestResetCode triggers the password-reset email.
func (h *AuthHandler) RequestResetCode(c *gin.Context) {
	var body struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Email == "" {
		c.JSON(400, gin.H{"error": "email is required"})
		return
	}

	if err := h.service.RequestPasswordReset(c.Request.Context(), body.Email); err != nil {
		c.JSON(500, gin.H{"error": "Failed to send reset code"})
		return
	}

	c.JSON(200, gin.H{"message": "If the account exists, a reset code has been sent"})
}

// ResetPassword validates the reset code and sets a new password.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var body struct {
		Email       string `json:"email"`
		ResetCode   string `json:"resetCode"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), body.Email, body.ResetCode, body.NewPassword); err != nil {
		c.JSON(400, gin.H{"error": fmt.Sprintf("Password reset failed: %v", err)})
		return
	}

	c.JSON(200, gin.H{"message": "Password updated"})
}
