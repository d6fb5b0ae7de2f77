package controllers

import (
	"DentaBill/handlers"
	"DentaBill/middlewares"
	"DentaBill/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Handler *handlers.AuthHandler
}

func NewAuthController(authHandler *handlers.AuthHandler) *AuthController {
	return &AuthController{Handler: authHandler}
}

// RegisterRoutes initializes all authentication routes directly on the router.
func (ac *AuthController) RegisterRoutes(router *gin.Engine) {
	// Public routes: no session required
	router.POST("/auth/register", ac.Handler.Register)
	router.POST("/auth/login", ac.Handler.Login)
	router.POST("/auth/refresh-token", ac.Handler.RefreshToken)
	router.POST("/auth/send-reset-code", ac.Handler.RequestResetCode)
	router.POST("/auth/change-password", ac.Handler.ResetPassword)

	// Protected routes: requires a valid token with the dentist role
	authGroup := router.Group("/auth").Use(
		middlewares.TokenAuthMiddleware(),
		middlewares.RoleAuthMiddleware(utils.RoleDentist),
	)
	{
		authGroup.POST("/logoff", ac.Handler.Logoff)
	}
}
