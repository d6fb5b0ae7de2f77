package controllers

import (
	"DentaBill/handlers"
	"DentaBill/middlewares"

	"github.com/gin-gonic/gin"
)

// SetupPublicAPIRoutes registers the /api surface used by SMS bill links
// and the admin dashboard. A session is attached when a token is present
// (save-bill needs one); fetch-bill and get-bill-pdf also serve anonymous
// public bill links.
func SetupPublicAPIRoutes(
	router *gin.Engine,
	billHandler *handlers.BillHandler,
	smsHandler *handlers.SMSHandler,
	adminHandler *handlers.AdminHandler,
) {
	api := router.Group("/api").Use(middlewares.OptionalTokenAuthMiddleware())
	{
		api.GET("/fetch-bill", billHandler.GetBill)
		api.GET("/get-bill-pdf", billHandler.GetBillPDF)
		api.POST("/save-bill", billHandler.CreateBill)
		api.GET("/get-all-bills", adminHandler.GetAllBills)
		api.POST("/send-sms", smsHandler.SendSMS)
		api.POST("/admin-login", adminHandler.AdminLogin)
	}
}
