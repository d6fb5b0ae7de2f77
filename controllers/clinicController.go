package controllers

import (
	"DentaBill/handlers"

	"github.com/gin-gonic/gin"
)

// SetupClinicRoutes registers the authenticated per-clinic surface. The
// caller wraps the group in the token middleware; every handler resolves
// its tenant from the session on the request context.
func SetupClinicRoutes(
	group gin.IRoutes,
	patientHandler *handlers.PatientHandler,
	appointmentHandler *handlers.AppointmentHandler,
	billHandler *handlers.BillHandler,
	clinicHandler *handlers.ClinicHandler,
	analyticsHandler *handlers.AnalyticsHandler,
) {
	group.POST("/patients", patientHandler.CreatePatient)
	group.GET("/patients", patientHandler.GetAllPatients)
	group.GET("/patients/:patient_id", patientHandler.GetPatientByID)
	group.PUT("/patients/:patient_id", patientHandler.UpdatePatient)
	group.DELETE("/patients/:patient_id", patientHandler.DeletePatient)
	group.POST("/patients/:patient_id/documents", patientHandler.UploadDocument)
	group.GET("/patients/:patient_id/documents", patientHandler.GetDocuments)

	group.POST("/appointments", appointmentHandler.CreateAppointment)
	group.GET("/appointments", appointmentHandler.GetAllAppointments)
	group.GET("/appointments/:appointment_id", appointmentHandler.GetAppointmentByID)
	group.PUT("/appointments/:appointment_id", appointmentHandler.UpdateAppointment)
	group.DELETE("/appointments/:appointment_id", appointmentHandler.DeleteAppointment)

	group.POST("/bills", billHandler.CreateBill)
	group.GET("/bills", billHandler.GetAllBills)
	group.GET("/bills/:bill_id", billHandler.GetBill)
	group.GET("/bills/:bill_id/pdf", billHandler.GetBillPDF)
	group.PUT("/bills/:bill_id/paid", billHandler.MarkBillPaid)
	group.GET("/patients/:patient_id/bills", billHandler.GetBillsByPatient)

	group.GET("/clinic-profile", clinicHandler.GetProfile)
	group.PUT("/clinic-profile", clinicHandler.SaveProfile)
	group.POST("/clinic-profile/assets/:asset_type", clinicHandler.UploadAsset)
	group.DELETE("/clinic-profile/assets/:asset_type", clinicHandler.DeleteAsset)

	group.GET("/analytics/revenue", analyticsHandler.GetRevenue)
}
