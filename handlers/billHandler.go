package handlers

import (
	"DentaBill/models"
	"DentaBill/repositories"
	"DentaBill/services"
	"DentaBill/tenant"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
)

type BillHandler struct {
	service *services.BillService
}

func NewBillHandler(service *services.BillService) *BillHandler {
	return &BillHandler{service: service}
}

// CreateBill saves a new bill, registering the patient on the fly when a
// phone number is supplied. The response reports whether the notification
// SMS went out; a saved bill with a failed SMS is still a success.
func (h *BillHandler) CreateBill(c *gin.Context) {
	var body struct {
		PatientName   string                `json:"patientName"`
		Phone         string                `json:"phone"`
		Consultations []models.Consultation `json:"consultations"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	origin := c.GetHeader("Origin")
	if origin == "" {
		scheme := "http"
		if c.Request.TLS != nil {
			scheme = "https"
		}
		origin = fmt.Sprintf("%s://%s", scheme, c.Request.Host)
	}

	bill, smsSent, err := h.service.Create(c.Request.Context(), services.CreateBillInput{
		PatientName:   body.PatientName,
		Phone:         body.Phone,
		Consultations: body.Consultations,
		Origin:        origin,
	})
	if err != nil {
		if errors.Is(err, tenant.ErrNotAuthenticated) {
			c.JSON(401, gin.H{"error": "Authentication required"})
			return
		}
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	c.JSON(201, gin.H{"id": bill.ID, "bill": bill, "smsSent": smsSent})
}

// GetBill fetches a bill by id. Works with or without a session; the public
// path uses the cross-tenant lookup.
func (h *BillHandler) GetBill(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		id = c.Param("bill_id")
	}
	if id == "" {
		c.JSON(400, gin.H{"error": "bill id is required"})
		return
	}

	bill, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrBillNotFound) {
			c.JSON(404, gin.H{"error": "Bill not found"})
			return
		}
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, bill)
}

func (h *BillHandler) GetAllBills(c *gin.Context) {
	bills, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, bills)
}

// GetBillsByPatient lists the bills whose name snapshot matches the given
// patient. A ?patientName query on the list route is also accepted.
func (h *BillHandler) GetBillsByPatient(c *gin.Context) {
	ctx := c.Request.Context()

	if patientID := c.Param("patient_id"); patientID != "" {
		bills, err := h.service.GetByPatientID(ctx, patientID)
		if err != nil {
			if errors.Is(err, repositories.ErrPatientNotFound) {
				c.JSON(404, gin.H{"error": "Patient not found"})
				return
			}
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, bills)
		return
	}

	patientName := c.Query("patientName")
	if patientName == "" {
		c.JSON(400, gin.H{"error": "patient name is required"})
		return
	}

	bills, err := h.service.GetByPatientName(ctx, patientName)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, bills)
}

// MarkBillPaid flips the bill to paid. Already-paid bills return 200.
func (h *BillHandler) MarkBillPaid(c *gin.Context) {
	id := c.Param("bill_id")
	if err := h.service.MarkPaid(c.Request.Context(), id); err != nil {
		if errors.Is(err, repositories.ErrBillNotFound) {
			c.JSON(404, gin.H{"error": "Bill not found"})
			return
		}
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"id": id, "status": models.BillPaid})
}

// GetBillPDF streams the rendered receipt inline.
func (h *BillHandler) GetBillPDF(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		id = c.Param("bill_id")
	}
	if id == "" {
		c.JSON(400, gin.H{"error": "bill id is required"})
		return
	}

	pdf, filename, err := h.service.RenderPDF(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrBillNotFound) {
			c.JSON(404, gin.H{"error": "Bill not found"})
			return
		}
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	c.Data(200, "application/pdf", pdf)
}
