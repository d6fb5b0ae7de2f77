package handlers

import (
	"DentaBill/models"
	"DentaBill/repositories"
	"DentaBill/services"
	"DentaBill/storage"
	"DentaBill/utils"
	"errors"

	"github.com/gin-gonic/gin"
)

type PatientHandler struct {
	service *services.PatientService
}

func NewPatientHandler(service *services.PatientService) *PatientHandler {
	return &PatientHandler{service: service}
}

// CreatePatient adds a patient. Re-adding an existing patient is not an
// error: the response carries existing=true and the stored record so the UI
// can message "patient already exists".
func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var patient models.Patient
	if err := c.ShouldBindJSON(&patient); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	existing, err := h.service.Add(c.Request.Context(), &patient)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	status := 201
	if existing {
		status = 200
	}
	c.JSON(status, gin.H{"patient": patient, "existing": existing})
}

func (h *PatientHandler) GetPatientByID(c *gin.Context) {
	patient, err := h.service.GetByID(c.Request.Context(), c.Param("patient_id"))
	if err != nil {
		if errors.Is(err, repositories.ErrPatientNotFound) {
			c.JSON(404, gin.H{"error": "Patient not found"})
			return
		}
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, patient)
}

func (h *PatientHandler) GetAllPatients(c *gin.Context) {
	patients, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, patients)
}

func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	var patient models.Patient
	if err := c.ShouldBindJSON(&patient); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	patient.ID = c.Param("patient_id")

	if err := h.service.Update(c.Request.Context(), &patient); err != nil {
		if errors.Is(err, repositories.ErrPatientNotFound) {
			c.JSON(404, gin.H{"error": "Patient not found"})
			return
		}
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, patient)
}

// UploadDocument attaches an uploaded file (x-ray, prescription, invoice)
// to the patient record and returns the stored metadata.
func (h *PatientHandler) UploadDocument(c *gin.Context) {
	patientID := c.Param("patient_id")
	docName := c.PostForm("name")
	docType := c.PostForm("type")

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(400, gin.H{"error": "file is required"})
		return
	}
	defer file.Close()

	doc, err := h.service.UploadDocument(
		c.Request.Context(),
		patientID,
		docName,
		docType,
		header.Filename,
		header.Header.Get("Content-Type"),
		file,
		header.Size,
	)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrPatientNotFound):
			c.JSON(404, gin.H{"error": "Patient not found"})
		case utils.ValidateDocumentData(models.PatientDocument{Name: docName, Type: docType}) != nil,
			storage.ValidateDocumentSize(header.Size) != nil:
			c.JSON(400, gin.H{"error": err.Error()})
		default:
			c.JSON(500, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(201, doc)
}

// GetDocuments lists the documents uploaded for a patient.
func (h *PatientHandler) GetDocuments(c *gin.Context) {
	documents, err := h.service.GetDocuments(c.Request.Context(), c.Param("patient_id"))
	if err != nil {
		if errors.Is(err, repositories.ErrPatientNotFound) {
			c.JSON(404, gin.H{"error": "Patient not found"})
			return
		}
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, documents)
}

func (h *PatientHandler) DeletePatient(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("patient_id")); err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"message": "Patient deleted"})
}
