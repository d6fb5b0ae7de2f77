package handlers

import (
	"DentaBill/models"
	"DentaBill/repositories"
	"DentaBill/services"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	service *services.AppointmentService
}

func NewAppointmentHandler(service *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var appointment models.Appointment
	if err := c.ShouldBindJSON(&appointment); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.Create(c.Request.Context(), &appointment); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	c.JSON(201, appointment)
}

func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	appointment, err := h.service.GetByID(c.Request.Context(), c.Param("appointment_id"))
	if err != nil {
		if errors.Is(err, repositories.ErrAppointmentNotFound) {
			c.JSON(404, gin.H{"error": "Appointment not found"})
			return
		}
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, appointment)
}

// GetAllAppointments lists the clinic's appointments; ?today=true narrows
// to the current calendar date.
func (h *AppointmentHandler) GetAllAppointments(c *gin.Context) {
	ctx := c.Request.Context()

	if c.Query("today") == "true" {
		appointments, err := h.service.GetToday(ctx, time.Now())
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, appointments)
		return
	}

	appointments, err := h.service.GetAll(ctx)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, appointments)
}

func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	var appointment models.Appointment
	if err := c.ShouldBindJSON(&appointment); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	appointment.ID = c.Param("appointment_id")

	if err := h.service.Update(c.Request.Context(), &appointment); err != nil {
		if errors.Is(err, repositories.ErrAppointmentNotFound) {
			c.JSON(404, gin.H{"error": "Appointment not found"})
			return
		}
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, appointment)
}

func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("appointment_id")); err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"message": "Appointment deleted"})
}
