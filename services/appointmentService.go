package services

import (
	"DentaBill/models"
	"DentaBill/repositories"
	"DentaBill/tenant"
	"DentaBill/utils"
	"context"
	"fmt"
	"log"
	"time"
)

type AppointmentService struct {
	repository *repositories.AppointmentRepository
}

func NewAppointmentService(repository *repositories.AppointmentRepository) *AppointmentService {
	return &AppointmentService{repository: repository}
}

func (s *AppointmentService) Create(ctx context.Context, appointment *models.Appointment) error {
	session, err := tenant.FromContext(ctx)
	if err != nil {
		return err
	}
	appointment.DentistID = session.DentistID

	if err := utils.ValidateAppointmentData(*appointment); err != nil {
		return fmt.Errorf("invalid appointment data: %w", err)
	}
	warnEndBeforeStart(appointment)

	return s.repository.Create(ctx, appointment)
}

func (s *AppointmentService) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	session, err := tenant.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repository.GetByID(ctx, session.DentistID, id)
}

func (s *AppointmentService) GetAll(ctx context.Context) ([]models.Appointment, error) {
	session, err := tenant.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repository.GetAll(ctx, session.DentistID)
}

// GetToday filters the tenant's appointments to those starting on the given
// calendar date in the server's local timezone.
func (s *AppointmentService) GetToday(ctx context.Context, now time.Time) ([]models.Appointment, error) {
	appointments, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	today := now.Format("2006-01-02")
	var matched []models.Appointment
	for _, a := range appointments {
		start, err := time.Parse(time.RFC3339, a.Start)
		if err != nil {
			continue
		}
		if start.Local().Format("2006-01-02") == today {
			matched = append(matched, a)
		}
	}
	return matched, nil
}

func (s *AppointmentService) Update(ctx context.Context, appointment *models.Appointment) error {
	session, err := tenant.FromContext(ctx)
	if err != nil {
		return err
	}
	appointment.DentistID = session.DentistID

	if err := utils.ValidateAppointmentData(*appointment); err != nil {
		return fmt.Errorf("invalid appointment data: %w", err)
	}
	warnEndBeforeStart(appointment)

	return s.repository.Update(ctx, appointment)
}

func (s *AppointmentService) Delete(ctx context.Context, id string) error {
	session, err := tenant.FromContext(ctx)
	if err != nil {
		return err
	}
	return s.repository.Delete(ctx, session.DentistID, id)
}

// warnEndBeforeStart logs inverted appointment windows. They are accepted
// input; the calendar UI renders them as entered.
func warnEndBeforeStart(appointment *models.Appointment) {
	start, errStart := time.Parse(time.RFC3339, appointment.Start)
	end, errEnd := time.Parse(time.RFC3339, appointment.End)
	if errStart == nil && errEnd == nil && end.Before(start) {
		log.Printf("Appointment for %s ends before it starts (%s > %s)",
			appointment.PatientName, appointment.Start, appointment.End)
	}
}
