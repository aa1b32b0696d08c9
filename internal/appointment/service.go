package appointment

import (
	"context"
	"log/slog"
	"time"

	"github.com/nanihealth/clinic-management/internal"
	"github.com/nanihealth/clinic-management/internal/core/common/validation"
	appointmentDatamodel "github.com/nanihealth/clinic-management/internal/core/datamodel/appointment"
	"github.com/nanihealth/clinic-management/internal/core/events"
	"github.com/nanihealth/clinic-management/internal/storage"
)

type RepositoryAPI interface {
	Create(data *appointmentDatamodel.Appointment) error
	GetByID(id int64) (*appointmentDatamodel.Appointment, error)
	List(filter Filter) ([]*Row, error)
	ListInRange(startDate, endDate string) ([]*Row, error)
	Update(data *appointmentDatamodel.Appointment) error
	Delete(id int64) error
}

type Service struct {
	repo   RepositoryAPI
	bus    *events.Bus
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, bus *events.Bus, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		bus:    bus,
		logger: logger,
	}
}

// CreateAppointment books a visit. Date and time are combined into one
// instant; the status always starts out Scheduled.
func (s *Service) CreateAppointment(ctx context.Context, dto CreateAppointmentDTO) (*Appointment, error) {
	validator := validation.NewValidator()
	validator.Field("patient_id", dto.PatientID).Required()
	validator.Field("date", dto.Date).Required().DateFormat(DateLayout)
	validator.Field("time", dto.Time).Required().DateFormat(TimeLayout)
	if err := validator.Validate(); err != nil {
		return nil, err
	}

	when, err := combineDateTime(dto.Date, dto.Time)
	if err != nil {
		return nil, err
	}

	data := &appointmentDatamodel.Appointment{
		PatientID:       dto.PatientID,
		AppointmentDate: when,
		Reason:          dto.Reason,
		Status:          appointmentDatamodel.StatusScheduled,
		AssignedToID:    dto.AssignedToID,
	}
	if err := s.repo.Create(data); err != nil {
		s.logger.Error("failed to create appointment", "patient_id", dto.PatientID, "error", err)
		return nil, storage.WrapWriteError(err, "failed to create appointment")
	}

	s.publish(ctx, data.ID, events.OpCreated)
	s.logger.Info("appointment created", "appointment_id", data.ID, "patient_id", dto.PatientID)
	return FromDataModel(data), nil
}

// ListAppointments returns appointments joined with patient and staff
// names, optionally filtered by calendar date and/or assigned staff.
// Fail-soft read.
func (s *Service) ListAppointments(ctx context.Context, filter Filter) []Row {
	if filter.Date != "" {
		if _, err := time.Parse(DateLayout, filter.Date); err != nil {
			s.logger.Warn("invalid appointment date filter", "date", filter.Date)
			return []Row{}
		}
	}
	rows, err := s.repo.List(filter)
	if err != nil {
		s.logger.Error("failed to list appointments", "error", err)
		return []Row{}
	}
	return derefRows(rows)
}

// ListAppointmentsInRange covers weekly views: both ends inclusive,
// compared on the date portion only.
func (s *Service) ListAppointmentsInRange(ctx context.Context, startDate, endDate string) []Row {
	for _, d := range []string{startDate, endDate} {
		if _, err := time.Parse(DateLayout, d); err != nil {
			s.logger.Warn("invalid appointment range bound", "date", d)
			return []Row{}
		}
	}
	rows, err := s.repo.ListInRange(startDate, endDate)
	if err != nil {
		s.logger.Error("failed to list appointments in range", "error", err)
		return []Row{}
	}
	return derefRows(rows)
}

func (s *Service) UpdateAppointment(ctx context.Context, id int64, dto UpdateAppointmentDTO) (*Appointment, error) {
	validator := validation.NewValidator()
	validator.Field("patient_id", dto.PatientID).Required()
	validator.Field("date", dto.Date).Required().DateFormat(DateLayout)
	validator.Field("time", dto.Time).Required().DateFormat(TimeLayout)
	if err := validator.Validate(); err != nil {
		return nil, err
	}
	if !appointmentDatamodel.ValidStatus(dto.Status) {
		return nil, internal.NewConstraintError("invalid appointment status", internal.ErrCodeInvalidStatus)
	}

	when, err := combineDateTime(dto.Date, dto.Time)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, storage.WrapWriteError(err, "failed to load appointment")
	}

	data := &appointmentDatamodel.Appointment{
		ID:              id,
		PatientID:       dto.PatientID,
		AppointmentDate: when,
		Reason:          dto.Reason,
		Status:          dto.Status,
		AssignedToID:    dto.AssignedToID,
		CreatedAt:       existing.CreatedAt,
	}
	if err := s.repo.Update(data); err != nil {
		s.logger.Error("failed to update appointment", "appointment_id", id, "error", err)
		return nil, storage.WrapWriteError(err, "failed to update appointment")
	}

	s.publish(ctx, id, events.OpUpdated)
	s.logger.Info("appointment updated", "appointment_id", id)
	return FromDataModel(data), nil
}

func (s *Service) DeleteAppointment(ctx context.Context, id int64) error {
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete appointment", "appointment_id", id, "error", err)
		return storage.WrapWriteError(err, "failed to delete appointment")
	}

	s.publish(ctx, id, events.OpDeleted)
	s.logger.Info("appointment deleted", "appointment_id", id)
	return nil
}

func (s *Service) publish(ctx context.Context, id int64, op string) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(ctx, events.NewEntityChangedEvent(events.EntityAppointment, id, op))
}

// combineDateTime joins the wall-clock date and time strings into one
// instant. Parsed in UTC so sqlite's DATE() sees the same calendar day the
// caller wrote, whatever the process timezone.
func combineDateTime(date, timeOfDay string) (time.Time, error) {
	when, err := time.ParseInLocation(DateTimeLayout, date+" "+timeOfDay, time.UTC)
	if err != nil {
		return time.Time{}, internal.NewValidationError("invalid appointment date or time", internal.ErrCodeInvalidDate)
	}
	return when, nil
}

func derefRows(rows []*Row) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, *r)
	}
	return out
}
