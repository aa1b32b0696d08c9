package patient

import (
	"context"
	"log/slog"

	"github.com/nanihealth/clinic-management/internal/core/common/validation"
	patientDatamodel "github.com/nanihealth/clinic-management/internal/core/datamodel/patient"
	"github.com/nanihealth/clinic-management/internal/core/events"
	"github.com/nanihealth/clinic-management/internal/storage"
)

type RepositoryAPI interface {
	Create(data *patientDatamodel.Patient) error
	GetByID(id int64) (*patientDatamodel.Patient, error)
	List() ([]*Row, error)
	Search(term string) ([]*Row, error)
	Update(data *patientDatamodel.Patient) error
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

func (s *Service) CreatePatient(ctx context.Context, dto CreatePatientDTO) (*Patient, error) {
	if err := validatePatient(dto.Name, dto.Contact); err != nil {
		return nil, err
	}

	data := &patientDatamodel.Patient{
		Name:             dto.Name,
		Contact:          dto.Contact,
		Email:            dto.Email,
		MedicalHistory:   dto.MedicalHistory,
		AssignedDoctorID: dto.AssignedDoctorID,
	}
	if err := s.repo.Create(data); err != nil {
		s.logger.Error("failed to create patient", "name", dto.Name, "error", err)
		return nil, storage.WrapWriteError(err, "failed to create patient")
	}

	s.publish(ctx, data.ID, events.OpCreated)
	s.logger.Info("patient created", "patient_id", data.ID)
	return FromDataModel(data), nil
}

// ListPatients returns all patients with the assigned doctor's name joined,
// ordered by patient name. Fail-soft read.
func (s *Service) ListPatients(ctx context.Context) []Row {
	rows, err := s.repo.List()
	if err != nil {
		s.logger.Error("failed to list patients", "error", err)
		return []Row{}
	}
	return derefRows(rows)
}

// SearchPatients matches the term as a case-insensitive substring against
// name, contact, or email.
func (s *Service) SearchPatients(ctx context.Context, term string) []Row {
	rows, err := s.repo.Search(term)
	if err != nil {
		s.logger.Error("failed to search patients", "term", term, "error", err)
		return []Row{}
	}
	return derefRows(rows)
}

func (s *Service) UpdatePatient(ctx context.Context, id int64, dto UpdatePatientDTO) (*Patient, error) {
	if err := validatePatient(dto.Name, dto.Contact); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, storage.WrapWriteError(err, "failed to load patient")
	}

	data := &patientDatamodel.Patient{
		ID:               id,
		Name:             dto.Name,
		Contact:          dto.Contact,
		Email:            dto.Email,
		MedicalHistory:   dto.MedicalHistory,
		AssignedDoctorID: dto.AssignedDoctorID,
		CreatedAt:        existing.CreatedAt,
	}
	if err := s.repo.Update(data); err != nil {
		s.logger.Error("failed to update patient", "patient_id", id, "error", err)
		return nil, storage.WrapWriteError(err, "failed to update patient")
	}

	s.publish(ctx, id, events.OpUpdated)
	s.logger.Info("patient updated", "patient_id", id)
	return FromDataModel(data), nil
}

// DeletePatient removes the patient only when no appointments, medical
// records or financial records still reference it; otherwise the delete is
// rejected so history stays intact.
func (s *Service) DeletePatient(ctx context.Context, id int64) error {
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete patient", "patient_id", id, "error", err)
		return storage.WrapWriteError(err, "failed to delete patient")
	}

	s.publish(ctx, id, events.OpDeleted)
	s.logger.Info("patient deleted", "patient_id", id)
	return nil
}

func (s *Service) publish(ctx context.Context, id int64, op string) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(ctx, events.NewEntityChangedEvent(events.EntityPatient, id, op))
}

func validatePatient(name, contact string) error {
	validator := validation.NewValidator()
	validator.Field("name", name).Required().MaxLength(200)
	validator.Field("contact", contact).Required().MaxLength(100)
	if err := validator.Validate(); err != nil {
		return err
	}
	return nil
}

func derefRows(rows []*Row) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, *r)
	}
	return out
}
