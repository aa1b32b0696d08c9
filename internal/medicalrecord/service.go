package medicalrecord

import (
	"context"
	"log/slog"
	"time"

	"github.com/nanihealth/clinic-management/internal"
	"github.com/nanihealth/clinic-management/internal/core/common/validation"
	medicalrecordDatamodel "github.com/nanihealth/clinic-management/internal/core/datamodel/medicalrecord"
	"github.com/nanihealth/clinic-management/internal/core/events"
	"github.com/nanihealth/clinic-management/internal/storage"
)

type RepositoryAPI interface {
	Create(data *medicalrecordDatamodel.MedicalRecord) error
	GetByID(id int64) (*medicalrecordDatamodel.MedicalRecord, error)
	List(patientID *int64) ([]*Row, error)
	Update(data *medicalrecordDatamodel.MedicalRecord) error
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

func (s *Service) CreateMedicalRecord(ctx context.Context, dto CreateMedicalRecordDTO) (*MedicalRecord, error) {
	visitDate, err := s.validate(dto.PatientID, dto.DoctorID, dto.VisitDate)
	if err != nil {
		return nil, err
	}

	data := &medicalrecordDatamodel.MedicalRecord{
		PatientID: dto.PatientID,
		DoctorID:  dto.DoctorID,
		VisitDate: visitDate,
		Diagnosis: dto.Diagnosis,
		Treatment: dto.Treatment,
		Notes:     dto.Notes,
	}
	if err := s.repo.Create(data); err != nil {
		s.logger.Error("failed to create medical record", "patient_id", dto.PatientID, "error", err)
		return nil, storage.WrapWriteError(err, "failed to create medical record")
	}

	s.publish(ctx, data.ID, events.OpCreated)
	s.logger.Info("medical record created", "record_id", data.ID, "patient_id", dto.PatientID)
	return FromDataModel(data), nil
}

// ListMedicalRecords returns visit notes joined with patient and doctor
// names; a nil patientID returns all records system-wide. Fail-soft read.
func (s *Service) ListMedicalRecords(ctx context.Context, patientID *int64) []Row {
	rows, err := s.repo.List(patientID)
	if err != nil {
		s.logger.Error("failed to list medical records", "error", err)
		return []Row{}
	}
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, *r)
	}
	return out
}

func (s *Service) UpdateMedicalRecord(ctx context.Context, id int64, dto UpdateMedicalRecordDTO) (*MedicalRecord, error) {
	visitDate, err := s.validate(dto.PatientID, dto.DoctorID, dto.VisitDate)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, storage.WrapWriteError(err, "failed to load medical record")
	}

	data := &medicalrecordDatamodel.MedicalRecord{
		ID:        id,
		PatientID: dto.PatientID,
		DoctorID:  dto.DoctorID,
		VisitDate: visitDate,
		Diagnosis: dto.Diagnosis,
		Treatment: dto.Treatment,
		Notes:     dto.Notes,
		CreatedAt: existing.CreatedAt,
	}
	if err := s.repo.Update(data); err != nil {
		s.logger.Error("failed to update medical record", "record_id", id, "error", err)
		return nil, storage.WrapWriteError(err, "failed to update medical record")
	}

	s.publish(ctx, id, events.OpUpdated)
	s.logger.Info("medical record updated", "record_id", id)
	return FromDataModel(data), nil
}

func (s *Service) DeleteMedicalRecord(ctx context.Context, id int64) error {
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete medical record", "record_id", id, "error", err)
		return storage.WrapWriteError(err, "failed to delete medical record")
	}

	s.publish(ctx, id, events.OpDeleted)
	s.logger.Info("medical record deleted", "record_id", id)
	return nil
}

func (s *Service) validate(patientID, doctorID int64, visitDate string) (time.Time, error) {
	validator := validation.NewValidator()
	validator.Field("patient_id", patientID).Required()
	validator.Field("doctor_id", doctorID).Required()
	validator.Field("visit_date", visitDate).Required().DateFormat(DateLayout)
	if err := validator.Validate(); err != nil {
		return time.Time{}, err
	}
	parsed, err := time.Parse(DateLayout, visitDate)
	if err != nil {
		return time.Time{}, internal.NewValidationError("invalid visit date", internal.ErrCodeInvalidDate)
	}
	return parsed, nil
}

func (s *Service) publish(ctx context.Context, id int64, op string) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(ctx, events.NewEntityChangedEvent(events.EntityMedicalRecord, id, op))
}
