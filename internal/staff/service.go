package staff

import (
	"context"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/nanihealth/clinic-management/internal"
	"github.com/nanihealth/clinic-management/internal/core/common/validation"
	staffDatamodel "github.com/nanihealth/clinic-management/internal/core/datamodel/staff"
	"github.com/nanihealth/clinic-management/internal/core/events"
	"github.com/nanihealth/clinic-management/internal/storage"
)

type RepositoryAPI interface {
	Create(data *staffDatamodel.Staff) error
	GetByID(id int64) (*staffDatamodel.Staff, error)
	ListActive() ([]*Row, error)
	Search(term string) ([]*Row, error)
	Update(data *staffDatamodel.Staff) error
	Deactivate(id int64) error
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

// CreateStaff registers a staff member. The password is hashed before it
// reaches storage; the plaintext is never persisted or logged.
func (s *Service) CreateStaff(ctx context.Context, dto CreateStaffDTO) (*Staff, error) {
	validator := validation.NewValidator()
	validator.Field("username", dto.Username).Required().MaxLength(100)
	validator.Field("password", dto.Password).Required()
	validator.Field("full_name", dto.FullName).Required().MaxLength(200)
	if err := validator.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	data := &staffDatamodel.Staff{
		Username:  dto.Username,
		Password:  string(hash),
		FullName:  dto.FullName,
		RoleID:    dto.RoleID,
		Email:     dto.Email,
		Phone:     dto.Phone,
		Specialty: dto.Specialty,
		IsActive:  true,
	}
	if err := s.repo.Create(data); err != nil {
		s.logger.Error("failed to create staff", "username", dto.Username, "error", err)
		return nil, storage.WrapWriteError(err, "failed to create staff")
	}

	s.publish(ctx, data.ID, events.OpCreated)
	s.logger.Info("staff created", "staff_id", data.ID, "username", data.Username)
	return FromDataModel(data), nil
}

// ListStaff returns active staff joined with role name, ordered by full
// name. Fail-soft read.
func (s *Service) ListStaff(ctx context.Context) []Row {
	rows, err := s.repo.ListActive()
	if err != nil {
		s.logger.Error("failed to list staff", "error", err)
		return []Row{}
	}
	return derefRows(rows)
}

// SearchStaff matches the term as a case-insensitive substring against
// full name, username, email and role name. Deactivated staff stay hidden,
// consistent with ListStaff.
func (s *Service) SearchStaff(ctx context.Context, term string) []Row {
	rows, err := s.repo.Search(term)
	if err != nil {
		s.logger.Error("failed to search staff", "term", term, "error", err)
		return []Row{}
	}
	return derefRows(rows)
}

// UpdateStaff replaces the full row. An empty password keeps the stored
// hash; a non-empty one is re-hashed.
func (s *Service) UpdateStaff(ctx context.Context, id int64, dto UpdateStaffDTO) (*Staff, error) {
	validator := validation.NewValidator()
	validator.Field("username", dto.Username).Required().MaxLength(100)
	validator.Field("full_name", dto.FullName).Required().MaxLength(200)
	if err := validator.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, storage.WrapWriteError(err, "failed to load staff")
	}

	password := existing.Password
	if dto.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, internal.NewInternalError("failed to hash password", err)
		}
		password = string(hash)
	}

	data := &staffDatamodel.Staff{
		ID:        id,
		Username:  dto.Username,
		Password:  password,
		FullName:  dto.FullName,
		RoleID:    dto.RoleID,
		Email:     dto.Email,
		Phone:     dto.Phone,
		Specialty: dto.Specialty,
		IsActive:  dto.IsActive,
		CreatedAt: existing.CreatedAt,
	}
	if err := s.repo.Update(data); err != nil {
		s.logger.Error("failed to update staff", "staff_id", id, "error", err)
		return nil, storage.WrapWriteError(err, "failed to update staff")
	}

	s.publish(ctx, id, events.OpUpdated)
	s.logger.Info("staff updated", "staff_id", id)
	return FromDataModel(data), nil
}

// DeleteStaff soft-deletes: the row stays for the medical records and
// appointments that reference it, but disappears from listings.
func (s *Service) DeleteStaff(ctx context.Context, id int64) error {
	if err := s.repo.Deactivate(id); err != nil {
		s.logger.Error("failed to deactivate staff", "staff_id", id, "error", err)
		return storage.WrapWriteError(err, "failed to deactivate staff")
	}

	s.publish(ctx, id, events.OpDeactivated)
	s.logger.Info("staff deactivated", "staff_id", id)
	return nil
}

func (s *Service) publish(ctx context.Context, id int64, op string) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(ctx, events.NewEntityChangedEvent(events.EntityStaff, id, op))
}

func derefRows(rows []*Row) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, *r)
	}
	return out
}
