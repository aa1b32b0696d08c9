package role

import (
	"context"
	"log/slog"

	"github.com/nanihealth/clinic-management/internal/core/common/validation"
	"github.com/nanihealth/clinic-management/internal/core/events"
	roleDatamodel "github.com/nanihealth/clinic-management/internal/core/datamodel/role"
	"github.com/nanihealth/clinic-management/internal/storage"
)

type RepositoryAPI interface {
	Create(r *roleDatamodel.Role) error
	GetAll() ([]*roleDatamodel.Role, error)
	GetByID(id int64) (*roleDatamodel.Role, error)
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

func (s *Service) CreateRole(ctx context.Context, dto CreateRoleDTO) (*Role, error) {
	validator := validation.NewValidator()
	validator.Field("name", dto.Name).Required().MaxLength(100)
	if err := validator.Validate(); err != nil {
		return nil, err
	}

	data := &roleDatamodel.Role{
		Name:        dto.Name,
		Description: dto.Description,
	}
	if err := s.repo.Create(data); err != nil {
		s.logger.Error("failed to create role", "name", dto.Name, "error", err)
		return nil, storage.WrapWriteError(err, "failed to create role")
	}

	s.publish(ctx, data.ID, events.OpCreated)
	s.logger.Info("role created", "role_id", data.ID, "name", data.Name)
	return FromDataModel(data), nil
}

// ListRoles returns all roles. Reads fail soft: on storage failure the
// error is logged and an empty slice returned.
func (s *Service) ListRoles(ctx context.Context) []Role {
	data, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list roles", "error", err)
		return []Role{}
	}

	roles := make([]Role, 0, len(data))
	for _, r := range data {
		roles = append(roles, *FromDataModel(r))
	}
	return roles
}

func (s *Service) publish(ctx context.Context, id int64, op string) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(ctx, events.NewEntityChangedEvent(events.EntityRole, id, op))
}
