package finance

import (
	"context"
	"log/slog"
	"time"

	"github.com/nanihealth/clinic-management/internal"
	"github.com/nanihealth/clinic-management/internal/core/common/validation"
	financeDatamodel "github.com/nanihealth/clinic-management/internal/core/datamodel/finance"
	"github.com/nanihealth/clinic-management/internal/core/events"
	"github.com/nanihealth/clinic-management/internal/storage"
)

type RepositoryAPI interface {
	Create(data *financeDatamodel.FinancialRecord) error
	GetByID(id int64) (*financeDatamodel.FinancialRecord, error)
	List(startDate, endDate string) ([]*Row, error)
	Update(data *financeDatamodel.FinancialRecord) error
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

// RecordTransaction stores a payment. Amounts must be non-negative; zero
// is a valid amount (e.g. a waived fee).
func (s *Service) RecordTransaction(ctx context.Context, dto RecordTransactionDTO) (*FinancialRecord, error) {
	date, err := s.validate(dto.Date, dto.Amount, dto.PatientID)
	if err != nil {
		return nil, err
	}

	txType := dto.TransactionType
	if txType == "" {
		txType = financeDatamodel.TransactionTypePayment
	}

	data := &financeDatamodel.FinancialRecord{
		Date:            date,
		Amount:          dto.Amount,
		Description:     dto.Description,
		PatientID:       dto.PatientID,
		RecordedByID:    dto.RecordedByID,
		TransactionType: txType,
	}
	if err := s.repo.Create(data); err != nil {
		s.logger.Error("failed to record transaction", "patient_id", dto.PatientID, "error", err)
		return nil, storage.WrapWriteError(err, "failed to record transaction")
	}

	s.publish(ctx, data.ID, events.OpCreated)
	s.logger.Info("transaction recorded", "transaction_id", data.ID, "amount", data.Amount)
	return FromDataModel(data), nil
}

// ListTransactions returns financial records joined with patient and
// recorder names. Empty bounds return everything; a range is inclusive on
// both ends, compared on the date field only. Fail-soft read.
func (s *Service) ListTransactions(ctx context.Context, startDate, endDate string) []Row {
	if (startDate == "") != (endDate == "") {
		s.logger.Warn("transaction range requires both bounds", "start", startDate, "end", endDate)
		return []Row{}
	}
	if startDate != "" {
		for _, d := range []string{startDate, endDate} {
			if _, err := time.Parse(DateLayout, d); err != nil {
				s.logger.Warn("invalid transaction range bound", "date", d)
				return []Row{}
			}
		}
	}

	rows, err := s.repo.List(startDate, endDate)
	if err != nil {
		s.logger.Error("failed to list transactions", "error", err)
		return []Row{}
	}
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, *r)
	}
	return out
}

func (s *Service) UpdateTransaction(ctx context.Context, id int64, dto UpdateTransactionDTO) (*FinancialRecord, error) {
	date, err := s.validate(dto.Date, dto.Amount, dto.PatientID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, storage.WrapWriteError(err, "failed to load transaction")
	}

	txType := dto.TransactionType
	if txType == "" {
		txType = financeDatamodel.TransactionTypePayment
	}

	data := &financeDatamodel.FinancialRecord{
		ID:              id,
		Date:            date,
		Amount:          dto.Amount,
		Description:     dto.Description,
		PatientID:       dto.PatientID,
		RecordedByID:    dto.RecordedByID,
		TransactionType: txType,
		CreatedAt:       existing.CreatedAt,
	}
	if err := s.repo.Update(data); err != nil {
		s.logger.Error("failed to update transaction", "transaction_id", id, "error", err)
		return nil, storage.WrapWriteError(err, "failed to update transaction")
	}

	s.publish(ctx, id, events.OpUpdated)
	s.logger.Info("transaction updated", "transaction_id", id)
	return FromDataModel(data), nil
}

func (s *Service) DeleteTransaction(ctx context.Context, id int64) error {
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete transaction", "transaction_id", id, "error", err)
		return storage.WrapWriteError(err, "failed to delete transaction")
	}

	s.publish(ctx, id, events.OpDeleted)
	s.logger.Info("transaction deleted", "transaction_id", id)
	return nil
}

func (s *Service) validate(date string, amount float64, patientID int64) (time.Time, error) {
	validator := validation.NewValidator()
	validator.Field("date", date).Required().DateFormat(DateLayout)
	validator.Field("patient_id", patientID).Required()
	if err := validator.Validate(); err != nil {
		return time.Time{}, err
	}
	if amount < 0 {
		return time.Time{}, internal.NewConstraintError("amount must not be negative", internal.ErrCodeInvalidAmount)
	}
	parsed, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, internal.NewValidationError("invalid transaction date", internal.ErrCodeInvalidDate)
	}
	return parsed, nil
}

func (s *Service) publish(ctx context.Context, id int64, op string) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(ctx, events.NewEntityChangedEvent(events.EntityFinancialRecord, id, op))
}
