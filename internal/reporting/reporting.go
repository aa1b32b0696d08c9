package reporting

import (
	"context"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"

	"github.com/nanihealth/clinic-management/internal"
)

// RevenueDay is one day's takings.
type RevenueDay struct {
	Day   string  `db:"day" json:"day"`
	Total float64 `db:"total" json:"total"`
}

// RevenueSummary aggregates financial records over an inclusive date range.
type RevenueSummary struct {
	Total float64      `json:"total"`
	Days  []RevenueDay `json:"days"`
}

// StatusCount is the number of appointments holding one status value.
type StatusCount struct {
	Status string `db:"status" json:"status"`
	Count  int64  `db:"count" json:"count"`
}

// Service answers the aggregate questions the dashboard used to compute
// client-side. It shares the store's connection pool through sqlx; all
// queries are read-only and fail soft.
type Service struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewService wraps the store's gorm handle for raw aggregate queries.
func NewService(gdb *gorm.DB, driverName string, logger *slog.Logger) (*Service, error) {
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, internal.NewStorageError("failed to access connection pool", err)
	}
	return &Service{
		db:     sqlx.NewDb(sqlDB, driverName),
		logger: logger,
	}, nil
}

// RevenueSummary sums payments per calendar day. Empty bounds cover all
// records; a range is inclusive on both ends.
func (s *Service) RevenueSummary(ctx context.Context, startDate, endDate string) RevenueSummary {
	query := `SELECT DATE(finances.date) AS day, SUM(finances.amount) AS total
		FROM finances`
	args := []interface{}{}
	if startDate != "" && endDate != "" {
		query += ` WHERE DATE(finances.date) BETWEEN ? AND ?`
		args = append(args, startDate, endDate)
	}
	query += ` GROUP BY DATE(finances.date) ORDER BY day ASC`

	var days []RevenueDay
	if err := s.db.SelectContext(ctx, &days, s.db.Rebind(query), args...); err != nil {
		s.logger.Error("failed to summarize revenue", "error", err)
		return RevenueSummary{Days: []RevenueDay{}}
	}

	summary := RevenueSummary{Days: days}
	if summary.Days == nil {
		summary.Days = []RevenueDay{}
	}
	for _, d := range days {
		summary.Total += d.Total
	}
	return summary
}

// AppointmentStatusCounts counts appointments per status, optionally
// restricted to one calendar date.
func (s *Service) AppointmentStatusCounts(ctx context.Context, date string) []StatusCount {
	query := `SELECT appointments.status AS status, COUNT(*) AS count
		FROM appointments`
	args := []interface{}{}
	if date != "" {
		query += ` WHERE DATE(appointments.appointment_date) = ?`
		args = append(args, date)
	}
	query += ` GROUP BY appointments.status ORDER BY status ASC`

	var counts []StatusCount
	if err := s.db.SelectContext(ctx, &counts, s.db.Rebind(query), args...); err != nil {
		s.logger.Error("failed to count appointment statuses", "error", err)
		return []StatusCount{}
	}
	if counts == nil {
		counts = []StatusCount{}
	}
	return counts
}
