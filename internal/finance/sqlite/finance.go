package sqlite

import (
	"gorm.io/gorm"

	"github.com/nanihealth/clinic-management/internal"
	financeDatamodel "github.com/nanihealth/clinic-management/internal/core/datamodel/finance"
	patientDatamodel "github.com/nanihealth/clinic-management/internal/core/datamodel/patient"
	staffDatamodel "github.com/nanihealth/clinic-management/internal/core/datamodel/staff"
	"github.com/nanihealth/clinic-management/internal/finance"
)

type FinanceRepository struct {
	db *gorm.DB
}

func NewFinanceRepository(db *gorm.DB) finance.RepositoryAPI {
	return &FinanceRepository{db: db}
}

const listColumns = "finances.id, finances.date, finances.amount, finances.description, " +
	"patients.name AS patient_name, COALESCE(staff.full_name, '') AS recorded_by_name, " +
	"finances.transaction_type"

func (r *FinanceRepository) Create(data *financeDatamodel.FinancialRecord) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := checkPatientExists(tx, data.PatientID); err != nil {
			return err
		}
		if err := checkRecorderExists(tx, data.RecordedByID); err != nil {
			return err
		}
		return tx.Create(data).Error
	})
}

func (r *FinanceRepository) GetByID(id int64) (*financeDatamodel.FinancialRecord, error) {
	var data financeDatamodel.FinancialRecord
	err := r.db.Where("id = ?", id).First(&data).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrTransactionNotFound
		}
		return nil, err
	}
	return &data, nil
}

// List returns all records when the bounds are empty; otherwise the range
// is inclusive on both ends, compared on the date field only.
func (r *FinanceRepository) List(startDate, endDate string) ([]*finance.Row, error) {
	q := r.db.Table("finances").
		Select(listColumns).
		Joins("JOIN patients ON patients.id = finances.patient_id").
		Joins("LEFT JOIN staff ON staff.id = finances.recorded_by_id")

	if startDate != "" && endDate != "" {
		q = q.Where("DATE(finances.date) BETWEEN ? AND ?", startDate, endDate)
	}

	var rows []*finance.Row
	err := q.Order("finances.date ASC").Scan(&rows).Error
	return rows, err
}

func (r *FinanceRepository) Update(data *financeDatamodel.FinancialRecord) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing financeDatamodel.FinancialRecord
		if err := tx.Where("id = ?", data.ID).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return internal.ErrTransactionNotFound
			}
			return err
		}
		if err := checkPatientExists(tx, data.PatientID); err != nil {
			return err
		}
		if err := checkRecorderExists(tx, data.RecordedByID); err != nil {
			return err
		}
		return tx.Model(&financeDatamodel.FinancialRecord{}).Where("id = ?", data.ID).
			Updates(map[string]interface{}{
				"date":             data.Date,
				"amount":           data.Amount,
				"description":      data.Description,
				"patient_id":       data.PatientID,
				"recorded_by_id":   data.RecordedByID,
				"transaction_type": data.TransactionType,
			}).Error
	})
}

func (r *FinanceRepository) Delete(id int64) error {
	res := r.db.Delete(&financeDatamodel.FinancialRecord{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrTransactionNotFound
	}
	return nil
}

func checkPatientExists(tx *gorm.DB, patientID int64) error {
	var count int64
	if err := tx.Model(&patientDatamodel.Patient{}).Where("id = ?", patientID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return internal.NewConstraintError("referenced patient does not exist", internal.ErrCodePatientNotFound)
	}
	return nil
}

func checkRecorderExists(tx *gorm.DB, staffID *int64) error {
	if staffID == nil {
		return nil
	}
	var count int64
	if err := tx.Model(&staffDatamodel.Staff{}).Where("id = ?", *staffID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return internal.NewConstraintError("recording staff member does not exist", internal.ErrCodeStaffNotFound)
	}
	return nil
}
