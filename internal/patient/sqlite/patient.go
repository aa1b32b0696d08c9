package sqlite

import (
	"gorm.io/gorm"

	"github.com/nanihealth/clinic-management/internal"
	appointmentDatamodel "github.com/nanihealth/clinic-management/internal/core/datamodel/appointment"
	financeDatamodel "github.com/nanihealth/clinic-management/internal/core/datamodel/finance"
	medicalrecordDatamodel "github.com/nanihealth/clinic-management/internal/core/datamodel/medicalrecord"
	patientDatamodel "github.com/nanihealth/clinic-management/internal/core/datamodel/patient"
	staffDatamodel "github.com/nanihealth/clinic-management/internal/core/datamodel/staff"
	"github.com/nanihealth/clinic-management/internal/patient"
)

type PatientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) patient.RepositoryAPI {
	return &PatientRepository{db: db}
}

const listColumns = "patients.id, patients.name, patients.contact, patients.email, " +
	"patients.medical_history, COALESCE(staff.full_name, '') AS doctor_name, patients.created_at"

func (r *PatientRepository) Create(data *patientDatamodel.Patient) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := checkDoctorExists(tx, data.AssignedDoctorID); err != nil {
			return err
		}
		return tx.Create(data).Error
	})
}

func (r *PatientRepository) GetByID(id int64) (*patientDatamodel.Patient, error) {
	var data patientDatamodel.Patient
	err := r.db.Where("id = ?", id).First(&data).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrPatientNotFound
		}
		return nil, err
	}
	return &data, nil
}

func (r *PatientRepository) List() ([]*patient.Row, error) {
	var rows []*patient.Row
	err := r.db.Table("patients").
		Select(listColumns).
		Joins("LEFT JOIN staff ON staff.id = patients.assigned_doctor_id").
		Order("patients.name ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *PatientRepository) Search(term string) ([]*patient.Row, error) {
	pattern := "%" + term + "%"
	var rows []*patient.Row
	err := r.db.Table("patients").
		Select(listColumns).
		Joins("LEFT JOIN staff ON staff.id = patients.assigned_doctor_id").
		Where(
			"LOWER(patients.name) LIKE LOWER(?) OR LOWER(patients.contact) LIKE LOWER(?) OR LOWER(patients.email) LIKE LOWER(?)",
			pattern, pattern, pattern,
		).
		Order("patients.name ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *PatientRepository) Update(data *patientDatamodel.Patient) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing patientDatamodel.Patient
		if err := tx.Where("id = ?", data.ID).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return internal.ErrPatientNotFound
			}
			return err
		}
		if err := checkDoctorExists(tx, data.AssignedDoctorID); err != nil {
			return err
		}
		return tx.Model(&patientDatamodel.Patient{}).Where("id = ?", data.ID).
			Updates(map[string]interface{}{
				"name":               data.Name,
				"contact":            data.Contact,
				"email":              data.Email,
				"medical_history":    data.MedicalHistory,
				"assigned_doctor_id": data.AssignedDoctorID,
			}).Error
	})
}

// Delete rejects the removal while dependent rows exist, keeping the
// referential history consistent.
func (r *PatientRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing patientDatamodel.Patient
		if err := tx.Where("id = ?", id).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return internal.ErrPatientNotFound
			}
			return err
		}

		dependents := []interface{}{
			&appointmentDatamodel.Appointment{},
			&medicalrecordDatamodel.MedicalRecord{},
			&financeDatamodel.FinancialRecord{},
		}
		for _, model := range dependents {
			var count int64
			if err := tx.Model(model).Where("patient_id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return internal.ErrPatientHasDependents
			}
		}

		return tx.Delete(&patientDatamodel.Patient{}, id).Error
	})
}

func checkDoctorExists(tx *gorm.DB, doctorID *int64) error {
	if doctorID == nil {
		return nil
	}
	var count int64
	if err := tx.Model(&staffDatamodel.Staff{}).Where("id = ?", *doctorID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return internal.NewConstraintError("assigned doctor does not exist", internal.ErrCodeStaffNotFound)
	}
	return nil
}
