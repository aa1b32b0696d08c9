package sqlite

import (
	"gorm.io/gorm"

	"github.com/nanihealth/clinic-management/internal"
	medicalrecordDatamodel "github.com/nanihealth/clinic-management/internal/core/datamodel/medicalrecord"
	patientDatamodel "github.com/nanihealth/clinic-management/internal/core/datamodel/patient"
	staffDatamodel "github.com/nanihealth/clinic-management/internal/core/datamodel/staff"
	"github.com/nanihealth/clinic-management/internal/medicalrecord"
)

type MedicalRecordRepository struct {
	db *gorm.DB
}

func NewMedicalRecordRepository(db *gorm.DB) medicalrecord.RepositoryAPI {
	return &MedicalRecordRepository{db: db}
}

// Deactivated doctors must still resolve on historical records, so the
// staff join carries no is_active filter.
const listColumns = "medical_records.id, patients.name AS patient_name, " +
	"staff.full_name AS doctor_name, medical_records.visit_date, " +
	"medical_records.diagnosis, medical_records.treatment, medical_records.notes"

func (r *MedicalRecordRepository) Create(data *medicalrecordDatamodel.MedicalRecord) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := checkPatientExists(tx, data.PatientID); err != nil {
			return err
		}
		if err := checkDoctorExists(tx, data.DoctorID); err != nil {
			return err
		}
		return tx.Create(data).Error
	})
}

func (r *MedicalRecordRepository) GetByID(id int64) (*medicalrecordDatamodel.MedicalRecord, error) {
	var data medicalrecordDatamodel.MedicalRecord
	err := r.db.Where("id = ?", id).First(&data).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrRecordNotFound
		}
		return nil, err
	}
	return &data, nil
}

func (r *MedicalRecordRepository) List(patientID *int64) ([]*medicalrecord.Row, error) {
	q := r.db.Table("medical_records").
		Select(listColumns).
		Joins("JOIN patients ON patients.id = medical_records.patient_id").
		Joins("JOIN staff ON staff.id = medical_records.doctor_id")

	if patientID != nil {
		q = q.Where("medical_records.patient_id = ?", *patientID)
	}

	var rows []*medicalrecord.Row
	err := q.Order("medical_records.visit_date DESC").Scan(&rows).Error
	return rows, err
}

func (r *MedicalRecordRepository) Update(data *medicalrecordDatamodel.MedicalRecord) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing medicalrecordDatamodel.MedicalRecord
		if err := tx.Where("id = ?", data.ID).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return internal.ErrRecordNotFound
			}
			return err
		}
		if err := checkPatientExists(tx, data.PatientID); err != nil {
			return err
		}
		if err := checkDoctorExists(tx, data.DoctorID); err != nil {
			return err
		}
		return tx.Model(&medicalrecordDatamodel.MedicalRecord{}).Where("id = ?", data.ID).
			Updates(map[string]interface{}{
				"patient_id": data.PatientID,
				"doctor_id":  data.DoctorID,
				"visit_date": data.VisitDate,
				"diagnosis":  data.Diagnosis,
				"treatment":  data.Treatment,
				"notes":      data.Notes,
			}).Error
	})
}

func (r *MedicalRecordRepository) Delete(id int64) error {
	res := r.db.Delete(&medicalrecordDatamodel.MedicalRecord{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrRecordNotFound
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

func checkDoctorExists(tx *gorm.DB, doctorID int64) error {
	var count int64
	if err := tx.Model(&staffDatamodel.Staff{}).Where("id = ?", doctorID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return internal.NewConstraintError("referenced doctor does not exist", internal.ErrCodeStaffNotFound)
	}
	return nil
}
