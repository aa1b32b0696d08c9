package sqlite

import (
	"gorm.io/gorm"

	"github.com/nanihealth/clinic-management/internal"
	"github.com/nanihealth/clinic-management/internal/appointment"
	appointmentDatamodel "github.com/nanihealth/clinic-management/internal/core/datamodel/appointment"
	patientDatamodel "github.com/nanihealth/clinic-management/internal/core/datamodel/patient"
	staffDatamodel "github.com/nanihealth/clinic-management/internal/core/datamodel/staff"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) appointment.RepositoryAPI {
	return &AppointmentRepository{db: db}
}

const listColumns = "appointments.id, patients.name AS patient_name, " +
	"appointments.appointment_date, appointments.reason, appointments.status, " +
	"COALESCE(staff.full_name, '') AS staff_name"

func (r *AppointmentRepository) Create(data *appointmentDatamodel.Appointment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := checkPatientExists(tx, data.PatientID); err != nil {
			return err
		}
		if err := checkStaffExists(tx, data.AssignedToID); err != nil {
			return err
		}
		if !appointmentDatamodel.ValidStatus(data.Status) {
			return internal.NewConstraintError("invalid appointment status", internal.ErrCodeInvalidStatus)
		}
		return tx.Create(data).Error
	})
}

func (r *AppointmentRepository) GetByID(id int64) (*appointmentDatamodel.Appointment, error) {
	var data appointmentDatamodel.Appointment
	err := r.db.Where("id = ?", id).First(&data).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrAppointmentNotFound
		}
		return nil, err
	}
	return &data, nil
}

func (r *AppointmentRepository) List(filter appointment.Filter) ([]*appointment.Row, error) {
	q := r.db.Table("appointments").
		Select(listColumns).
		Joins("JOIN patients ON patients.id = appointments.patient_id").
		Joins("LEFT JOIN staff ON staff.id = appointments.assigned_to_id")

	if filter.Date != "" {
		q = q.Where("DATE(appointments.appointment_date) = ?", filter.Date)
	}
	if filter.StaffID != nil {
		q = q.Where("appointments.assigned_to_id = ?", *filter.StaffID)
	}

	var rows []*appointment.Row
	err := q.Order("appointments.appointment_date ASC").Scan(&rows).Error
	return rows, err
}

func (r *AppointmentRepository) ListInRange(startDate, endDate string) ([]*appointment.Row, error) {
	var rows []*appointment.Row
	err := r.db.Table("appointments").
		Select(listColumns).
		Joins("JOIN patients ON patients.id = appointments.patient_id").
		Joins("LEFT JOIN staff ON staff.id = appointments.assigned_to_id").
		Where("DATE(appointments.appointment_date) BETWEEN ? AND ?", startDate, endDate).
		Order("appointments.appointment_date ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *AppointmentRepository) Update(data *appointmentDatamodel.Appointment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing appointmentDatamodel.Appointment
		if err := tx.Where("id = ?", data.ID).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return internal.ErrAppointmentNotFound
			}
			return err
		}
		if err := checkPatientExists(tx, data.PatientID); err != nil {
			return err
		}
		if err := checkStaffExists(tx, data.AssignedToID); err != nil {
			return err
		}
		if !appointmentDatamodel.ValidStatus(data.Status) {
			return internal.NewConstraintError("invalid appointment status", internal.ErrCodeInvalidStatus)
		}
		return tx.Model(&appointmentDatamodel.Appointment{}).Where("id = ?", data.ID).
			Updates(map[string]interface{}{
				"patient_id":       data.PatientID,
				"appointment_date": data.AppointmentDate,
				"reason":           data.Reason,
				"status":           data.Status,
				"assigned_to_id":   data.AssignedToID,
			}).Error
	})
}

func (r *AppointmentRepository) Delete(id int64) error {
	res := r.db.Delete(&appointmentDatamodel.Appointment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrAppointmentNotFound
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

func checkStaffExists(tx *gorm.DB, staffID *int64) error {
	if staffID == nil {
		return nil
	}
	var count int64
	if err := tx.Model(&staffDatamodel.Staff{}).Where("id = ?", *staffID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return internal.NewConstraintError("assigned staff member does not exist", internal.ErrCodeStaffNotFound)
	}
	return nil
}
