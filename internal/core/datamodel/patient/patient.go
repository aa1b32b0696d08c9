package patient

import "time"

type Patient struct {
	ID               int64     `gorm:"primaryKey"`
	Name             string    `gorm:"column:name;not null"`
	Contact          string    `gorm:"column:contact;not null"`
	Email            string    `gorm:"column:email"`
	MedicalHistory   string    `gorm:"column:medical_history"`
	AssignedDoctorID *int64    `gorm:"column:assigned_doctor_id"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Patient) TableName() string {
	return "patients"
}
