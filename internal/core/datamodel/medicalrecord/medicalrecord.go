package medicalrecord

import "time"

type MedicalRecord struct {
	ID        int64     `gorm:"primaryKey"`
	PatientID int64     `gorm:"column:patient_id;not null"`
	DoctorID  int64     `gorm:"column:doctor_id;not null"`
	VisitDate time.Time `gorm:"column:visit_date;type:date;not null"`
	Diagnosis string    `gorm:"column:diagnosis"`
	Treatment string    `gorm:"column:treatment"`
	Notes     string    `gorm:"column:notes"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (MedicalRecord) TableName() string {
	return "medical_records"
}
