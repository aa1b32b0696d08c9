package appointment

import "time"

// Status values an appointment may hold. Writes reject anything else.
const (
	StatusScheduled = "Scheduled"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
	StatusNoShow    = "No-show"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

type Appointment struct {
	ID              int64     `gorm:"primaryKey"`
	PatientID       int64     `gorm:"column:patient_id;not null"`
	AppointmentDate time.Time `gorm:"column:appointment_date;not null"`
	Reason          string    `gorm:"column:reason"`
	Status          string    `gorm:"column:status;default:Scheduled"`
	AssignedToID    *int64    `gorm:"column:assigned_to_id"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Appointment) TableName() string {
	return "appointments"
}
