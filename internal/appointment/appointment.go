package appointment

import (
	"time"

	appointmentDatamodel "github.com/nanihealth/clinic-management/internal/core/datamodel/appointment"
)

// Layouts accepted by the scheduling operations. Date and time arrive as
// separate fields and are combined into one instant, matching the way the
// booking form captures them.
const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04"
	DateTimeLayout = "2006-01-02 15:04"
)

type Appointment struct {
	ID              int64     `json:"id"`
	PatientID       int64     `json:"patient_id"`
	AppointmentDate time.Time `json:"appointment_date"`
	Reason          string    `json:"reason,omitempty"`
	Status          string    `json:"status"`
	AssignedToID    *int64    `json:"assigned_to_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// Row is the listing row with patient and staff names pre-joined.
type Row struct {
	ID              int64     `json:"id"`
	PatientName     string    `json:"patient_name"`
	AppointmentDate time.Time `json:"appointment_date"`
	Reason          string    `json:"reason,omitempty"`
	Status          string    `json:"status"`
	StaffName       string    `json:"staff_name,omitempty"`
}

// Filter narrows a listing. Zero values mean "no filter"; both filters
// combine with AND. Date compares the calendar date portion only.
type Filter struct {
	Date    string
	StaffID *int64
}

func FromDataModel(d *appointmentDatamodel.Appointment) *Appointment {
	return &Appointment{
		ID:              d.ID,
		PatientID:       d.PatientID,
		AppointmentDate: d.AppointmentDate,
		Reason:          d.Reason,
		Status:          d.Status,
		AssignedToID:    d.AssignedToID,
		CreatedAt:       d.CreatedAt,
	}
}
