package patient

import (
	"time"

	patientDatamodel "github.com/nanihealth/clinic-management/internal/core/datamodel/patient"
)

type Patient struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Contact          string    `json:"contact"`
	Email            string    `json:"email,omitempty"`
	MedicalHistory   string    `json:"medical_history,omitempty"`
	AssignedDoctorID *int64    `json:"assigned_doctor_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// Row is the listing row with the assigned doctor's name pre-joined.
type Row struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Contact        string    `json:"contact"`
	Email          string    `json:"email,omitempty"`
	MedicalHistory string    `json:"medical_history,omitempty"`
	DoctorName     string    `json:"doctor_name,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func FromDataModel(d *patientDatamodel.Patient) *Patient {
	return &Patient{
		ID:               d.ID,
		Name:             d.Name,
		Contact:          d.Contact,
		Email:            d.Email,
		MedicalHistory:   d.MedicalHistory,
		AssignedDoctorID: d.AssignedDoctorID,
		CreatedAt:        d.CreatedAt,
	}
}
