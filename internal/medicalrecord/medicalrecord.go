package medicalrecord

import (
	"time"

	medicalrecordDatamodel "github.com/nanihealth/clinic-management/internal/core/datamodel/medicalrecord"
)

const DateLayout = "2006-01-02"

type MedicalRecord struct {
	ID        int64     `json:"id"`
	PatientID int64     `json:"patient_id"`
	DoctorID  int64     `json:"doctor_id"`
	VisitDate time.Time `json:"visit_date"`
	Diagnosis string    `json:"diagnosis,omitempty"`
	Treatment string    `json:"treatment,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Row joins patient and doctor names for display. The doctor name resolves
// even when the staff row has since been deactivated.
type Row struct {
	ID          int64     `json:"id"`
	PatientName string    `json:"patient_name"`
	DoctorName  string    `json:"doctor_name"`
	VisitDate   time.Time `json:"visit_date"`
	Diagnosis   string    `json:"diagnosis,omitempty"`
	Treatment   string    `json:"treatment,omitempty"`
	Notes       string    `json:"notes,omitempty"`
}

func FromDataModel(d *medicalrecordDatamodel.MedicalRecord) *MedicalRecord {
	return &MedicalRecord{
		ID:        d.ID,
		PatientID: d.PatientID,
		DoctorID:  d.DoctorID,
		VisitDate: d.VisitDate,
		Diagnosis: d.Diagnosis,
		Treatment: d.Treatment,
		Notes:     d.Notes,
		CreatedAt: d.CreatedAt,
	}
}
