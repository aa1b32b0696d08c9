package medicalrecord

type CreateMedicalRecordDTO struct {
	PatientID int64  `json:"patient_id"`
	DoctorID  int64  `json:"doctor_id"`
	VisitDate string `json:"visit_date"`
	Diagnosis string `json:"diagnosis,omitempty"`
	Treatment string `json:"treatment,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

type UpdateMedicalRecordDTO struct {
	PatientID int64  `json:"patient_id"`
	DoctorID  int64  `json:"doctor_id"`
	VisitDate string `json:"visit_date"`
	Diagnosis string `json:"diagnosis,omitempty"`
	Treatment string `json:"treatment,omitempty"`
	Notes     string `json:"notes,omitempty"`
}
