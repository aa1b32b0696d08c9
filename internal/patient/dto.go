package patient

type CreatePatientDTO struct {
	Name             string `json:"name"`
	Contact          string `json:"contact"`
	Email            string `json:"email,omitempty"`
	MedicalHistory   string `json:"medical_history,omitempty"`
	AssignedDoctorID *int64 `json:"assigned_doctor_id,omitempty"`
}

type UpdatePatientDTO struct {
	Name             string `json:"name"`
	Contact          string `json:"contact"`
	Email            string `json:"email,omitempty"`
	MedicalHistory   string `json:"medical_history,omitempty"`
	AssignedDoctorID *int64 `json:"assigned_doctor_id,omitempty"`
}
