package appointment

type CreateAppointmentDTO struct {
	PatientID    int64  `json:"patient_id"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Reason       string `json:"reason,omitempty"`
	AssignedToID *int64 `json:"assigned_to_id,omitempty"`
}

type UpdateAppointmentDTO struct {
	PatientID    int64  `json:"patient_id"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Reason       string `json:"reason,omitempty"`
	Status       string `json:"status"`
	AssignedToID *int64 `json:"assigned_to_id,omitempty"`
}
