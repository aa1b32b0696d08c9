package finance

type RecordTransactionDTO struct {
	Date            string  `json:"date"`
	Amount          float64 `json:"amount"`
	Description     string  `json:"description,omitempty"`
	PatientID       int64   `json:"patient_id"`
	RecordedByID    *int64  `json:"recorded_by_id,omitempty"`
	TransactionType string  `json:"transaction_type,omitempty"`
}

type UpdateTransactionDTO struct {
	Date            string  `json:"date"`
	Amount          float64 `json:"amount"`
	Description     string  `json:"description,omitempty"`
	PatientID       int64   `json:"patient_id"`
	RecordedByID    *int64  `json:"recorded_by_id,omitempty"`
	TransactionType string  `json:"transaction_type,omitempty"`
}
