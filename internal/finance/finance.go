package finance

import (
	"time"

	financeDatamodel "github.com/nanihealth/clinic-management/internal/core/datamodel/finance"
)

const DateLayout = "2006-01-02"

type FinancialRecord struct {
	ID              int64     `json:"id"`
	Date            time.Time `json:"date"`
	Amount          float64   `json:"amount"`
	Description     string    `json:"description,omitempty"`
	PatientID       int64     `json:"patient_id"`
	RecordedByID    *int64    `json:"recorded_by_id,omitempty"`
	TransactionType string    `json:"transaction_type"`
	CreatedAt       time.Time `json:"created_at"`
}

// Row joins the patient name and the recorder's full name for display.
type Row struct {
	ID              int64     `json:"id"`
	Date            time.Time `json:"date"`
	Amount          float64   `json:"amount"`
	Description     string    `json:"description,omitempty"`
	PatientName     string    `json:"patient_name"`
	RecordedByName  string    `json:"recorded_by_name,omitempty"`
	TransactionType string    `json:"transaction_type"`
}

func FromDataModel(d *financeDatamodel.FinancialRecord) *FinancialRecord {
	return &FinancialRecord{
		ID:              d.ID,
		Date:            d.Date,
		Amount:          d.Amount,
		Description:     d.Description,
		PatientID:       d.PatientID,
		RecordedByID:    d.RecordedByID,
		TransactionType: d.TransactionType,
		CreatedAt:       d.CreatedAt,
	}
}
