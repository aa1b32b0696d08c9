package finance

import "time"

const TransactionTypePayment = "payment"

type FinancialRecord struct {
	ID              int64     `gorm:"primaryKey"`
	Date            time.Time `gorm:"column:date;type:date;not null"`
	Amount          float64   `gorm:"column:amount;not null"`
	Description     string    `gorm:"column:description"`
	PatientID       int64     `gorm:"column:patient_id;not null"`
	RecordedByID    *int64    `gorm:"column:recorded_by_id"`
	TransactionType string    `gorm:"column:transaction_type;default:payment"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (FinancialRecord) TableName() string {
	return "finances"
}
