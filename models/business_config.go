package models

import "time"

// BusinessConfig adalah record tunggal per deployment.
// TaxRate dibaca oleh perhitungan tarif, field lain oleh rendering struk.
type BusinessConfig struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	Address       string    `gorm:"type:varchar(255)" json:"address"`
	Phone         string    `gorm:"type:varchar(20)" json:"phone"`
	TaxID         string    `gorm:"type:varchar(20)" json:"tax_id"` // NIT
	TaxRate       float64   `gorm:"not null;default:0.19" json:"tax_rate"`
	ReceiptHeader string    `gorm:"type:text" json:"receipt_header"`
	ReceiptFooter string    `gorm:"type:text" json:"receipt_footer"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}
