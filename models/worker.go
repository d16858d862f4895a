package models

import "time"

// Worker adalah lavador yang menerima komisi per layanan.
type Worker struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	Phone         string    `gorm:"type:varchar(20)" json:"phone"`
	Document      string    `gorm:"type:varchar(20);uniqueIndex" json:"document"` // cedula
	CommissionPct float64   `gorm:"not null;default:40" json:"commission_pct"`   // persen dari harga layanan
	Active        bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}
