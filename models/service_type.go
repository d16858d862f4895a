package models

import "time"

// ServiceType adalah katalog layanan cuci (mis. "Lavado basico", "Polichado").
type ServiceType struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	VehicleType string    `gorm:"type:varchar(20);not null;default:'car'" json:"vehicle_type"`
	Price       int64     `gorm:"not null" json:"price"` // COP utuh
	DurationEst int       `gorm:"not null;default:30" json:"duration_est"` // estimasi menit
	Description string    `gorm:"type:text" json:"description"`
	Active      bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
