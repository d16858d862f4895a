package models

import "time"

// RateCard adalah tarif default per tipe kendaraan.
// Dipakai sebagai fallback kalau spot tidak punya hourly rate sendiri.
type RateCard struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	VehicleType   string    `gorm:"type:varchar(20);not null;uniqueIndex" json:"vehicle_type"`
	HourlyRate    int64     `gorm:"not null" json:"hourly_rate"`
	DailyRate     int64     `gorm:"not null;default:0" json:"daily_rate"`
	OvernightRate int64     `gorm:"not null;default:0" json:"overnight_rate"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}
