package models

import (
	"time"
)

// MaintenanceLog mencatat pembersihan/perawatan satu spot atau bay.
type MaintenanceLog struct {
	ID        uint      `gorm:"primaryKey"`
	WorkerID  uint      `gorm:"not null"`
	Worker    Worker    `gorm:"foreignKey:WorkerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	SpotID    uint      `gorm:"not null"`
	Spot      Spot      `gorm:"foreignKey:SpotID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Status    string    `gorm:"type:varchar(15);not null;default:'pending'"`
	Notes     string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
