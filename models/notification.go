package models

import (
	"time"
)

// Notification untuk staf: dibuat manual lewat endpoint atau otomatis
// oleh reconciler saat menemukan spot yang tidak konsisten.
type Notification struct {
	ID        uint `gorm:"primaryKey"`
	UserID    *uint
	User      User      `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	Title     *string   `gorm:"type:varchar(100)"`
	Message   string    `gorm:"type:text;not null"`
	Category  string    `gorm:"type:varchar(30);default:'general'"` // general, reconciler, maintenance
	CreatedAt time.Time `gorm:"not null"`
}
