package models

import "time"

// Commission adalah bagian worker dari satu wash order yang selesai.
// Dibuat oleh WashService saat order complete, tidak pernah diedit manual.
type Commission struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	WashOrderID uint      `gorm:"not null;index" json:"wash_order_id"`
	WashOrder   WashOrder `gorm:"foreignKey:WashOrderID" json:"-"`
	WorkerID    uint      `gorm:"not null;index" json:"worker_id"`
	Worker      Worker    `gorm:"foreignKey:WorkerID" json:"worker"`
	Amount      int64     `gorm:"not null" json:"amount"` // COP utuh
	Pct         float64   `gorm:"not null" json:"pct"`    // snapshot persentase saat dibagikan
	EarnedAt    time.Time `gorm:"not null;index" json:"earned_at"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}
