package models

import "time"

// Status ticket parkir
const (
	TicketStatusPending   = "pending"
	TicketStatusActive    = "active"
	TicketStatusCompleted = "completed"
	TicketStatusCancelled = "cancelled"
)

// Prioritas ticket
const (
	TicketPriorityNormal = "normal"
	TicketPriorityHigh   = "high"
)

type Ticket struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Number     string    `gorm:"type:varchar(30);not null;uniqueIndex" json:"number"` // PARK-YYYYMMDD-HHMMSS-NNN
	SpotID     uint      `gorm:"not null;index" json:"spot_id"`
	Spot       Spot      `gorm:"foreignKey:SpotID" json:"spot"`
	CustomerID *uint     `gorm:"index" json:"customer_id,omitempty"`
	Customer   *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	EmployeeID *uint     `gorm:"index" json:"employee_id,omitempty"`
	Employee   *User     `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`

	// Snapshot kendaraan, dicopy saat entry (bukan referensi live)
	Plate        string `gorm:"type:varchar(10);not null" json:"plate"`
	VehicleMake  string `gorm:"type:varchar(50)" json:"vehicle_make"`
	VehicleColor string `gorm:"type:varchar(30)" json:"vehicle_color"`
	VehicleType  string `gorm:"type:varchar(20);not null;default:'car'" json:"vehicle_type"`

	EntryTime time.Time  `gorm:"not null;index" json:"entry_time"`
	ExitTime  *time.Time `json:"exit_time,omitempty"` // null selama ticket masih aktif

	// Breakdown harga dalam peso COP utuh (tidak ada sen)
	HourlyRate      int64 `gorm:"not null" json:"hourly_rate"` // snapshot rate spot saat entry
	DurationMinutes int64 `gorm:"not null;default:0" json:"duration_minutes"`
	BilledHours     int64 `gorm:"not null;default:0" json:"billed_hours"`
	Subtotal        int64 `gorm:"not null;default:0" json:"subtotal"`
	Tax             int64 `gorm:"not null;default:0" json:"tax"`
	Discount        int64 `gorm:"not null;default:0" json:"discount"`
	Total           int64 `gorm:"not null;default:0" json:"total"`

	Status   string `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	Priority string `gorm:"type:varchar(10);not null;default:'normal'" json:"priority"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
