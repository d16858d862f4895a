package models

import "time"

// Spot kinds
const (
	SpotKindParking = "parking_spot"
	SpotKindWashBay = "wash_bay"
)

// Spot statuses
const (
	SpotStatusActive      = "active"
	SpotStatusMaintenance = "maintenance"
	SpotStatusDisabled    = "disabled"
)

// Spot adalah satu slot parkir atau satu bay cuci.
// IsOccupied dan CurrentTicketID hanya boleh diubah oleh TicketService/WashService,
// bukan oleh layer storage secara implisit.
type Spot struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Code            string     `gorm:"type:varchar(20);not null;uniqueIndex" json:"code"` // mis. "A-12", "BAY-3"
	Kind            string     `gorm:"type:varchar(20);not null;default:'parking_spot'" json:"kind"`
	Level           string     `gorm:"type:varchar(20)" json:"level"` // piso/zona
	Zone            string     `gorm:"type:varchar(50)" json:"zone"`
	VehicleType     string     `gorm:"type:varchar(20);not null;default:'car'" json:"vehicle_type"`
	HourlyRate      int64      `gorm:"not null;default:0" json:"hourly_rate"` // COP por hora
	Status          string     `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	IsOccupied      bool       `gorm:"not null;default:false;index" json:"is_occupied"`
	// Weak reference: ticket ID untuk parking spot, wash order ID untuk bay.
	// Lookup only, spot tidak memiliki ticket.
	CurrentTicketID *uint      `gorm:"index" json:"current_ticket_id,omitempty"`
	OccupiedSince   *time.Time `json:"occupied_since,omitempty"`
	CreatedAt       time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"not null" json:"updated_at"`
}
