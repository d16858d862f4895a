package models

import "time"

// Status wash order
const (
	WashStatusPending    = "pending"
	WashStatusInProgress = "in_progress"
	WashStatusCompleted  = "completed"
	WashStatusCancelled  = "cancelled"
)

// WashOrder adalah satu layanan cuci untuk satu kendaraan.
type WashOrder struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	Number        string      `gorm:"type:varchar(30);not null;uniqueIndex" json:"number"` // WASH-YYYYMMDD-HHMMSS-NNN
	ServiceTypeID uint        `gorm:"not null" json:"service_type_id"`
	ServiceType   ServiceType `gorm:"foreignKey:ServiceTypeID" json:"service_type"`
	BayID         *uint       `gorm:"index" json:"bay_id,omitempty"`
	Bay           *Spot       `gorm:"foreignKey:BayID" json:"bay,omitempty"`
	CustomerID    *uint       `gorm:"index" json:"customer_id,omitempty"`
	Customer      *Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`

	// Snapshot kendaraan
	Plate        string `gorm:"type:varchar(10);not null" json:"plate"`
	VehicleMake  string `gorm:"type:varchar(50)" json:"vehicle_make"`
	VehicleColor string `gorm:"type:varchar(30)" json:"vehicle_color"`
	VehicleType  string `gorm:"type:varchar(20);not null;default:'car'" json:"vehicle_type"`

	StartTime      *time.Time `json:"start_time,omitempty"`
	CompletionTime *time.Time `json:"completion_time,omitempty"`

	// Harga dalam peso COP utuh; Price = snapshot harga service saat order dibuat
	Price    int64 `gorm:"not null" json:"price"`
	Tax      int64 `gorm:"not null;default:0" json:"tax"`
	Discount int64 `gorm:"not null;default:0" json:"discount"`
	Tip      int64 `gorm:"not null;default:0" json:"tip"`
	Total    int64 `gorm:"not null;default:0" json:"total"`

	Status   string `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Priority string `gorm:"type:varchar(10);not null;default:'normal'" json:"priority"`

	Workers []WashOrderWorker `gorm:"foreignKey:WashOrderID" json:"workers"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// WashOrderWorker adalah assignment worker ke satu order (many-to-many historis).
type WashOrderWorker struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	WashOrderID uint      `gorm:"not null;index" json:"wash_order_id"`
	WorkerID    uint      `gorm:"not null;index" json:"worker_id"`
	Worker      Worker    `gorm:"foreignKey:WorkerID" json:"worker"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}
