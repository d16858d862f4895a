package models

import "time"

type Receipt struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	PaymentID uint    `json:"payment_id"`
	Payment   Payment `gorm:"foreignKey:PaymentID" json:"payment"`
	Total     int64   `gorm:"not null" json:"total"`

	// Detail pembayaran
	PaymentMethod    string `gorm:"type:varchar(50);not null" json:"payment_method"`
	AmountPaid       int64  `gorm:"not null" json:"amount_paid"`
	Change           int64  `gorm:"not null" json:"change"`
	PaymentReference string `gorm:"type:varchar(100)" json:"payment_reference"`

	// Snapshot info bisnis supaya struk lama tidak berubah kalau config diedit
	BusinessName    string `gorm:"type:varchar(255);not null" json:"business_name"`
	BusinessAddress string `gorm:"type:varchar(255)" json:"business_address"`
	BusinessTaxID   string `gorm:"type:varchar(20)" json:"business_tax_id"`

	// Detail item disimpan di tabel terpisah
	ReceiptItems []ReceiptItem `gorm:"foreignKey:ReceiptID" json:"receipt_items"`

	ReceiptNumber string    `gorm:"type:varchar(30);uniqueIndex" json:"receipt_number"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}

type ReceiptItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	ReceiptID uint    `gorm:"not null" json:"receipt_id"`
	Receipt   Receipt `gorm:"-" json:"-"`

	Description string `gorm:"type:varchar(150);not null" json:"description"`
	Quantity    int    `gorm:"not null" json:"quantity"`
	UnitPrice   int64  `gorm:"not null" json:"unit_price"`
	Subtotal    int64  `gorm:"not null" json:"subtotal"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
