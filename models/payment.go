package models

import (
	"time"
)

// Payment adalah transaksi pembayaran untuk satu ticket parkir atau satu wash order.
// Tepat satu dari TicketID / WashOrderID yang terisi.
type Payment struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	TicketID     *uint      `json:"ticket_id,omitempty" gorm:"index"`
	Ticket       *Ticket    `json:"ticket,omitempty" gorm:"foreignKey:TicketID"`
	WashOrderID  *uint      `json:"wash_order_id,omitempty" gorm:"index"`
	WashOrder    *WashOrder `json:"wash_order,omitempty" gorm:"foreignKey:WashOrderID"`
	Amount       int64      `json:"amount"` // COP utuh
	Status       string     `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	Method       string     `json:"method" gorm:"type:varchar(20);not null;default:'cash'"`
	ReferenceID  string     `json:"reference_id" gorm:"type:varchar(40);index"`
	CashReceived int64      `json:"cash_received"` // uang diterima untuk pembayaran cash
	Change       int64      `json:"change"`        // kembalian
	PaidAt       *time.Time `json:"paid_at,omitempty"`
	VerifiedBy   *uint      `json:"verified_by,omitempty"` // kasir yang memverifikasi
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Status pembayaran
const (
	PaymentStatusPending   = "pending"
	PaymentStatusPaid      = "paid"
	PaymentStatusFailed    = "failed"
	PaymentStatusCancelled = "cancelled"
)

// Metode pembayaran
const (
	PaymentMethodCash     = "cash"
	PaymentMethodCard     = "card"
	PaymentMethodTransfer = "transfer"
)
