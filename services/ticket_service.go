package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andresgluna/parkwash-app/billing"
	"github.com/andresgluna/parkwash-app/models"
	"github.com/andresgluna/parkwash-app/utils"
)

const ticketNumberRetries = 5

// VehicleSnapshot adalah data kendaraan yang dicopy ke ticket saat entry.
type VehicleSnapshot struct {
	Plate string `json:"plate" binding:"required"`
	Make  string `json:"make"`
	Color string `json:"color"`
	Type  string `json:"type"`
}

// PaymentInfo adalah data pembayaran saat exit/complete.
type PaymentInfo struct {
	Method       string `json:"method"`
	Discount     int64  `json:"discount"`
	CashReceived int64  `json:"cash_received"`
	VerifiedBy   *uint  `json:"-"`
}

// TicketService mengelola state machine ticket parkir:
// pending -> active -> completed, cancelled dari pending/active.
// Semua mutasi spot+ticket dilakukan di dalam satu transaction.
type TicketService struct {
	db *gorm.DB
}

func NewTicketService(db *gorm.DB) *TicketService {
	return &TicketService{db: db}
}

// Create membuka ticket baru untuk satu spot.
// Klaim spot memakai conditional update (bukan check-then-act) supaya dua
// request pada spot yang sama tidak bisa sama-sama sukses.
func (s *TicketService) Create(spotID uint, vehicle VehicleSnapshot, employeeID, customerID *uint) (*models.Ticket, error) {
	var spot models.Spot
	if err := s.db.First(&spot, spotID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("spot %d: %w", spotID, billing.ErrSpotUnavailable)
		}
		return nil, fmt.Errorf("load spot %d: %w", spotID, err)
	}

	if vehicle.Type == "" {
		vehicle.Type = spot.VehicleType
	}

	rate := spot.HourlyRate
	if rate == 0 {
		// Fallback ke rate card per tipe kendaraan
		var card models.RateCard
		if err := s.db.Where("vehicle_type = ?", vehicle.Type).First(&card).Error; err == nil {
			rate = card.HourlyRate
		}
	}

	now := time.Now()
	var ticket models.Ticket

	err := s.db.Transaction(func(tx *gorm.DB) error {
		ticket = models.Ticket{
			SpotID:       spotID,
			CustomerID:   customerID,
			EmployeeID:   employeeID,
			Plate:        strings.ToUpper(vehicle.Plate),
			VehicleMake:  vehicle.Make,
			VehicleColor: vehicle.Color,
			VehicleType:  vehicle.Type,
			EntryTime:    now,
			HourlyRate:   rate,
			Status:       models.TicketStatusActive,
			Priority:     models.TicketPriorityNormal,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		// Nomor ticket: unique index + retry dengan suffix random baru.
		// Tabrakan hanya mungkin kalau dua entry terjadi di detik yang sama.
		var created bool
		for attempt := 0; attempt < ticketNumberRetries; attempt++ {
			ticket.ID = 0
			ticket.Number = utils.GenerateTicketNumber("PARK", now)
			if err := tx.Create(&ticket).Error; err != nil {
				if isDuplicateKeyError(err) {
					continue
				}
				return fmt.Errorf("create ticket: %w", err)
			}
			created = true
			break
		}
		if !created {
			return billing.ErrDuplicateTicketNumber
		}

		// Klaim spot secara atomik: hanya sukses kalau spot masih bebas dan aktif
		res := tx.Model(&models.Spot{}).
			Where("id = ? AND is_occupied = ? AND status = ?", spotID, false, models.SpotStatusActive).
			Updates(map[string]interface{}{
				"is_occupied":       true,
				"current_ticket_id": ticket.ID,
				"occupied_since":    now,
				"updated_at":        now,
			})
		if res.Error != nil {
			return fmt.Errorf("claim spot %s: %w", spot.Code, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("spot %s: %w", spot.Code, billing.ErrSpotUnavailable)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Ticket %s opened for plate %s on spot %s", ticket.Number, ticket.Plate, spot.Code)
	return &ticket, nil
}

// Exit menutup ticket: hitung durasi + tarif dari rate snapshot saat entry,
// tandai completed dan lepaskan spot dalam satu transaction.
// Ticket yang sudah completed tidak dimutasi sama sekali (ErrInvalidState).
func (s *TicketService) Exit(ticketID uint, pay PaymentInfo) (*models.Ticket, error) {
	now := time.Now()
	var ticket models.Ticket
	var payment models.Payment

	taxRate := s.taxRate()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&ticket, ticketID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("ticket %d: %w", ticketID, billing.ErrTicketNotFound)
			}
			return fmt.Errorf("load ticket %d: %w", ticketID, err)
		}

		if ticket.Status != models.TicketStatusActive {
			return fmt.Errorf("ticket %s is %s: %w", ticket.Number, ticket.Status, billing.ErrInvalidState)
		}

		minutes, err := billing.ElapsedMinutes(ticket.EntryTime, now)
		if err != nil {
			return fmt.Errorf("ticket %s: %w", ticket.Number, err)
		}

		hours := billing.BilledHours(minutes)
		fee, err := billing.CalculateFee(hours, ticket.HourlyRate, taxRate, pay.Discount)
		if err != nil {
			return fmt.Errorf("ticket %s: %w", ticket.Number, err)
		}

		ticket.ExitTime = &now
		ticket.DurationMinutes = minutes
		ticket.BilledHours = hours
		ticket.Subtotal = fee.Subtotal
		ticket.Tax = fee.Tax
		ticket.Discount = fee.Discount
		ticket.Total = fee.Total
		ticket.Status = models.TicketStatusCompleted
		ticket.UpdatedAt = now

		if err := tx.Save(&ticket).Error; err != nil {
			return fmt.Errorf("complete ticket %s: %w", ticket.Number, err)
		}

		payment = buildPayment(pay, fee.Total, now)
		payment.TicketID = &ticket.ID
		if err := tx.Create(&payment).Error; err != nil {
			return fmt.Errorf("create payment for ticket %s: %w", ticket.Number, err)
		}

		// Lepaskan spot hanya kalau masih menunjuk ke ticket ini
		res := tx.Model(&models.Spot{}).
			Where("id = ? AND current_ticket_id = ?", ticket.SpotID, ticket.ID).
			Updates(map[string]interface{}{
				"is_occupied":       false,
				"current_ticket_id": nil,
				"occupied_since":    nil,
				"updated_at":        now,
			})
		if res.Error != nil {
			return fmt.Errorf("release spot for ticket %s: %w", ticket.Number, res.Error)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Ticket %s closed: %d min, %d h billed, total %s",
		ticket.Number, ticket.DurationMinutes, ticket.BilledHours, utils.FormatCOP(ticket.Total))
	return &ticket, nil
}

// Cancel membatalkan ticket pending/active tanpa tarif dan melepaskan spot.
func (s *TicketService) Cancel(ticketID uint) (*models.Ticket, error) {
	now := time.Now()
	var ticket models.Ticket

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&ticket, ticketID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("ticket %d: %w", ticketID, billing.ErrTicketNotFound)
			}
			return fmt.Errorf("load ticket %d: %w", ticketID, err)
		}

		if ticket.Status != models.TicketStatusActive && ticket.Status != models.TicketStatusPending {
			return fmt.Errorf("ticket %s is %s: %w", ticket.Number, ticket.Status, billing.ErrInvalidState)
		}

		ticket.Status = models.TicketStatusCancelled
		ticket.UpdatedAt = now
		if err := tx.Save(&ticket).Error; err != nil {
			return fmt.Errorf("cancel ticket %s: %w", ticket.Number, err)
		}

		res := tx.Model(&models.Spot{}).
			Where("id = ? AND current_ticket_id = ?", ticket.SpotID, ticket.ID).
			Updates(map[string]interface{}{
				"is_occupied":       false,
				"current_ticket_id": nil,
				"occupied_since":    nil,
				"updated_at":        now,
			})
		if res.Error != nil {
			return fmt.Errorf("release spot for ticket %s: %w", ticket.Number, res.Error)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Ticket %s cancelled", ticket.Number)
	return &ticket, nil
}

// taxRate membaca tax rate dari BusinessConfig, default 19% kalau belum di-set.
func (s *TicketService) taxRate() float64 {
	var cfg models.BusinessConfig
	if err := s.db.First(&cfg).Error; err != nil {
		return 0.19
	}
	return cfg.TaxRate
}

func buildPayment(pay PaymentInfo, total int64, now time.Time) models.Payment {
	method := pay.Method
	if method == "" {
		method = models.PaymentMethodCash
	}

	payment := models.Payment{
		Amount:      total,
		Status:      models.PaymentStatusPaid,
		Method:      method,
		ReferenceID: uuid.NewString(),
		PaidAt:      &now,
		VerifiedBy:  pay.VerifiedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if method == models.PaymentMethodCash && pay.CashReceived >= total {
		payment.CashReceived = pay.CashReceived
		payment.Change = pay.CashReceived - total
	}

	return payment
}

// isDuplicateKeyError mengenali pelanggaran unique index di MySQL dan SQLite.
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
