package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/andresgluna/parkwash-app/billing"
	"github.com/andresgluna/parkwash-app/models"
)

func TestTicketCreateClaimsSpot(t *testing.T) {
	db := setupServiceTestDB(t)
	spot := seedSpot(t, db, "A-01", 3000)
	svc := NewTicketService(db)

	ticket, err := svc.Create(spot.ID, VehicleSnapshot{Plate: "abc123", Make: "Renault", Color: "rojo"}, nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, models.TicketStatusActive, ticket.Status)
	assert.True(t, strings.HasPrefix(ticket.Number, "PARK-"))
	assert.Equal(t, "ABC123", ticket.Plate) // plat dinormalisasi uppercase
	assert.Equal(t, int64(3000), ticket.HourlyRate)

	var reloaded models.Spot
	db.First(&reloaded, spot.ID)
	assert.True(t, reloaded.IsOccupied)
	assert.NotNil(t, reloaded.CurrentTicketID)
	assert.Equal(t, ticket.ID, *reloaded.CurrentTicketID)
	assert.NotNil(t, reloaded.OccupiedSince)
}

func TestTicketCreateSpotUnavailable(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewTicketService(db)

	occupied := seedSpot(t, db, "A-02", 3000)
	_, err := svc.Create(occupied.ID, VehicleSnapshot{Plate: "AAA111"}, nil, nil)
	assert.NoError(t, err)

	// Spot yang sudah terisi
	_, err = svc.Create(occupied.ID, VehicleSnapshot{Plate: "BBB222"}, nil, nil)
	assert.ErrorIs(t, err, billing.ErrSpotUnavailable)

	// Spot dalam maintenance
	maintenance := seedSpot(t, db, "A-03", 3000)
	db.Model(&models.Spot{}).Where("id = ?", maintenance.ID).
		Update("status", models.SpotStatusMaintenance)
	_, err = svc.Create(maintenance.ID, VehicleSnapshot{Plate: "CCC333"}, nil, nil)
	assert.ErrorIs(t, err, billing.ErrSpotUnavailable)

	// Spot yang tidak ada
	_, err = svc.Create(99999, VehicleSnapshot{Plate: "DDD444"}, nil, nil)
	assert.ErrorIs(t, err, billing.ErrSpotUnavailable)
}

// Serangkaian create pada spot yang sama: tepat satu yang boleh sukses,
// sisanya harus gagal dengan ErrSpotUnavailable.
func TestTicketCreateOnlyOneActivePerSpot(t *testing.T) {
	db := setupServiceTestDB(t)
	spot := seedSpot(t, db, "A-04", 3000)
	svc := NewTicketService(db)

	succeeded := 0
	for i := 0; i < 5; i++ {
		_, err := svc.Create(spot.ID, VehicleSnapshot{Plate: "ZZZ999"}, nil, nil)
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, billing.ErrSpotUnavailable)
		}
	}
	assert.Equal(t, 1, succeeded)
}

func TestTicketCreateRateCardFallback(t *testing.T) {
	db := setupServiceTestDB(t)
	db.Create(&models.RateCard{VehicleType: "moto", HourlyRate: 1500})
	spot := seedSpot(t, db, "M-01", 0)
	svc := NewTicketService(db)

	ticket, err := svc.Create(spot.ID, VehicleSnapshot{Plate: "MOT01A", Type: "moto"}, nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(1500), ticket.HourlyRate)
}

func TestTicketExit(t *testing.T) {
	db := setupServiceTestDB(t)
	spot := seedSpot(t, db, "B-01", 3000)
	svc := NewTicketService(db)

	ticket, err := svc.Create(spot.ID, VehicleSnapshot{Plate: "XYZ789"}, nil, nil)
	assert.NoError(t, err)

	// Mundurkan entry time 2.5 jam: harus jadi 3 jam tagihan
	entry := time.Now().Add(-150 * time.Minute)
	db.Model(&models.Ticket{}).Where("id = ?", ticket.ID).
		Update("entry_time", entry)

	closed, err := svc.Exit(ticket.ID, PaymentInfo{Method: "cash", CashReceived: 11000})
	assert.NoError(t, err)
	assert.Equal(t, models.TicketStatusCompleted, closed.Status)
	assert.Equal(t, int64(3), closed.BilledHours)
	assert.Equal(t, int64(9000), closed.Subtotal)
	assert.Equal(t, int64(1710), closed.Tax)
	assert.Equal(t, int64(10710), closed.Total)
	assert.NotNil(t, closed.ExitTime)

	// Spot dilepaskan
	var reloaded models.Spot
	db.First(&reloaded, spot.ID)
	assert.False(t, reloaded.IsOccupied)
	assert.Nil(t, reloaded.CurrentTicketID)

	// Payment dibuat paid dengan kembalian
	var payment models.Payment
	assert.NoError(t, db.Where("ticket_id = ?", closed.ID).First(&payment).Error)
	assert.Equal(t, models.PaymentStatusPaid, payment.Status)
	assert.Equal(t, int64(10710), payment.Amount)
	assert.Equal(t, int64(290), payment.Change)
	assert.NotEmpty(t, payment.ReferenceID)
}

// Exit kedua harus ErrInvalidState dan tidak memutasi apapun.
func TestTicketExitTwice(t *testing.T) {
	db := setupServiceTestDB(t)
	spot := seedSpot(t, db, "B-02", 3000)
	svc := NewTicketService(db)

	ticket, err := svc.Create(spot.ID, VehicleSnapshot{Plate: "DBL001"}, nil, nil)
	assert.NoError(t, err)

	first, err := svc.Exit(ticket.ID, PaymentInfo{})
	assert.NoError(t, err)

	_, err = svc.Exit(ticket.ID, PaymentInfo{})
	assert.ErrorIs(t, err, billing.ErrInvalidState)

	var reloaded models.Ticket
	db.First(&reloaded, ticket.ID)
	assert.Equal(t, first.Total, reloaded.Total)
	assert.Equal(t, first.ExitTime.Unix(), reloaded.ExitTime.Unix())

	var paymentCount int64
	db.Model(&models.Payment{}).Where("ticket_id = ?", ticket.ID).Count(&paymentCount)
	assert.Equal(t, int64(1), paymentCount)
}

func TestTicketExitNotFound(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewTicketService(db)

	_, err := svc.Exit(12345, PaymentInfo{})
	assert.ErrorIs(t, err, billing.ErrTicketNotFound)
}

// Diskon lebih besar dari total ditolak, ticket tetap aktif dan spot tetap terisi.
func TestTicketExitDiscountRejected(t *testing.T) {
	db := setupServiceTestDB(t)
	spot := seedSpot(t, db, "B-03", 3000)
	svc := NewTicketService(db)

	ticket, err := svc.Create(spot.ID, VehicleSnapshot{Plate: "DSC001"}, nil, nil)
	assert.NoError(t, err)

	_, err = svc.Exit(ticket.ID, PaymentInfo{Discount: 1000000})
	assert.ErrorIs(t, err, billing.ErrInvalidDiscount)

	var reloaded models.Ticket
	db.First(&reloaded, ticket.ID)
	assert.Equal(t, models.TicketStatusActive, reloaded.Status)
	assert.Nil(t, reloaded.ExitTime)

	var spotReloaded models.Spot
	db.First(&spotReloaded, spot.ID)
	assert.True(t, spotReloaded.IsOccupied)
}

func TestTicketCancel(t *testing.T) {
	db := setupServiceTestDB(t)
	spot := seedSpot(t, db, "C-01", 3000)
	svc := NewTicketService(db)

	ticket, err := svc.Create(spot.ID, VehicleSnapshot{Plate: "CNL001"}, nil, nil)
	assert.NoError(t, err)

	cancelled, err := svc.Cancel(ticket.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.TicketStatusCancelled, cancelled.Status)
	assert.Equal(t, int64(0), cancelled.Total) // tanpa tarif

	var reloaded models.Spot
	db.First(&reloaded, spot.ID)
	assert.False(t, reloaded.IsOccupied)

	// Cancel kedua ditolak
	_, err = svc.Cancel(ticket.ID)
	assert.ErrorIs(t, err, billing.ErrInvalidState)
}

// Setelah exit, spot bisa langsung dipakai ticket baru.
func TestTicketSpotReusableAfterExit(t *testing.T) {
	db := setupServiceTestDB(t)
	spot := seedSpot(t, db, "D-01", 2000)
	svc := NewTicketService(db)

	first, err := svc.Create(spot.ID, VehicleSnapshot{Plate: "ONE111"}, nil, nil)
	assert.NoError(t, err)
	_, err = svc.Exit(first.ID, PaymentInfo{})
	assert.NoError(t, err)

	second, err := svc.Create(spot.ID, VehicleSnapshot{Plate: "TWO222"}, nil, nil)
	assert.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	var reloaded models.Spot
	db.First(&reloaded, spot.ID)
	assert.True(t, reloaded.IsOccupied)
	assert.Equal(t, second.ID, *reloaded.CurrentTicketID)
}
