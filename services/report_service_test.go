package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/andresgluna/parkwash-app/models"
)

func seedPaidPayment(t *testing.T, db *gorm.DB, amount int64, paidAt time.Time) {
	t.Helper()
	payment := models.Payment{
		Amount: amount,
		Status: models.PaymentStatusPaid,
		Method: models.PaymentMethodCash,
		PaidAt: &paidAt,
	}
	if err := db.Create(&payment).Error; err != nil {
		t.Fatalf("failed to seed payment: %v", err)
	}
}

func TestRevenueInRange(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewReportService(db)

	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	seedPaidPayment(t, db, 10000, day.Add(9*time.Hour))
	seedPaidPayment(t, db, 5000, day.Add(14*time.Hour))
	seedPaidPayment(t, db, 7000, day.Add(30*time.Hour)) // hari berikutnya

	// Payment pending tidak dihitung
	pendingAt := day.Add(10 * time.Hour)
	db.Create(&models.Payment{
		Amount: 99999,
		Status: models.PaymentStatusPending,
		Method: models.PaymentMethodCash,
		PaidAt: &pendingAt,
	})

	total, err := svc.RevenueInRange(day, day.Add(24*time.Hour-time.Second))
	assert.NoError(t, err)
	assert.Equal(t, int64(15000), total)
}

// Pendapatan dua rentang bersebelahan = pendapatan rentang gabungan.
func TestRevenueAdditivity(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewReportService(db)

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	for i := 0; i < 10; i++ {
		seedPaidPayment(t, db, int64(1000*(i+1)), base.Add(time.Duration(i*5)*time.Hour))
	}

	mid := base.Add(24 * time.Hour)
	end := base.Add(72 * time.Hour)

	first, err := svc.RevenueInRange(base, mid)
	assert.NoError(t, err)
	second, err := svc.RevenueInRange(mid.Add(time.Second), end)
	assert.NoError(t, err)
	whole, err := svc.RevenueInRange(base, end)
	assert.NoError(t, err)

	assert.Equal(t, whole, first+second)
}

func TestRevenueEmptyRange(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewReportService(db)

	total, err := svc.RevenueInRange(time.Now().Add(-time.Hour), time.Now())
	assert.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestAverageDurationMinutes(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewReportService(db)

	base := time.Date(2025, 6, 2, 8, 0, 0, 0, time.Local)

	// Tanpa data: 0, bukan NaN
	avg, err := svc.AverageDurationMinutes(base, base.Add(24*time.Hour))
	assert.NoError(t, err)
	assert.Equal(t, float64(0), avg)

	spot := seedSpot(t, db, "R-01", 3000)
	for _, minutes := range []int64{60, 120, 180} {
		db.Create(&models.Ticket{
			Number:          "PARK-R-" + time.Now().Format("150405") + "-" + string(rune('A'+minutes/60)),
			SpotID:          spot.ID,
			Plate:           "AVG001",
			EntryTime:       base,
			DurationMinutes: minutes,
			Status:          models.TicketStatusCompleted,
		})
	}
	// Ticket aktif tidak masuk rata-rata
	db.Create(&models.Ticket{
		Number:    "PARK-R-ACTIVE",
		SpotID:    spot.ID,
		Plate:     "AVG002",
		EntryTime: base,
		Status:    models.TicketStatusActive,
	})

	avg, err = svc.AverageDurationMinutes(base.Add(-time.Hour), base.Add(time.Hour))
	assert.NoError(t, err)
	assert.InDelta(t, 120.0, avg, 0.001)
}

func TestPeakHoursHistogram(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewReportService(db)

	day := time.Date(2025, 6, 3, 0, 0, 0, 0, time.Local)
	spot := seedSpot(t, db, "H-01", 3000)

	// Dua entry jam 9, satu jam 14
	for i, hour := range []int{9, 9, 14} {
		db.Create(&models.Ticket{
			Number:    "PARK-H-" + string(rune('A'+i)),
			SpotID:    spot.ID,
			Plate:     "HST001",
			EntryTime: day.Add(time.Duration(hour)*time.Hour + time.Duration(i)*time.Minute),
			Status:    models.TicketStatusCompleted,
		})
	}

	histogram, err := svc.PeakHoursHistogram(day, day.Add(24*time.Hour-time.Second))
	assert.NoError(t, err)
	assert.Len(t, histogram, 24)
	assert.Equal(t, int64(2), histogram[9])
	assert.Equal(t, int64(1), histogram[14])

	var total int64
	for _, count := range histogram {
		total += count
	}
	assert.Equal(t, int64(3), total)
}

func TestTopEarner(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewReportService(db)

	day := time.Date(2025, 6, 4, 0, 0, 0, 0, time.Local)

	// Tanpa komisi: nil, bukan error
	top, err := svc.TopEarner(day, day.Add(24*time.Hour))
	assert.NoError(t, err)
	assert.Nil(t, top)

	w1 := seedWorker(t, db, "Carlos", "CC-001", 40)
	w2 := seedWorker(t, db, "Andres", "CC-002", 40)
	w3 := seedWorker(t, db, "Miguel", "CC-003", 40)

	serviceType := seedServiceType(t, db, "Lavado basico", 25000)
	order := models.WashOrder{
		Number:        "WASH-TOP-001",
		ServiceTypeID: serviceType.ID,
		Plate:         "TOP001",
		Price:         serviceType.Price,
		Status:        models.WashStatusCompleted,
	}
	db.Create(&order)

	seed := func(workerID uint, amount int64) {
		db.Create(&models.Commission{
			WashOrderID: order.ID,
			WorkerID:    workerID,
			Amount:      amount,
			Pct:         40,
			EarnedAt:    day.Add(10 * time.Hour),
		})
	}
	seed(w1.ID, 5000)
	seed(w1.ID, 3000) // total w1 = 8000
	seed(w2.ID, 8000) // total w2 = 8000, seri dengan w1
	seed(w3.ID, 7000)

	top, err = svc.TopEarner(day, day.Add(24*time.Hour))
	assert.NoError(t, err)
	assert.NotNil(t, top)
	// Seri dipecahkan ke worker ID terkecil
	assert.Equal(t, w1.ID, top.WorkerID)
	assert.Equal(t, "Carlos", top.Name)
	assert.Equal(t, int64(8000), top.Total)
	assert.Equal(t, int64(2), top.Orders)

	// Komisi di luar rentang tidak dihitung
	seed(w3.ID, 100000)
	db.Model(&models.Commission{}).
		Where("worker_id = ? AND amount = ?", w3.ID, 100000).
		Update("earned_at", day.Add(48*time.Hour))

	top, err = svc.TopEarner(day, day.Add(24*time.Hour))
	assert.NoError(t, err)
	assert.Equal(t, w1.ID, top.WorkerID)
}

func TestReconcilerSweep(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewTicketService(db)
	reconciler := NewReconciler(db)

	healthy := seedSpot(t, db, "S-OK", 3000)
	_, err := svc.Create(healthy.ID, VehicleSnapshot{Plate: "OKK111"}, nil, nil)
	assert.NoError(t, err)

	// Spot stuck: menunjuk ticket yang sudah completed
	stuck := seedSpot(t, db, "S-STUCK", 3000)
	ticket, err := svc.Create(stuck.ID, VehicleSnapshot{Plate: "STK111"}, nil, nil)
	assert.NoError(t, err)
	db.Model(&models.Ticket{}).Where("id = ?", ticket.ID).
		Update("status", models.TicketStatusCompleted)

	// Spot occupied tanpa occupant sama sekali
	orphan := seedSpot(t, db, "S-ORPHAN", 3000)
	db.Model(&models.Spot{}).Where("id = ?", orphan.ID).
		Update("is_occupied", true)

	repaired := reconciler.Sweep()
	assert.Equal(t, 2, repaired)

	// Struct baru per lookup: primary key yang tertinggal di struct lama
	// ikut masuk WHERE clause dan membuat query berikutnya salah sasaran
	var healthyAfter models.Spot
	db.First(&healthyAfter, healthy.ID)
	assert.True(t, healthyAfter.IsOccupied) // spot sehat tidak disentuh

	var stuckAfter models.Spot
	db.First(&stuckAfter, stuck.ID)
	assert.False(t, stuckAfter.IsOccupied)

	var orphanAfter models.Spot
	db.First(&orphanAfter, orphan.ID)
	assert.False(t, orphanAfter.IsOccupied)

	// Notifikasi dibuat untuk tiap perbaikan
	var notifCount int64
	db.Model(&models.Notification{}).Count(&notifCount)
	assert.Equal(t, int64(2), notifCount)
}
