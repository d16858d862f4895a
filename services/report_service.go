package services

import (
	"database/sql"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/andresgluna/parkwash-app/models"
)

// ReportService berisi query read-only untuk dashboard dan laporan.
// Query di sini boleh jalan bersamaan dengan write dan mentolerir
// data yang sedikit basi (tidak ada blocking read).
type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// RevenueInRange menjumlahkan payment berstatus paid dengan paid_at
// di interval tertutup [start, end].
func (s *ReportService) RevenueInRange(start, end time.Time) (int64, error) {
	var total sql.NullInt64
	err := s.db.Model(&models.Payment{}).
		Where("status = ? AND paid_at >= ? AND paid_at <= ?", models.PaymentStatusPaid, start, end).
		Select("COALESCE(SUM(amount), 0)").
		Row().Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("revenue query: %w", err)
	}
	return total.Int64, nil
}

// AverageDurationMinutes menghitung rata-rata durasi ticket completed
// dengan entry_time di [start, end]. Tanpa data mengembalikan 0, bukan NaN.
func (s *ReportService) AverageDurationMinutes(start, end time.Time) (float64, error) {
	var avg sql.NullFloat64
	err := s.db.Model(&models.Ticket{}).
		Where("status = ? AND entry_time >= ? AND entry_time <= ?", models.TicketStatusCompleted, start, end).
		Select("AVG(duration_minutes)").
		Row().Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("average duration query: %w", err)
	}
	if !avg.Valid {
		return 0, nil
	}
	return avg.Float64, nil
}

// PeakHoursHistogram menghitung jumlah entry per jam (0-23).
// Bucketing dilakukan di Go supaya konsisten antara MySQL dan SQLite.
// Hasil selalu array 24 elemen, jam tanpa entry = 0.
func (s *ReportService) PeakHoursHistogram(start, end time.Time) ([24]int64, error) {
	var histogram [24]int64

	var entries []time.Time
	err := s.db.Model(&models.Ticket{}).
		Where("entry_time >= ? AND entry_time <= ?", start, end).
		Pluck("entry_time", &entries).Error
	if err != nil {
		return histogram, fmt.Errorf("histogram query: %w", err)
	}

	for _, entry := range entries {
		histogram[entry.Hour()]++
	}
	return histogram, nil
}

// TopEarnerResult adalah worker dengan komisi tertinggi di satu rentang.
type TopEarnerResult struct {
	WorkerID uint   `json:"worker_id"`
	Name     string `json:"name"`
	Total    int64  `json:"total"`
	Orders   int64  `json:"orders"`
}

// TopEarner mencari worker dengan total komisi terbesar di [start, end].
// Seri dipecahkan deterministik: worker ID terkecil menang.
// Tanpa komisi di rentang mengembalikan nil.
func (s *ReportService) TopEarner(start, end time.Time) (*TopEarnerResult, error) {
	var commissions []models.Commission
	err := s.db.Preload("Worker").
		Where("earned_at >= ? AND earned_at <= ?", start, end).
		Find(&commissions).Error
	if err != nil {
		return nil, fmt.Errorf("commission query: %w", err)
	}
	if len(commissions) == 0 {
		return nil, nil
	}

	totals := make(map[uint]*TopEarnerResult)
	for _, c := range commissions {
		r, ok := totals[c.WorkerID]
		if !ok {
			r = &TopEarnerResult{WorkerID: c.WorkerID, Name: c.Worker.Name}
			totals[c.WorkerID] = r
		}
		r.Total += c.Amount
		r.Orders++
	}

	var best *TopEarnerResult
	for _, r := range totals {
		if best == nil ||
			r.Total > best.Total ||
			(r.Total == best.Total && r.WorkerID < best.WorkerID) {
			best = r
		}
	}
	return best, nil
}
