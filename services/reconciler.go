package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/andresgluna/parkwash-app/models"
	"github.com/andresgluna/parkwash-app/ops"
	"github.com/andresgluna/parkwash-app/utils"
)

// Reconciler adalah sweep periodik yang mencari spot yang masih ditandai
// occupied padahal ticket/order yang dirujuknya sudah selesai atau hilang,
// lalu melepaskannya. Ini kompensasi kalau ada partial failure di luar
// jalur transaction (mis. restore backup, edit manual).
type Reconciler struct {
	DB       *gorm.DB
	StopChan chan struct{}
	Interval time.Duration
}

func NewReconciler(db *gorm.DB) *Reconciler {
	return &Reconciler{
		DB:       db,
		StopChan: make(chan struct{}),
		Interval: 1 * time.Minute,
	}
}

func (r *Reconciler) Start() {
	go func() {
		ticker := time.NewTicker(r.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				r.Sweep()
			case <-r.StopChan:
				return
			}
		}
	}()
	utils.InfoLogger.Println("Spot reconciler started")
}

func (r *Reconciler) Stop() {
	close(r.StopChan)
}

// Sweep memeriksa semua spot occupied dan melepaskan yang tidak konsisten.
// Mengembalikan jumlah spot yang diperbaiki.
func (r *Reconciler) Sweep() int {
	var spots []models.Spot
	if err := r.DB.Where("is_occupied = ?", true).Find(&spots).Error; err != nil {
		utils.ErrorLogger.Printf("Reconciler: error fetching occupied spots: %v", err)
		return 0
	}

	repaired := 0
	for _, spot := range spots {
		if r.shouldRelease(spot) {
			if err := r.release(spot); err != nil {
				utils.ErrorLogger.Printf("Reconciler: error releasing spot %s: %v", spot.Code, err)
				continue
			}
			repaired++
		}
	}

	if repaired > 0 {
		utils.InfoLogger.Printf("Reconciler: repaired %d inconsistent spot(s)", repaired)
	}
	return repaired
}

// shouldRelease -> true kalau occupant spot sudah tidak aktif lagi.
func (r *Reconciler) shouldRelease(spot models.Spot) bool {
	if spot.CurrentTicketID == nil {
		// Occupied tanpa occupant sama sekali
		return true
	}

	if spot.Kind == models.SpotKindWashBay {
		var order models.WashOrder
		if err := r.DB.First(&order, *spot.CurrentTicketID).Error; err != nil {
			return errors.Is(err, gorm.ErrRecordNotFound)
		}
		return order.Status == models.WashStatusCompleted || order.Status == models.WashStatusCancelled
	}

	var ticket models.Ticket
	if err := r.DB.First(&ticket, *spot.CurrentTicketID).Error; err != nil {
		return errors.Is(err, gorm.ErrRecordNotFound)
	}
	return ticket.Status == models.TicketStatusCompleted || ticket.Status == models.TicketStatusCancelled
}

func (r *Reconciler) release(spot models.Spot) error {
	now := time.Now()
	res := r.DB.Model(&models.Spot{}).
		Where("id = ? AND is_occupied = ?", spot.ID, true).
		Updates(map[string]interface{}{
			"is_occupied":       false,
			"current_ticket_id": nil,
			"occupied_since":    nil,
			"updated_at":        now,
		})
	if res.Error != nil {
		return res.Error
	}

	msg := fmt.Sprintf("Spot %s was stuck occupied and has been released", spot.Code)
	title := "Spot reconciled"
	notif := models.Notification{
		Title:     &title,
		Message:   msg,
		Category:  "reconciler",
		CreatedAt: now,
	}
	if err := r.DB.Create(&notif).Error; err != nil {
		utils.ErrorLogger.Printf("Reconciler: error creating notification: %v", err)
	}

	ops.BroadcastStaffNotification(msg)
	return nil
}
