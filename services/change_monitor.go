package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/andresgluna/parkwash-app/models"
	"github.com/andresgluna/parkwash-app/ops"
	"github.com/andresgluna/parkwash-app/utils"
)

// ChangeMonitor membaca tabel db_changes (diisi trigger MySQL) dan
// menyiarkan perubahan ke websocket hub.
type ChangeMonitor struct {
	DB       *gorm.DB
	StopChan chan struct{}
	Interval time.Duration
}

func NewChangeMonitor(db *gorm.DB) *ChangeMonitor {
	return &ChangeMonitor{
		DB:       db,
		StopChan: make(chan struct{}),
		Interval: 1 * time.Second,
	}
}

func (cm *ChangeMonitor) Start() {
	go func() {
		ticker := time.NewTicker(cm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				cm.checkChanges()
			case <-cm.StopChan:
				return
			}
		}
	}()
}

func (cm *ChangeMonitor) Stop() {
	close(cm.StopChan)
}

func (cm *ChangeMonitor) checkChanges() {
	var changes []models.DBChange

	tx := cm.DB.Begin()

	if err := tx.Where("processed = ?", false).
		Order("changed_at ASC").
		Limit(100).
		Find(&changes).Error; err != nil {
		tx.Rollback()
		utils.ErrorLogger.Printf("Error fetching changes: %v", err)
		return
	}

	for _, change := range changes {
		switch change.TableName {
		case "spots":
			cm.processSpotChange(change)
		case "tickets":
			cm.processTicketChange(change)
		case "wash_orders":
			cm.processWashOrderChange(change)
		case "payments":
			cm.processPaymentChange(change)
		}

		if err := tx.Model(&models.DBChange{}).
			Where("id = ?", change.ID).
			Update("processed", true).Error; err != nil {
			tx.Rollback()
			utils.ErrorLogger.Printf("Error marking change as processed: %v", err)
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		utils.ErrorLogger.Printf("Error committing change batch: %v", err)
		tx.Rollback()
	}
}

func (cm *ChangeMonitor) processSpotChange(change models.DBChange) {
	var spot models.Spot

	if change.ActionType != "DELETE" {
		if err := cm.DB.First(&spot, change.RecordID).Error; err != nil {
			utils.ErrorLogger.Printf("Error fetching spot: %v", err)
			return
		}
	}

	switch change.ActionType {
	case "INSERT":
		ops.BroadcastSpotCreate(spot)
	case "UPDATE":
		ops.BroadcastSpotUpdate(spot)
	case "DELETE":
		ops.BroadcastSpotDelete(models.Spot{ID: uint(change.RecordID)})
	}
}

func (cm *ChangeMonitor) processTicketChange(change models.DBChange) {
	var ticket models.Ticket

	if change.ActionType == "DELETE" {
		return
	}
	if err := cm.DB.First(&ticket, change.RecordID).Error; err != nil {
		utils.ErrorLogger.Printf("Error fetching ticket: %v", err)
		return
	}

	switch change.ActionType {
	case "INSERT":
		ops.BroadcastTicketCreate(ticket)
	case "UPDATE":
		ops.BroadcastTicketUpdate(ticket)
	}
}

func (cm *ChangeMonitor) processWashOrderChange(change models.DBChange) {
	var order models.WashOrder

	if change.ActionType == "DELETE" {
		return
	}
	if err := cm.DB.First(&order, change.RecordID).Error; err != nil {
		utils.ErrorLogger.Printf("Error fetching wash order: %v", err)
		return
	}

	ops.BroadcastWashUpdate(order)
}

func (cm *ChangeMonitor) processPaymentChange(change models.DBChange) {
	var payment models.Payment

	if change.ActionType == "DELETE" {
		return
	}
	if err := cm.DB.First(&payment, change.RecordID).Error; err != nil {
		utils.ErrorLogger.Printf("Error fetching payment: %v", err)
		return
	}

	switch change.ActionType {
	case "INSERT":
		ops.BroadcastPaymentUpdate(payment)
	case "UPDATE":
		if payment.Status == models.PaymentStatusPaid {
			ops.BroadcastPaymentPaid(payment)
		}
		ops.BroadcastPaymentUpdate(payment)
	}
}
