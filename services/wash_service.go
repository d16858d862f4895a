package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/andresgluna/parkwash-app/billing"
	"github.com/andresgluna/parkwash-app/models"
	"github.com/andresgluna/parkwash-app/utils"
)

// WashService mengelola antrian cuci:
// pending -> in_progress -> completed, cancelled dari pending/in_progress.
// Komisi worker dibagikan saat complete, tidak pernah sebelumnya.
type WashService struct {
	db *gorm.DB
}

func NewWashService(db *gorm.DB) *WashService {
	return &WashService{db: db}
}

// CreateWashRequest adalah input pembuatan order cuci.
type CreateWashRequest struct {
	ServiceTypeID uint            `json:"service_type_id" binding:"required"`
	BayID         *uint           `json:"bay_id"`
	CustomerID    *uint           `json:"customer_id"`
	WorkerIDs     []uint          `json:"worker_ids"`
	Vehicle       VehicleSnapshot `json:"vehicle" binding:"required"`
	Priority      string          `json:"priority"`
}

// Create membuat wash order baru (status pending) dengan snapshot harga layanan.
// Bay (kalau dipilih) diklaim dengan conditional update yang sama seperti spot parkir.
func (s *WashService) Create(req CreateWashRequest) (*models.WashOrder, error) {
	var serviceType models.ServiceType
	if err := s.db.First(&serviceType, req.ServiceTypeID).Error; err != nil {
		return nil, fmt.Errorf("service type %d: %w", req.ServiceTypeID, err)
	}
	if !serviceType.Active {
		return nil, fmt.Errorf("service type %s is inactive", serviceType.Name)
	}

	// Validasi worker aktif sebelum masuk transaction
	var workers []models.Worker
	if len(req.WorkerIDs) > 0 {
		if err := s.db.Where("id IN ? AND active = ?", req.WorkerIDs, true).Find(&workers).Error; err != nil {
			return nil, fmt.Errorf("load workers: %w", err)
		}
		if len(workers) != len(req.WorkerIDs) {
			return nil, fmt.Errorf("one or more workers not found or inactive")
		}
	}

	priority := req.Priority
	if priority == "" {
		priority = models.TicketPriorityNormal
	}
	vehicleType := req.Vehicle.Type
	if vehicleType == "" {
		vehicleType = serviceType.VehicleType
	}

	now := time.Now()
	var order models.WashOrder

	err := s.db.Transaction(func(tx *gorm.DB) error {
		order = models.WashOrder{
			ServiceTypeID: serviceType.ID,
			CustomerID:    req.CustomerID,
			Plate:         strings.ToUpper(req.Vehicle.Plate),
			VehicleMake:   req.Vehicle.Make,
			VehicleColor:  req.Vehicle.Color,
			VehicleType:   vehicleType,
			Price:         serviceType.Price,
			Status:        models.WashStatusPending,
			Priority:      priority,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		var created bool
		for attempt := 0; attempt < ticketNumberRetries; attempt++ {
			order.ID = 0
			order.Number = utils.GenerateTicketNumber("WASH", now)
			if err := tx.Create(&order).Error; err != nil {
				if isDuplicateKeyError(err) {
					continue
				}
				return fmt.Errorf("create wash order: %w", err)
			}
			created = true
			break
		}
		if !created {
			return billing.ErrDuplicateTicketNumber
		}

		if req.BayID != nil {
			res := tx.Model(&models.Spot{}).
				Where("id = ? AND kind = ? AND is_occupied = ? AND status = ?",
					*req.BayID, models.SpotKindWashBay, false, models.SpotStatusActive).
				Updates(map[string]interface{}{
					"is_occupied":       true,
					"current_ticket_id": order.ID,
					"occupied_since":    now,
					"updated_at":        now,
				})
			if res.Error != nil {
				return fmt.Errorf("claim bay %d: %w", *req.BayID, res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("bay %d: %w", *req.BayID, billing.ErrSpotUnavailable)
			}
			order.BayID = req.BayID
			if err := tx.Model(&models.WashOrder{}).Where("id = ?", order.ID).
				Update("bay_id", *req.BayID).Error; err != nil {
				return fmt.Errorf("assign bay to order %s: %w", order.Number, err)
			}
		}

		for _, w := range workers {
			assignment := models.WashOrderWorker{
				WashOrderID: order.ID,
				WorkerID:    w.ID,
				CreatedAt:   now,
			}
			if err := tx.Create(&assignment).Error; err != nil {
				return fmt.Errorf("assign worker %d to order %s: %w", w.ID, order.Number, err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Wash order %s created (%s, plate %s)", order.Number, serviceType.Name, order.Plate)
	return &order, nil
}

// Start menandai order mulai dikerjakan.
func (s *WashService) Start(orderID uint) (*models.WashOrder, error) {
	now := time.Now()
	var order models.WashOrder

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("wash order %d: %w", orderID, billing.ErrTicketNotFound)
			}
			return fmt.Errorf("load wash order %d: %w", orderID, err)
		}

		if order.Status != models.WashStatusPending {
			return fmt.Errorf("wash order %s is %s: %w", order.Number, order.Status, billing.ErrInvalidState)
		}

		order.Status = models.WashStatusInProgress
		order.StartTime = &now
		order.UpdatedAt = now
		return tx.Save(&order).Error
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Wash order %s started", order.Number)
	return &order, nil
}

// Complete menutup order: hitung total, buat payment, bagikan komisi
// ke worker yang ditugaskan, dan lepaskan bay. Semua dalam satu transaction.
func (s *WashService) Complete(orderID uint, pay PaymentInfo, tip int64) (*models.WashOrder, error) {
	now := time.Now()
	var order models.WashOrder

	taxRate := s.taxRate()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Workers.Worker").First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("wash order %d: %w", orderID, billing.ErrTicketNotFound)
			}
			return fmt.Errorf("load wash order %d: %w", orderID, err)
		}

		if order.Status != models.WashStatusInProgress {
			return fmt.Errorf("wash order %s is %s: %w", order.Number, order.Status, billing.ErrInvalidState)
		}

		// Harga layanan flat: pakai kalkulator dengan 1 "jam" = 1 layanan
		fee, err := billing.CalculateFee(1, order.Price, taxRate, pay.Discount)
		if err != nil {
			return fmt.Errorf("wash order %s: %w", order.Number, err)
		}

		order.Tax = fee.Tax
		order.Discount = fee.Discount
		order.Tip = tip
		order.Total = fee.Total + tip
		order.Status = models.WashStatusCompleted
		order.CompletionTime = &now
		order.UpdatedAt = now

		if err := tx.Save(&order).Error; err != nil {
			return fmt.Errorf("complete wash order %s: %w", order.Number, err)
		}

		payment := buildPayment(pay, order.Total, now)
		payment.WashOrderID = &order.ID
		if err := tx.Create(&payment).Error; err != nil {
			return fmt.Errorf("create payment for order %s: %w", order.Number, err)
		}

		// Komisi: harga layanan (tanpa pajak/tip) dibagi rata antar worker,
		// lalu persentase masing-masing worker diterapkan ke bagiannya.
		// Sisa pembagian bulat jatuh ke worker pertama supaya jumlah
		// seluruh bagian tetap sama dengan harga layanan.
		if n := len(order.Workers); n > 0 {
			share := order.Price / int64(n)
			remainder := order.Price % int64(n)
			for i, assignment := range order.Workers {
				workerShare := share
				if i == 0 {
					workerShare += remainder
				}
				commission := models.Commission{
					WashOrderID: order.ID,
					WorkerID:    assignment.WorkerID,
					Amount:      billing.RoundHalfUp(float64(workerShare) * assignment.Worker.CommissionPct / 100),
					Pct:         assignment.Worker.CommissionPct,
					EarnedAt:    now,
					CreatedAt:   now,
				}
				if err := tx.Create(&commission).Error; err != nil {
					return fmt.Errorf("create commission for worker %d: %w", assignment.WorkerID, err)
				}
			}
		}

		if order.BayID != nil {
			res := tx.Model(&models.Spot{}).
				Where("id = ? AND current_ticket_id = ?", *order.BayID, order.ID).
				Updates(map[string]interface{}{
					"is_occupied":       false,
					"current_ticket_id": nil,
					"occupied_since":    nil,
					"updated_at":        now,
				})
			if res.Error != nil {
				return fmt.Errorf("release bay for order %s: %w", order.Number, res.Error)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Wash order %s completed, total %s", order.Number, utils.FormatCOP(order.Total))
	return &order, nil
}

// Cancel membatalkan order pending/in_progress tanpa komisi.
func (s *WashService) Cancel(orderID uint) (*models.WashOrder, error) {
	now := time.Now()
	var order models.WashOrder

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("wash order %d: %w", orderID, billing.ErrTicketNotFound)
			}
			return fmt.Errorf("load wash order %d: %w", orderID, err)
		}

		if order.Status != models.WashStatusPending && order.Status != models.WashStatusInProgress {
			return fmt.Errorf("wash order %s is %s: %w", order.Number, order.Status, billing.ErrInvalidState)
		}

		order.Status = models.WashStatusCancelled
		order.UpdatedAt = now
		if err := tx.Save(&order).Error; err != nil {
			return fmt.Errorf("cancel wash order %s: %w", order.Number, err)
		}

		if order.BayID != nil {
			res := tx.Model(&models.Spot{}).
				Where("id = ? AND current_ticket_id = ?", *order.BayID, order.ID).
				Updates(map[string]interface{}{
					"is_occupied":       false,
					"current_ticket_id": nil,
					"occupied_since":    nil,
					"updated_at":        now,
				})
			if res.Error != nil {
				return fmt.Errorf("release bay for order %s: %w", order.Number, res.Error)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Wash order %s cancelled", order.Number)
	return &order, nil
}

func (s *WashService) taxRate() float64 {
	var cfg models.BusinessConfig
	if err := s.db.First(&cfg).Error; err != nil {
		return 0.19
	}
	return cfg.TaxRate
}
