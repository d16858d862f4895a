package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/andresgluna/parkwash-app/models"
	"github.com/andresgluna/parkwash-app/services"
	"github.com/andresgluna/parkwash-app/utils"
)

type WorkerController struct {
	DB      *gorm.DB
	reports *services.ReportService
}

func NewWorkerController(db *gorm.DB) *WorkerController {
	return &WorkerController{
		DB:      db,
		reports: services.NewReportService(db),
	}
}

// GetAllWorkers -> list lavador, opsional hanya yang aktif
func (wc *WorkerController) GetAllWorkers(c *gin.Context) {
	query := wc.DB.Model(&models.Worker{})
	if c.Query("all") != "true" {
		query = query.Where("active = ?", true)
	}

	var workers []models.Worker
	if err := query.Order("name ASC").Find(&workers).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of workers", workers)
}

// CreateWorker -> daftarkan lavador baru
func (wc *WorkerController) CreateWorker(c *gin.Context) {
	var req struct {
		Name          string  `json:"name" binding:"required"`
		Phone         string  `json:"phone"`
		Document      string  `json:"document" binding:"required"`
		CommissionPct float64 `json:"commission_pct" binding:"gte=0,lte=100"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	worker := models.Worker{
		Name:          req.Name,
		Phone:         req.Phone,
		Document:      req.Document,
		CommissionPct: 40,
		Active:        true,
	}
	if req.CommissionPct > 0 {
		worker.CommissionPct = req.CommissionPct
	}

	if err := wc.DB.Create(&worker).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New worker registered: %s (%.0f%%)", worker.Name, worker.CommissionPct)
	utils.RespondJSON(c, http.StatusCreated, "Worker created", worker)
}

// GetWorkerByID -> detail satu worker
func (wc *WorkerController) GetWorkerByID(c *gin.Context) {
	workerID := c.Param("worker_id")
	var worker models.Worker
	if err := wc.DB.First(&worker, workerID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Worker detail", worker)
}

// UpdateWorker -> ubah data/persentase komisi.
// Komisi yang sudah dibagikan tidak berubah (persentase di-snapshot).
func (wc *WorkerController) UpdateWorker(c *gin.Context) {
	workerID := c.Param("worker_id")

	var worker models.Worker
	if err := wc.DB.First(&worker, workerID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Name          *string  `json:"name"`
		Phone         *string  `json:"phone"`
		CommissionPct *float64 `json:"commission_pct"`
		Active        *bool    `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		worker.Name = *req.Name
	}
	if req.Phone != nil {
		worker.Phone = *req.Phone
	}
	if req.CommissionPct != nil && *req.CommissionPct >= 0 && *req.CommissionPct <= 100 {
		worker.CommissionPct = *req.CommissionPct
	}
	if req.Active != nil {
		worker.Active = *req.Active
	}

	if err := wc.DB.Save(&worker).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Worker updated", worker)
}

// GetWorkerCommissions -> riwayat komisi satu worker dalam rentang tanggal
func (wc *WorkerController) GetWorkerCommissions(c *gin.Context) {
	workerID := c.Param("worker_id")

	var worker models.Worker
	if err := wc.DB.First(&worker, workerID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	start, end, err := parseDateRange(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var commissions []models.Commission
	if err := wc.DB.Where("worker_id = ? AND earned_at >= ? AND earned_at <= ?", worker.ID, start, end).
		Order("earned_at DESC").
		Find(&commissions).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var total int64
	for _, commission := range commissions {
		total += commission.Amount
	}

	utils.RespondJSON(c, http.StatusOK, "Worker commissions", gin.H{
		"worker":      worker,
		"commissions": commissions,
		"total":       total,
	})
}

// GetTopEarner -> worker dengan total komisi terbesar di rentang tanggal.
// Seri dipecahkan deterministik (ID terkecil). Tanpa data -> null.
func (wc *WorkerController) GetTopEarner(c *gin.Context) {
	start, end, err := parseDateRange(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	top, err := wc.reports.TopEarner(start, end)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Top earner", top)
}
