package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/andresgluna/parkwash-app/models"
	"github.com/andresgluna/parkwash-app/ops"
	"github.com/andresgluna/parkwash-app/utils"
)

type MaintenanceLogController struct {
	DB *gorm.DB
}

func NewMaintenanceLogController(db *gorm.DB) *MaintenanceLogController {
	return &MaintenanceLogController{DB: db}
}

// GetAllMaintenanceLogs
func (mlc *MaintenanceLogController) GetAllMaintenanceLogs(c *gin.Context) {
	var logs []models.MaintenanceLog
	if err := mlc.DB.Preload("Worker").Preload("Spot").Find(&logs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All maintenance logs", logs)
}

// CreateMaintenanceLog -> spot masuk maintenance selama dikerjakan
func (mlc *MaintenanceLogController) CreateMaintenanceLog(c *gin.Context) {
	type reqBody struct {
		WorkerID uint   `json:"worker_id" binding:"required"`
		SpotID   uint   `json:"spot_id" binding:"required"`
		Notes    string `json:"notes"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var spot models.Spot
	if err := mlc.DB.First(&spot, body.SpotID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if spot.IsOccupied {
		utils.RespondError(c, http.StatusConflict, fmt.Errorf("spot %s is occupied", spot.Code))
		return
	}

	logEntry := models.MaintenanceLog{
		WorkerID: body.WorkerID,
		SpotID:   body.SpotID,
		Status:   "pending",
		Notes:    body.Notes,
	}

	err := mlc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&logEntry).Error; err != nil {
			return err
		}
		spot.Status = models.SpotStatusMaintenance
		return tx.Save(&spot).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	ops.BroadcastSpotUpdate(spot)
	utils.RespondJSON(c, http.StatusCreated, "Maintenance log created", logEntry)
}

// GetMaintenanceLogByID
func (mlc *MaintenanceLogController) GetMaintenanceLogByID(c *gin.Context) {
	idStr := c.Param("log_id")
	id, _ := strconv.Atoi(idStr)

	var logEntry models.MaintenanceLog
	if err := mlc.DB.Preload("Worker").Preload("Spot").First(&logEntry, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Maintenance log detail", logEntry)
}

// UpdateMaintenanceLog -> status done mengembalikan spot ke active
func (mlc *MaintenanceLogController) UpdateMaintenanceLog(c *gin.Context) {
	idStr := c.Param("log_id")
	id, _ := strconv.Atoi(idStr)

	type reqBody struct {
		Status string `json:"status"` // pending, in_progress, done
		Notes  string `json:"notes"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var logEntry models.MaintenanceLog
	if err := mlc.DB.First(&logEntry, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if body.Status != "" {
		logEntry.Status = body.Status
	}
	if body.Notes != "" {
		logEntry.Notes = body.Notes
	}

	if err := mlc.DB.Save(&logEntry).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if body.Status == "done" {
		var spot models.Spot
		if err := mlc.DB.First(&spot, logEntry.SpotID).Error; err == nil {
			spot.Status = models.SpotStatusActive
			mlc.DB.Save(&spot)
			ops.BroadcastSpotUpdate(spot)
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Maintenance log updated", logEntry)
}

// DeleteMaintenanceLog
func (mlc *MaintenanceLogController) DeleteMaintenanceLog(c *gin.Context) {
	idStr := c.Param("log_id")
	id, _ := strconv.Atoi(idStr)

	if err := mlc.DB.Delete(&models.MaintenanceLog{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Maintenance log deleted", gin.H{"log_id": id})
}
