package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/andresgluna/parkwash-app/models"
	"github.com/andresgluna/parkwash-app/ops"
	"github.com/andresgluna/parkwash-app/utils"
)

type SpotController struct {
	DB *gorm.DB
}

func NewSpotController(db *gorm.DB) *SpotController {
	return &SpotController{DB: db}
}

// CreateSpot -> menambahkan spot parkir atau bay cuci baru
func (sc *SpotController) CreateSpot(c *gin.Context) {
	var req struct {
		Code        string `json:"code" binding:"required"`
		Kind        string `json:"kind"`
		Level       string `json:"level"`
		Zone        string `json:"zone"`
		VehicleType string `json:"vehicle_type"`
		HourlyRate  int64  `json:"hourly_rate"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	spot := models.Spot{
		Code:        req.Code,
		Kind:        models.SpotKindParking,
		Level:       req.Level,
		Zone:        req.Zone,
		VehicleType: "car",
		HourlyRate:  req.HourlyRate,
		Status:      models.SpotStatusActive,
	}
	if req.Kind != "" {
		spot.Kind = req.Kind
	}
	if req.VehicleType != "" {
		spot.VehicleType = req.VehicleType
	}

	if err := sc.DB.Create(&spot).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	stats := sc.getOccupancyStats()
	ops.BroadcastMessage(ops.Message{
		Event: ops.EventSpotCreate,
		Data: map[string]interface{}{
			"spot":  spot,
			"stats": stats,
		},
	})

	utils.InfoLogger.Printf("New spot created: %s (kind=%s)", spot.Code, spot.Kind)
	utils.RespondJSON(c, http.StatusCreated, "Spot created successfully", spot)
}

// GetAllSpots -> menampilkan seluruh spot, opsional filter kind/status
func (sc *SpotController) GetAllSpots(c *gin.Context) {
	query := sc.DB.Model(&models.Spot{})
	if kind := c.Query("kind"); kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if occupied := c.Query("occupied"); occupied != "" {
		query = query.Where("is_occupied = ?", occupied == "true")
	}

	var spots []models.Spot
	if err := query.Order("code ASC").Find(&spots).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of spots", spots)
}

// GetSpotByID -> detail satu spot
func (sc *SpotController) GetSpotByID(c *gin.Context) {
	spotID := c.Param("spot_id")
	var spot models.Spot
	if err := sc.DB.First(&spot, spotID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Spot detail", spot)
}

// UpdateSpotStatus -> ubah status spot (active/maintenance/disabled)
func (sc *SpotController) UpdateSpotStatus(c *gin.Context) {
	spotID := c.Param("spot_id")
	var body struct {
		Status string `json:"status" binding:"required"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var spot models.Spot
	if err := sc.DB.First(&spot, spotID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	// Spot yang masih terisi tidak boleh di-nonaktifkan
	if spot.IsOccupied && body.Status != models.SpotStatusActive {
		utils.RespondError(c, http.StatusConflict, fmt.Errorf("spot %s is occupied", spot.Code))
		return
	}

	spot.Status = body.Status
	if err := sc.DB.Save(&spot).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	stats := sc.getOccupancyStats()
	ops.BroadcastMessage(ops.Message{
		Event: ops.EventSpotUpdate,
		Data: map[string]interface{}{
			"spot":  spot,
			"stats": stats,
		},
	})

	utils.InfoLogger.Printf("Spot %s status changed to %s", spot.Code, spot.Status)
	utils.RespondJSON(c, http.StatusOK, "Spot status updated", spot)
}

// UpdateSpotRate -> ubah tarif per jam. Tidak mempengaruhi ticket yang
// sedang berjalan karena rate di-snapshot saat entry.
func (sc *SpotController) UpdateSpotRate(c *gin.Context) {
	spotID := c.Param("spot_id")
	var body struct {
		HourlyRate int64 `json:"hourly_rate" binding:"required,gte=0"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var spot models.Spot
	if err := sc.DB.First(&spot, spotID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	spot.HourlyRate = body.HourlyRate
	if err := sc.DB.Save(&spot).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Spot rate updated", spot)
}

// DeleteSpot -> menghapus spot yang tidak terisi
func (sc *SpotController) DeleteSpot(c *gin.Context) {
	spotID := c.Param("spot_id")
	var spot models.Spot

	if err := sc.DB.First(&spot, spotID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if spot.IsOccupied {
		utils.RespondError(c, http.StatusConflict, fmt.Errorf("spot %s is occupied", spot.Code))
		return
	}

	if err := sc.DB.Delete(&spot).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	stats := sc.getOccupancyStats()
	ops.BroadcastMessage(ops.Message{
		Event: ops.EventSpotDelete,
		Data: map[string]interface{}{
			"spot_id": spot.ID,
			"stats":   stats,
		},
	})

	utils.InfoLogger.Printf("Spot %s deleted", spot.Code)
	utils.RespondJSON(c, http.StatusOK, "Spot deleted", gin.H{
		"id": spot.ID,
	})
}

// getOccupancyStats menghitung statistik okupansi untuk broadcast
func (sc *SpotController) getOccupancyStats() map[string]interface{} {
	var freeCount, occupiedCount, maintenanceCount int64

	sc.DB.Model(&models.Spot{}).Where("is_occupied = ? AND status = ?", false, models.SpotStatusActive).Count(&freeCount)
	sc.DB.Model(&models.Spot{}).Where("is_occupied = ?", true).Count(&occupiedCount)
	sc.DB.Model(&models.Spot{}).Where("status = ?", models.SpotStatusMaintenance).Count(&maintenanceCount)

	return map[string]interface{}{
		"free":        freeCount,
		"occupied":    occupiedCount,
		"maintenance": maintenanceCount,
		"total":       freeCount + occupiedCount + maintenanceCount,
	}
}
