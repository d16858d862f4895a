package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/andresgluna/parkwash-app/models"
	"github.com/andresgluna/parkwash-app/utils"
)

type ServiceTypeController struct {
	DB *gorm.DB
}

func NewServiceTypeController(db *gorm.DB) *ServiceTypeController {
	return &ServiceTypeController{DB: db}
}

// GetAllServiceTypes -> katalog layanan cuci
func (stc *ServiceTypeController) GetAllServiceTypes(c *gin.Context) {
	query := stc.DB.Model(&models.ServiceType{})
	if c.Query("all") != "true" {
		query = query.Where("active = ?", true)
	}
	if vt := c.Query("vehicle_type"); vt != "" {
		query = query.Where("vehicle_type = ?", vt)
	}

	var types []models.ServiceType
	if err := query.Order("name ASC").Find(&types).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of service types", types)
}

// CreateServiceType -> layanan baru
func (stc *ServiceTypeController) CreateServiceType(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		VehicleType string `json:"vehicle_type"`
		Price       int64  `json:"price" binding:"required,gt=0"`
		DurationEst int    `json:"duration_est"`
		Description string `json:"description"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	serviceType := models.ServiceType{
		Name:        req.Name,
		VehicleType: "car",
		Price:       req.Price,
		DurationEst: 30,
		Description: req.Description,
		Active:      true,
	}
	if req.VehicleType != "" {
		serviceType.VehicleType = req.VehicleType
	}
	if req.DurationEst > 0 {
		serviceType.DurationEst = req.DurationEst
	}

	if err := stc.DB.Create(&serviceType).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New service type created: %s (%s)", serviceType.Name, utils.FormatCOP(serviceType.Price))
	utils.RespondJSON(c, http.StatusCreated, "Service type created", serviceType)
}

// UpdateServiceType -> ubah harga/status layanan.
// Order yang sudah dibuat tidak berubah karena harga di-snapshot.
func (stc *ServiceTypeController) UpdateServiceType(c *gin.Context) {
	typeID := c.Param("type_id")

	var serviceType models.ServiceType
	if err := stc.DB.First(&serviceType, typeID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Price       *int64  `json:"price"`
		DurationEst *int    `json:"duration_est"`
		Description *string `json:"description"`
		Active      *bool   `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		serviceType.Name = *req.Name
	}
	if req.Price != nil {
		serviceType.Price = *req.Price
	}
	if req.DurationEst != nil {
		serviceType.DurationEst = *req.DurationEst
	}
	if req.Description != nil {
		serviceType.Description = *req.Description
	}
	if req.Active != nil {
		serviceType.Active = *req.Active
	}

	if err := stc.DB.Save(&serviceType).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Service type updated", serviceType)
}

// DeleteServiceType -> nonaktifkan layanan (soft, riwayat order tetap utuh)
func (stc *ServiceTypeController) DeleteServiceType(c *gin.Context) {
	typeID := c.Param("type_id")

	var serviceType models.ServiceType
	if err := stc.DB.First(&serviceType, typeID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	serviceType.Active = false
	if err := stc.DB.Save(&serviceType).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Service type deactivated", gin.H{
		"id": serviceType.ID,
	})
}
