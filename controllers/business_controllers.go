package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/andresgluna/parkwash-app/models"
	"github.com/andresgluna/parkwash-app/utils"
)

type BusinessController struct {
	DB *gorm.DB
}

func NewBusinessController(db *gorm.DB) *BusinessController {
	return &BusinessController{DB: db}
}

// GetBusinessConfig -> config tunggal untuk struk dan tax rate
func (bc *BusinessController) GetBusinessConfig(c *gin.Context) {
	var config models.BusinessConfig
	if err := bc.DB.First(&config).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Business config", config)
}

// UpdateBusinessConfig -> ubah data bisnis.
// Perubahan tax rate hanya berlaku untuk transaksi berikutnya,
// ticket dan struk lama tidak dihitung ulang.
func (bc *BusinessController) UpdateBusinessConfig(c *gin.Context) {
	var config models.BusinessConfig
	if err := bc.DB.First(&config).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Name          *string  `json:"name"`
		Address       *string  `json:"address"`
		Phone         *string  `json:"phone"`
		TaxID         *string  `json:"tax_id"`
		TaxRate       *float64 `json:"tax_rate"`
		ReceiptHeader *string  `json:"receipt_header"`
		ReceiptFooter *string  `json:"receipt_footer"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		config.Name = *req.Name
	}
	if req.Address != nil {
		config.Address = *req.Address
	}
	if req.Phone != nil {
		config.Phone = *req.Phone
	}
	if req.TaxID != nil {
		config.TaxID = *req.TaxID
	}
	if req.TaxRate != nil && *req.TaxRate >= 0 && *req.TaxRate < 1 {
		config.TaxRate = *req.TaxRate
	}
	if req.ReceiptHeader != nil {
		config.ReceiptHeader = *req.ReceiptHeader
	}
	if req.ReceiptFooter != nil {
		config.ReceiptFooter = *req.ReceiptFooter
	}

	if err := bc.DB.Save(&config).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Business config updated (tax rate %.2f)", config.TaxRate)
	utils.RespondJSON(c, http.StatusOK, "Business config updated", config)
}
