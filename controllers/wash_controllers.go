package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/andresgluna/parkwash-app/models"
	"github.com/andresgluna/parkwash-app/services"
	"github.com/andresgluna/parkwash-app/utils"
)

type WashController struct {
	DB  *gorm.DB
	svc *services.WashService
}

func NewWashController(db *gorm.DB) *WashController {
	return &WashController{
		DB:  db,
		svc: services.NewWashService(db),
	}
}

// CreateOrder -> order cuci baru masuk antrian
func (wc *WashController) CreateOrder(c *gin.Context) {
	var req services.CreateWashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := wc.svc.Create(req)
	if err != nil {
		utils.RespondError(c, statusForBillingError(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Wash order created", order)
}

// GetAllOrders -> list order, opsional filter status
func (wc *WashController) GetAllOrders(c *gin.Context) {
	query := wc.DB.Preload("ServiceType").Preload("Workers.Worker")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.WashOrder
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of wash orders", orders)
}

// GetOrderByID -> detail satu order
func (wc *WashController) GetOrderByID(c *gin.Context) {
	orderID := c.Param("order_id")
	var order models.WashOrder
	if err := wc.DB.Preload("ServiceType").Preload("Workers.Worker").Preload("Customer").
		First(&order, orderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Wash order detail", order)
}

// GetQueue -> antrian untuk display lavadero (pending + in_progress).
// Priority high duluan, sisanya FIFO; kolom priority berupa string jadi
// urutannya lewat CASE, bukan sort leksikal.
func (wc *WashController) GetQueue(c *gin.Context) {
	var orders []models.WashOrder
	if err := wc.DB.Preload("ServiceType").Preload("Workers.Worker").
		Where("status IN ?", []string{models.WashStatusPending, models.WashStatusInProgress}).
		Order("CASE WHEN priority = 'high' THEN 0 ELSE 1 END, created_at ASC").
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Wash queue", gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// StartOrder -> worker mulai mengerjakan order
func (wc *WashController) StartOrder(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	order, err := wc.svc.Start(uint(orderID))
	if err != nil {
		utils.RespondError(c, statusForBillingError(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Wash order started", order)
}

// CompleteOrder -> order selesai: pembayaran + pembagian komisi
func (wc *WashController) CompleteOrder(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	var req struct {
		Method       string `json:"method"`
		Discount     int64  `json:"discount"`
		Tip          int64  `json:"tip"`
		CashReceived int64  `json:"cash_received"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	pay := services.PaymentInfo{
		Method:       req.Method,
		Discount:     req.Discount,
		CashReceived: req.CashReceived,
	}
	if idInterface, exists := c.Get("user_id"); exists {
		if id, ok := idInterface.(uint); ok {
			pay.VerifiedBy = &id
		}
	}

	order, err := wc.svc.Complete(uint(orderID), pay, req.Tip)
	if err != nil {
		utils.RespondError(c, statusForBillingError(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Wash order completed", order)
}

// CancelOrder -> batalkan order
func (wc *WashController) CancelOrder(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	order, err := wc.svc.Cancel(uint(orderID))
	if err != nil {
		utils.RespondError(c, statusForBillingError(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Wash order cancelled", order)
}
