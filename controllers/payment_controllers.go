package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/andresgluna/parkwash-app/models"
	"github.com/andresgluna/parkwash-app/ops"
	"github.com/andresgluna/parkwash-app/utils"
)

type PaymentController struct {
	DB *gorm.DB
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{DB: db}
}

// GetAllPayments -> list pembayaran dengan filter status/method dan rentang tanggal
func (pc *PaymentController) GetAllPayments(c *gin.Context) {
	start, end, err := parseDateRange(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	query := pc.DB.Model(&models.Payment{}).
		Where("created_at >= ? AND created_at <= ?", start, end)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if method := c.Query("method"); method != "" {
		query = query.Where("method = ?", method)
	}

	var payments []models.Payment
	if err := query.Order("created_at DESC").Find(&payments).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var totalPaid int64
	for _, payment := range payments {
		if payment.Status == models.PaymentStatusPaid {
			totalPaid += payment.Amount
		}
	}

	utils.RespondJSON(c, http.StatusOK, "List of payments", gin.H{
		"payments":   payments,
		"total_paid": totalPaid,
	})
}

// GetPaymentByID -> detail satu pembayaran beserta sumbernya
func (pc *PaymentController) GetPaymentByID(c *gin.Context) {
	paymentID := c.Param("payment_id")

	var payment models.Payment
	if err := pc.DB.Preload("Ticket").Preload("WashOrder").
		First(&payment, paymentID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Payment detail", payment)
}

// VerifyPayment -> kasir mengkonfirmasi pembayaran pending (mis. transfer
// yang baru masuk rekening). Pembayaran cash sudah paid sejak dibuat.
func (pc *PaymentController) VerifyPayment(c *gin.Context) {
	paymentID := c.Param("payment_id")

	var req struct {
		CashReceived int64 `json:"cash_received"`
	}
	// Body opsional
	_ = c.ShouldBindJSON(&req)

	var payment models.Payment
	if err := pc.DB.First(&payment, paymentID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if payment.Status != models.PaymentStatusPending {
		utils.RespondError(c, http.StatusConflict,
			fmt.Errorf("payment %d is %s, only pending payments can be verified", payment.ID, payment.Status))
		return
	}

	now := time.Now()
	payment.Status = models.PaymentStatusPaid
	payment.PaidAt = &now
	if payment.Method == models.PaymentMethodCash && req.CashReceived > 0 {
		if req.CashReceived < payment.Amount {
			utils.RespondError(c, http.StatusBadRequest,
				errors.New("cash received is less than payment amount"))
			return
		}
		payment.CashReceived = req.CashReceived
		payment.Change = req.CashReceived - payment.Amount
	}
	if idInterface, exists := c.Get("user_id"); exists {
		if id, ok := idInterface.(uint); ok {
			payment.VerifiedBy = &id
		}
	}

	if err := pc.DB.Save(&payment).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	ops.BroadcastPaymentPaid(payment)
	utils.InfoLogger.Printf("Payment %d verified (%s, %s)",
		payment.ID, payment.Method, utils.FormatCOP(payment.Amount))
	utils.RespondJSON(c, http.StatusOK, "Payment verified", payment)
}

// CancelPayment -> batalkan pembayaran pending yang salah input
func (pc *PaymentController) CancelPayment(c *gin.Context) {
	paymentID := c.Param("payment_id")

	var payment models.Payment
	if err := pc.DB.First(&payment, paymentID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if payment.Status != models.PaymentStatusPending {
		utils.RespondError(c, http.StatusConflict,
			fmt.Errorf("payment %d is %s, only pending payments can be cancelled", payment.ID, payment.Status))
		return
	}

	payment.Status = models.PaymentStatusCancelled
	if err := pc.DB.Save(&payment).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	ops.BroadcastPaymentUpdate(payment)
	utils.RespondJSON(c, http.StatusOK, "Payment cancelled", payment)
}
