package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-pdf/fpdf"
	"gorm.io/gorm"

	"github.com/andresgluna/parkwash-app/models"
	"github.com/andresgluna/parkwash-app/ops"
	"github.com/andresgluna/parkwash-app/utils"
)

type ReceiptController struct {
	DB *gorm.DB
}

func NewReceiptController(db *gorm.DB) *ReceiptController {
	return &ReceiptController{DB: db}
}

// GenerateReceipt membuat struk untuk satu payment yang sudah paid.
// Info bisnis di-snapshot ke row receipt supaya struk lama tidak berubah
// kalau config diedit belakangan.
func (rc *ReceiptController) GenerateReceipt(c *gin.Context) {
	paymentID := c.Param("payment_id")

	var payment models.Payment
	if err := rc.DB.Preload("Ticket").Preload("WashOrder").
		Preload("WashOrder.ServiceType").
		First(&payment, paymentID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if payment.Status != models.PaymentStatusPaid {
		utils.RespondError(c, http.StatusConflict,
			fmt.Errorf("payment %d is %s, receipt requires a paid payment", payment.ID, payment.Status))
		return
	}

	// Satu payment satu struk
	var existing models.Receipt
	if err := rc.DB.Where("payment_id = ?", payment.ID).First(&existing).Error; err == nil {
		utils.RespondJSON(c, http.StatusOK, "Receipt already exists", existing)
		return
	}

	var config models.BusinessConfig
	if err := rc.DB.First(&config).Error; err != nil {
		// Tanpa config struk tetap jalan dengan nama default
		config = models.BusinessConfig{Name: "ParkWash"}
	}

	receipt := models.Receipt{
		PaymentID:        payment.ID,
		Total:            payment.Amount,
		PaymentMethod:    payment.Method,
		AmountPaid:       payment.Amount,
		Change:           payment.Change,
		PaymentReference: payment.ReferenceID,
		BusinessName:     config.Name,
		BusinessAddress:  config.Address,
		BusinessTaxID:    config.TaxID,
		ReceiptNumber:    fmt.Sprintf("RCP/%s/%06d", time.Now().Format("20060102"), payment.ID),
		ReceiptItems:     buildReceiptItems(payment),
	}
	if payment.Method == models.PaymentMethodCash {
		receipt.AmountPaid = payment.CashReceived
	}

	if err := rc.DB.Create(&receipt).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	ops.BroadcastReceiptGenerated(receipt)
	utils.InfoLogger.Printf("Receipt %s generated for payment %d", receipt.ReceiptNumber, payment.ID)
	utils.RespondJSON(c, http.StatusCreated, "Receipt generated", receipt)
}

// buildReceiptItems menyusun baris item dari sumber payment (ticket atau wash order).
func buildReceiptItems(payment models.Payment) []models.ReceiptItem {
	var items []models.ReceiptItem

	switch {
	case payment.Ticket != nil:
		ticket := payment.Ticket
		items = append(items, models.ReceiptItem{
			Description: fmt.Sprintf("Parqueo %s (%d min)", ticket.Plate, ticket.DurationMinutes),
			Quantity:    int(ticket.BilledHours),
			UnitPrice:   ticket.HourlyRate,
			Subtotal:    ticket.Subtotal,
		})
		if ticket.Tax > 0 {
			items = append(items, models.ReceiptItem{
				Description: "IVA",
				Quantity:    1,
				UnitPrice:   ticket.Tax,
				Subtotal:    ticket.Tax,
			})
		}
		if ticket.Discount > 0 {
			items = append(items, models.ReceiptItem{
				Description: "Descuento",
				Quantity:    1,
				UnitPrice:   -ticket.Discount,
				Subtotal:    -ticket.Discount,
			})
		}
	case payment.WashOrder != nil:
		order := payment.WashOrder
		items = append(items, models.ReceiptItem{
			Description: fmt.Sprintf("%s %s", order.ServiceType.Name, order.Plate),
			Quantity:    1,
			UnitPrice:   order.Price,
			Subtotal:    order.Price,
		})
		if order.Tax > 0 {
			items = append(items, models.ReceiptItem{
				Description: "IVA",
				Quantity:    1,
				UnitPrice:   order.Tax,
				Subtotal:    order.Tax,
			})
		}
		if order.Discount > 0 {
			items = append(items, models.ReceiptItem{
				Description: "Descuento",
				Quantity:    1,
				UnitPrice:   -order.Discount,
				Subtotal:    -order.Discount,
			})
		}
		if order.Tip > 0 {
			items = append(items, models.ReceiptItem{
				Description: "Propina",
				Quantity:    1,
				UnitPrice:   order.Tip,
				Subtotal:    order.Tip,
			})
		}
	}
	return items
}

// GetReceiptByID mengambil detail struk berdasarkan ID
func (rc *ReceiptController) GetReceiptByID(c *gin.Context) {
	receiptID := c.Param("receipt_id")

	var receipt models.Receipt
	if err := rc.DB.Preload("Payment").Preload("ReceiptItems").
		First(&receipt, receiptID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Receipt detail", receipt)
}

// GetReceiptPDF merender struk sebagai PDF ukuran thermal 80mm
func (rc *ReceiptController) GetReceiptPDF(c *gin.Context) {
	receiptID := c.Param("receipt_id")

	var receipt models.Receipt
	if err := rc.DB.Preload("ReceiptItems").First(&receipt, receiptID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "mm",
		Size:    fpdf.SizeType{Wd: 80, Ht: 200},
	})
	pdf.SetMargins(5, 5, 5)
	pdf.AddPage()

	pdf.SetFont("Courier", "B", 11)
	pdf.CellFormat(70, 5, receipt.BusinessName, "", 1, "C", false, 0, "")
	pdf.SetFont("Courier", "", 8)
	if receipt.BusinessAddress != "" {
		pdf.CellFormat(70, 4, receipt.BusinessAddress, "", 1, "C", false, 0, "")
	}
	if receipt.BusinessTaxID != "" {
		pdf.CellFormat(70, 4, "NIT "+receipt.BusinessTaxID, "", 1, "C", false, 0, "")
	}
	pdf.Ln(2)

	pdf.CellFormat(70, 4, receipt.ReceiptNumber, "", 1, "L", false, 0, "")
	pdf.CellFormat(70, 4, receipt.CreatedAt.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	pdf.CellFormat(70, 4, "--------------------------------", "", 1, "C", false, 0, "")

	for _, item := range receipt.ReceiptItems {
		pdf.CellFormat(70, 4, item.Description, "", 1, "L", false, 0, "")
		line := fmt.Sprintf("%d x %s", item.Quantity, utils.FormatCOP(item.UnitPrice))
		pdf.CellFormat(40, 4, line, "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 4, utils.FormatCOP(item.Subtotal), "", 1, "R", false, 0, "")
	}

	pdf.CellFormat(70, 4, "--------------------------------", "", 1, "C", false, 0, "")
	pdf.SetFont("Courier", "B", 9)
	pdf.CellFormat(40, 5, "TOTAL", "", 0, "L", false, 0, "")
	pdf.CellFormat(30, 5, utils.FormatCOP(receipt.Total), "", 1, "R", false, 0, "")

	pdf.SetFont("Courier", "", 8)
	pdf.CellFormat(40, 4, "Pago ("+receipt.PaymentMethod+")", "", 0, "L", false, 0, "")
	pdf.CellFormat(30, 4, utils.FormatCOP(receipt.AmountPaid), "", 1, "R", false, 0, "")
	if receipt.Change > 0 {
		pdf.CellFormat(40, 4, "Cambio", "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 4, utils.FormatCOP(receipt.Change), "", 1, "R", false, 0, "")
	}

	pdf.Ln(3)
	pdf.CellFormat(70, 4, "Gracias por su visita", "", 1, "C", false, 0, "")

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition",
		fmt.Sprintf("inline; filename=receipt-%d.pdf", receipt.ID))
	if err := pdf.Output(c.Writer); err != nil {
		utils.ErrorLogger.Printf("Failed to render receipt PDF: %v", err)
	}
}
