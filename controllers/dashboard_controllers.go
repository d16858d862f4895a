package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-pdf/fpdf"
	chart "github.com/wcharczuk/go-chart/v2"
	"gorm.io/gorm"

	"github.com/andresgluna/parkwash-app/models"
	"github.com/andresgluna/parkwash-app/services"
	"github.com/andresgluna/parkwash-app/utils"
)

type DashboardController struct {
	DB      *gorm.DB
	reports *services.ReportService
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{
		DB:      db,
		reports: services.NewReportService(db),
	}
}

// GetDashboardStats -> angka ringkas untuk layar utama kasir
func (dc *DashboardController) GetDashboardStats(c *gin.Context) {
	var freeSpots, occupiedSpots, freeBays, occupiedBays int64
	dc.DB.Model(&models.Spot{}).
		Where("kind = ? AND is_occupied = ? AND status = ?", models.SpotKindParking, false, models.SpotStatusActive).
		Count(&freeSpots)
	dc.DB.Model(&models.Spot{}).
		Where("kind = ? AND is_occupied = ?", models.SpotKindParking, true).
		Count(&occupiedSpots)
	dc.DB.Model(&models.Spot{}).
		Where("kind = ? AND is_occupied = ? AND status = ?", models.SpotKindWashBay, false, models.SpotStatusActive).
		Count(&freeBays)
	dc.DB.Model(&models.Spot{}).
		Where("kind = ? AND is_occupied = ?", models.SpotKindWashBay, true).
		Count(&occupiedBays)

	var activeTickets, washQueue int64
	dc.DB.Model(&models.Ticket{}).
		Where("status IN ?", []string{models.TicketStatusPending, models.TicketStatusActive}).
		Count(&activeTickets)
	dc.DB.Model(&models.WashOrder{}).
		Where("status IN ?", []string{models.WashStatusPending, models.WashStatusInProgress}).
		Count(&washQueue)

	// Pendapatan hari berjalan (00:00 lokal sampai sekarang)
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	revenueToday, err := dc.reports.RevenueInRange(dayStart, now)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", gin.H{
		"spots": gin.H{
			"free":     freeSpots,
			"occupied": occupiedSpots,
		},
		"bays": gin.H{
			"free":     freeBays,
			"occupied": occupiedBays,
		},
		"active_tickets": activeTickets,
		"wash_queue":     washQueue,
		"revenue_today":  revenueToday,
	})
}

// GetMetrics -> laporan agregat untuk satu rentang tanggal:
// pendapatan, durasi rata-rata, histogram jam sibuk, top earner.
func (dc *DashboardController) GetMetrics(c *gin.Context) {
	start, end, err := parseDateRange(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	revenue, err := dc.reports.RevenueInRange(start, end)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	avgDuration, err := dc.reports.AverageDurationMinutes(start, end)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	histogram, err := dc.reports.PeakHoursHistogram(start, end)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	topEarner, err := dc.reports.TopEarner(start, end)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Metrics", gin.H{
		"start":                start.Format("2006-01-02"),
		"end":                  end.Format("2006-01-02"),
		"revenue":              revenue,
		"avg_duration_minutes": avgDuration,
		"peak_hours":           histogram,
		"top_earner":           topEarner,
	})
}

// GetPeakHoursChart -> histogram jam masuk sebagai PNG untuk dashboard
func (dc *DashboardController) GetPeakHoursChart(c *gin.Context) {
	start, end, err := parseDateRange(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	histogram, err := dc.reports.PeakHoursHistogram(start, end)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	bars := make([]chart.Value, 0, 24)
	for hour, count := range histogram {
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%02d", hour),
			Value: float64(count),
		})
	}

	graph := chart.BarChart{
		Title:    "Entradas por hora",
		Height:   400,
		Width:    1024,
		BarWidth: 28,
		Bars:     bars,
	}

	c.Header("Content-Type", "image/png")
	if err := graph.Render(chart.PNG, c.Writer); err != nil {
		utils.ErrorLogger.Printf("Failed to render peak hours chart: %v", err)
	}
}

// GetDailyReportPDF -> laporan harian A4 untuk arsip/impresi
func (dc *DashboardController) GetDailyReportPDF(c *gin.Context) {
	start, end, err := parseDateRange(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	revenue, err := dc.reports.RevenueInRange(start, end)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	avgDuration, _ := dc.reports.AverageDurationMinutes(start, end)
	topEarner, _ := dc.reports.TopEarner(start, end)

	var completedTickets, completedWashes int64
	dc.DB.Model(&models.Ticket{}).
		Where("status = ? AND entry_time >= ? AND entry_time <= ?", models.TicketStatusCompleted, start, end).
		Count(&completedTickets)
	dc.DB.Model(&models.WashOrder{}).
		Where("status = ? AND created_at >= ? AND created_at <= ?", models.WashStatusCompleted, start, end).
		Count(&completedWashes)

	var config models.BusinessConfig
	if err := dc.DB.First(&config).Error; err != nil {
		config = models.BusinessConfig{Name: "ParkWash"}
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, config.Name, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7,
		fmt.Sprintf("Reporte de operaciones %s - %s",
			start.Format("2006-01-02"), end.Format("2006-01-02")),
		"", 1, "C", false, 0, "")
	pdf.Ln(6)

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(90, 8, label, "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(90, 8, value, "1", 1, "R", false, 0, "")
	}

	row("Ingresos", utils.FormatCOP(revenue))
	row("Tickets de parqueo completados", fmt.Sprintf("%d", completedTickets))
	row("Servicios de lavado completados", fmt.Sprintf("%d", completedWashes))
	row("Duracion promedio (min)", fmt.Sprintf("%.1f", avgDuration))
	if topEarner != nil {
		row("Mejor lavador",
			fmt.Sprintf("%s (%s en %d ordenes)", topEarner.Name, utils.FormatCOP(topEarner.Total), topEarner.Orders))
	} else {
		row("Mejor lavador", "-")
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 6,
		"Generado "+time.Now().Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition",
		fmt.Sprintf("attachment; filename=report-%s.pdf", start.Format("20060102")))
	if err := pdf.Output(c.Writer); err != nil {
		utils.ErrorLogger.Printf("Failed to render daily report PDF: %v", err)
	}
}
