package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/andresgluna/parkwash-app/billing"
	"github.com/andresgluna/parkwash-app/models"
	"github.com/andresgluna/parkwash-app/services"
	"github.com/andresgluna/parkwash-app/utils"
)

type ParkingController struct {
	DB  *gorm.DB
	svc *services.TicketService
}

func NewParkingController(db *gorm.DB) *ParkingController {
	return &ParkingController{
		DB:  db,
		svc: services.NewTicketService(db),
	}
}

// statusForBillingError memetakan error taxonomy core ke status HTTP.
func statusForBillingError(err error) int {
	switch {
	case errors.Is(err, billing.ErrTicketNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, billing.ErrSpotUnavailable),
		errors.Is(err, billing.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, billing.ErrInvalidDiscount):
		return http.StatusUnprocessableEntity
	case errors.Is(err, billing.ErrInvalidTimeRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Entry -> kendaraan masuk, buka ticket baru
func (pc *ParkingController) Entry(c *gin.Context) {
	var req struct {
		SpotID     uint                     `json:"spot_id" binding:"required"`
		Vehicle    services.VehicleSnapshot `json:"vehicle" binding:"required"`
		CustomerID *uint                    `json:"customer_id"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var employeeID *uint
	if idInterface, exists := c.Get("user_id"); exists {
		if id, ok := idInterface.(uint); ok {
			employeeID = &id
		}
	}

	ticket, err := pc.svc.Create(req.SpotID, req.Vehicle, employeeID, req.CustomerID)
	if err != nil {
		utils.RespondError(c, statusForBillingError(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Vehicle entry registered", ticket)
}

// Exit -> kendaraan keluar, hitung tarif dan tutup ticket
func (pc *ParkingController) Exit(c *gin.Context) {
	ticketID, err := strconv.Atoi(c.Param("ticket_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid ticket id"))
		return
	}

	var pay services.PaymentInfo
	if err := c.ShouldBindJSON(&pay); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if idInterface, exists := c.Get("user_id"); exists {
		if id, ok := idInterface.(uint); ok {
			pay.VerifiedBy = &id
		}
	}

	ticket, err := pc.svc.Exit(uint(ticketID), pay)
	if err != nil {
		utils.RespondError(c, statusForBillingError(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Vehicle exit processed", ticket)
}

// Cancel -> batalkan ticket tanpa tarif
func (pc *ParkingController) Cancel(c *gin.Context) {
	ticketID, err := strconv.Atoi(c.Param("ticket_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid ticket id"))
		return
	}

	ticket, err := pc.svc.Cancel(uint(ticketID))
	if err != nil {
		utils.RespondError(c, statusForBillingError(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Ticket cancelled", ticket)
}

// GetActive -> semua ticket yang masih di dalam lot
func (pc *ParkingController) GetActive(c *gin.Context) {
	var tickets []models.Ticket
	if err := pc.DB.Preload("Spot").
		Where("status IN ?", []string{models.TicketStatusActive, models.TicketStatusPending}).
		Order("entry_time ASC").
		Find(&tickets).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Active tickets", tickets)
}

// GetHistory -> ticket selesai/batal dalam rentang tanggal, dengan pagination
func (pc *ParkingController) GetHistory(c *gin.Context) {
	start, end, err := parseDateRange(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := pc.DB.Model(&models.Ticket{}).
		Where("status IN ?", []string{models.TicketStatusCompleted, models.TicketStatusCancelled}).
		Where("entry_time >= ? AND entry_time <= ?", start, end)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var tickets []models.Ticket
	if err := query.Preload("Spot").
		Order("entry_time DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&tickets).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Ticket history", gin.H{
		"tickets": tickets,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}

// GetTicketByID -> detail satu ticket
func (pc *ParkingController) GetTicketByID(c *gin.Context) {
	ticketID := c.Param("ticket_id")
	var ticket models.Ticket
	if err := pc.DB.Preload("Spot").Preload("Customer").First(&ticket, ticketID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Ticket detail", ticket)
}

// parseDateRange membaca query start/end (format 2006-01-02).
// Default: 30 hari terakhir. End date inklusif sampai akhir hari.
func parseDateRange(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now()
	start := now.AddDate(0, 0, -30)
	end := now

	if s := c.Query("start"); s != "" {
		parsed, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			return start, end, errors.New("invalid start date, expected YYYY-MM-DD")
		}
		start = parsed
	}
	if e := c.Query("end"); e != "" {
		parsed, err := time.ParseInLocation("2006-01-02", e, time.Local)
		if err != nil {
			return start, end, errors.New("invalid end date, expected YYYY-MM-DD")
		}
		end = parsed.Add(24*time.Hour - time.Second)
	}
	if end.Before(start) {
		return start, end, errors.New("end date is before start date")
	}
	return start, end, nil
}
