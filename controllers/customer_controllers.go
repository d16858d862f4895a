package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/andresgluna/parkwash-app/models"
	"github.com/andresgluna/parkwash-app/utils"
)

type CustomerController struct {
	DB *gorm.DB
}

func NewCustomerController(db *gorm.DB) *CustomerController {
	return &CustomerController{DB: db}
}

// GetAllCustomers -> opsional filter plat untuk lookup cepat di kasir
func (cc *CustomerController) GetAllCustomers(c *gin.Context) {
	query := cc.DB.Model(&models.Customer{})
	if plate := c.Query("plate"); plate != "" {
		query = query.Where("plate = ?", plate)
	}

	var customers []models.Customer
	if err := query.Order("name ASC").Find(&customers).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All customers", customers)
}

// CreateCustomer
func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	type reqBody struct {
		Name  string `json:"name" binding:"required"`
		Phone string `json:"phone"`
		Plate string `json:"plate"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	customer := models.Customer{
		Name:   body.Name,
		Phone:  body.Phone,
		Plate:  body.Plate,
		Status: "active",
	}

	if err := cc.DB.Create(&customer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Customer created", customer)
}

// GetCustomerByID
func (cc *CustomerController) GetCustomerByID(c *gin.Context) {
	idStr := c.Param("customer_id")
	id, _ := strconv.Atoi(idStr)

	var customer models.Customer
	if err := cc.DB.First(&customer, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Customer detail", customer)
}

// UpdateCustomer
func (cc *CustomerController) UpdateCustomer(c *gin.Context) {
	idStr := c.Param("customer_id")
	id, _ := strconv.Atoi(idStr)

	type reqBody struct {
		Name   *string `json:"name"`
		Phone  *string `json:"phone"`
		Plate  *string `json:"plate"`
		Status *string `json:"status"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var customer models.Customer
	if err := cc.DB.First(&customer, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if body.Name != nil {
		customer.Name = *body.Name
	}
	if body.Phone != nil {
		customer.Phone = *body.Phone
	}
	if body.Plate != nil {
		customer.Plate = *body.Plate
	}
	if body.Status != nil {
		customer.Status = *body.Status
	}

	if err := cc.DB.Save(&customer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Customer updated", customer)
}

// GetCustomerHistory -> riwayat ticket dan wash order satu pelanggan
func (cc *CustomerController) GetCustomerHistory(c *gin.Context) {
	idStr := c.Param("customer_id")
	id, _ := strconv.Atoi(idStr)

	var customer models.Customer
	if err := cc.DB.First(&customer, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var tickets []models.Ticket
	if err := cc.DB.Where("customer_id = ?", customer.ID).
		Order("entry_time DESC").Limit(50).
		Find(&tickets).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var orders []models.WashOrder
	if err := cc.DB.Preload("ServiceType").
		Where("customer_id = ?", customer.ID).
		Order("created_at DESC").Limit(50).
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Customer history", gin.H{
		"customer":    customer,
		"tickets":     tickets,
		"wash_orders": orders,
	})
}
