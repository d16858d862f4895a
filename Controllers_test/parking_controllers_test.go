package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/andresgluna/parkwash-app/controllers"
	"github.com/andresgluna/parkwash-app/models"
	"github.com/andresgluna/parkwash-app/utils"
)

func setupTestDBForParking() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	err = db.AutoMigrate(
		&models.Spot{},
		&models.Customer{},
		&models.RateCard{},
		&models.Ticket{},
		&models.Payment{},
		&models.BusinessConfig{},
		&models.User{},
	)
	if err != nil {
		panic(err)
	}
	db.Create(&models.BusinessConfig{Name: "ParkWash Test", TaxRate: 0.19})
	return db
}

func setupParkingRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	parkingCtrl := controllers.NewParkingController(db)
	router.POST("/parking/entry", parkingCtrl.Entry)
	router.GET("/parking/active", parkingCtrl.GetActive)
	router.POST("/parking/:ticket_id/exit", parkingCtrl.Exit)
	router.POST("/parking/:ticket_id/cancel", parkingCtrl.Cancel)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, url string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	assert.NoError(t, err)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(body))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestParkingEntryExitFlow(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForParking()
	router := setupParkingRouter(db)

	spot := models.Spot{Code: "A-01", Kind: models.SpotKindParking, HourlyRate: 3000, Status: models.SpotStatusActive}
	db.Create(&spot)

	// Entry
	w := postJSON(t, router, "/parking/entry", map[string]interface{}{
		"spot_id": spot.ID,
		"vehicle": map[string]string{"plate": "ABC123", "make": "Mazda", "color": "azul"},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	ticketID := uint(data["id"].(float64))
	assert.Equal(t, "active", data["status"])

	// Mundurkan entry time supaya ada durasi yang ditagih
	db.Model(&models.Ticket{}).Where("id = ?", ticketID).
		Update("entry_time", time.Now().Add(-150*time.Minute))

	// Exit
	w = postJSON(t, router, fmt.Sprintf("/parking/%d/exit", ticketID), map[string]interface{}{
		"method":        "cash",
		"cash_received": 11000,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data = response["data"].(map[string]interface{})
	assert.Equal(t, "completed", data["status"])
	assert.Equal(t, float64(3), data["billed_hours"])
	assert.Equal(t, float64(10710), data["total"])
}

func TestParkingEntryOccupiedSpot(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForParking()
	router := setupParkingRouter(db)

	spot := models.Spot{Code: "B-01", Kind: models.SpotKindParking, HourlyRate: 3000, Status: models.SpotStatusActive}
	db.Create(&spot)

	w := postJSON(t, router, "/parking/entry", map[string]interface{}{
		"spot_id": spot.ID,
		"vehicle": map[string]string{"plate": "AAA111"},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Entry kedua pada spot yang sama -> 409
	w = postJSON(t, router, "/parking/entry", map[string]interface{}{
		"spot_id": spot.ID,
		"vehicle": map[string]string{"plate": "BBB222"},
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestParkingExitErrors(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForParking()
	router := setupParkingRouter(db)

	// Ticket tidak ada -> 404
	w := postJSON(t, router, "/parking/999/exit", map[string]interface{}{})
	assert.Equal(t, http.StatusNotFound, w.Code)

	spot := models.Spot{Code: "C-01", Kind: models.SpotKindParking, HourlyRate: 3000, Status: models.SpotStatusActive}
	db.Create(&spot)

	w = postJSON(t, router, "/parking/entry", map[string]interface{}{
		"spot_id": spot.ID,
		"vehicle": map[string]string{"plate": "ERR001"},
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	ticketID := uint(response["data"].(map[string]interface{})["id"].(float64))

	// Diskon melebihi total -> 422, ticket tetap aktif
	w = postJSON(t, router, fmt.Sprintf("/parking/%d/exit", ticketID), map[string]interface{}{
		"discount": 9999999,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Exit normal lalu exit kedua -> 409
	w = postJSON(t, router, fmt.Sprintf("/parking/%d/exit", ticketID), map[string]interface{}{})
	assert.Equal(t, http.StatusOK, w.Code)
	w = postJSON(t, router, fmt.Sprintf("/parking/%d/exit", ticketID), map[string]interface{}{})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestParkingGetActive(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForParking()
	router := setupParkingRouter(db)

	spot1 := models.Spot{Code: "D-01", Kind: models.SpotKindParking, HourlyRate: 2000, Status: models.SpotStatusActive}
	spot2 := models.Spot{Code: "D-02", Kind: models.SpotKindParking, HourlyRate: 2000, Status: models.SpotStatusActive}
	db.Create(&spot1)
	db.Create(&spot2)

	w := postJSON(t, router, "/parking/entry", map[string]interface{}{
		"spot_id": spot1.ID,
		"vehicle": map[string]string{"plate": "ACT001"},
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	w = postJSON(t, router, "/parking/entry", map[string]interface{}{
		"spot_id": spot2.ID,
		"vehicle": map[string]string{"plate": "ACT002"},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	req, err := http.NewRequest("GET", "/parking/active", nil)
	assert.NoError(t, err)
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	assert.Equal(t, http.StatusOK, w2.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w2.Body.Bytes(), &response))
	data := response["data"].([]interface{})
	assert.Len(t, data, 2)
}
