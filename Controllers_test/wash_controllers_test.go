package Controllers_test

import (
	"encoding/json"
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

func setupTestDBForWash() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	err = db.AutoMigrate(
		&models.Spot{},
		&models.Customer{},
		&models.ServiceType{},
		&models.Worker{},
		&models.WashOrder{},
		&models.WashOrderWorker{},
		&models.Commission{},
		&models.Payment{},
		&models.BusinessConfig{},
	)
	if err != nil {
		panic(err)
	}
	db.Create(&models.BusinessConfig{Name: "ParkWash Test", TaxRate: 0.19})
	return db
}

func setupWashRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	washCtrl := controllers.NewWashController(db)
	router.POST("/wash-orders", washCtrl.CreateOrder)
	router.GET("/wash/queue", washCtrl.GetQueue)
	return router
}

// Antrian: priority high dulu, lalu FIFO berdasarkan created_at.
func TestWashQueueOrdering(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForWash()

	serviceType := models.ServiceType{Name: "Lavado basico", VehicleType: "car", Price: 25000, DurationEst: 30, Active: true}
	db.Create(&serviceType)

	base := time.Now().Add(-1 * time.Hour)
	seed := func(number, priority string, createdAt time.Time, status string) {
		db.Create(&models.WashOrder{
			Number:        number,
			ServiceTypeID: serviceType.ID,
			Plate:         "QUE001",
			Price:         serviceType.Price,
			Status:        status,
			Priority:      priority,
			CreatedAt:     createdAt,
		})
	}

	seed("WASH-Q-1", "normal", base, models.WashStatusPending)
	seed("WASH-Q-2", "high", base.Add(10*time.Minute), models.WashStatusPending)
	seed("WASH-Q-3", "normal", base.Add(5*time.Minute), models.WashStatusInProgress)
	seed("WASH-Q-4", "normal", base.Add(20*time.Minute), models.WashStatusCompleted) // bukan antrian

	router := setupWashRouter(db)
	req, err := http.NewRequest("GET", "/wash/queue", nil)
	assert.NoError(t, err)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, float64(3), data["count"])

	orders := data["orders"].([]interface{})
	first := orders[0].(map[string]interface{})
	second := orders[1].(map[string]interface{})
	third := orders[2].(map[string]interface{})
	assert.Equal(t, "WASH-Q-2", first["number"]) // high priority duluan
	assert.Equal(t, "WASH-Q-1", second["number"])
	assert.Equal(t, "WASH-Q-3", third["number"])
}

func TestCreateWashOrderUnknownServiceType(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForWash()
	router := setupWashRouter(db)

	w := postJSON(t, router, "/wash-orders", map[string]interface{}{
		"service_type_id": 999,
		"vehicle":         map[string]string{"plate": "NOP001"},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
