package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/andresgluna/parkwash-app/models"
	"github.com/andresgluna/parkwash-app/router"
	"github.com/andresgluna/parkwash-app/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// TestEndToEndIntegration menguji flow utama:
// 0. Register + login -> token
// 1. Admin membuat spot parkir
// 2. Kendaraan masuk -> ticket active, spot occupied
// 3. Kendaraan keluar -> tarif dihitung, payment paid, spot bebas
// 4. Struk dibuat dari payment
// 5. Dashboard stats mencerminkan pendapatan
func TestEndToEndIntegration(t *testing.T) {
	db := setupIntegrationDB()
	r := router.SetupRouter(db)

	token := loginTest(t, r)
	spotID := createSpotTest(t, r, token)
	ticketID := entryTest(t, r, token, spotID)

	// Mundurkan entry time 2.5 jam supaya tarifnya deterministik
	db.Model(&models.Ticket{}).Where("id = ?", ticketID).
		Update("entry_time", time.Now().Add(-150*time.Minute))

	exitTest(t, r, token, ticketID)
	paymentID := findPaymentTest(t, db, ticketID)
	receiptTest(t, r, token, paymentID)
	dashboardTest(t, r, token)
}

// setupIntegrationDB -> migrasi model di SQLite in-memory
func setupIntegrationDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Spot{},
		&models.Customer{},
		&models.RateCard{},
		&models.Ticket{},
		&models.ServiceType{},
		&models.Worker{},
		&models.WashOrder{},
		&models.WashOrderWorker{},
		&models.Commission{},
		&models.Payment{},
		&models.Receipt{},
		&models.ReceiptItem{},
		&models.BusinessConfig{},
		&models.MaintenanceLog{},
		&models.Notification{},
	)
	if err != nil {
		panic(err)
	}
	db.Create(&models.BusinessConfig{Name: "ParkWash Test", TaxID: "900123456-7", TaxRate: 0.19})
	return db
}

func doRequest(t *testing.T, r *gin.Engine, method, url, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		assert.NoError(t, err)
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req, err := http.NewRequest(method, url, body)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data, ok := response["data"].(map[string]interface{})
	assert.True(t, ok, "expected data object in response: %s", w.Body.String())
	return data
}

func loginTest(t *testing.T, r *gin.Engine) string {
	w := doRequest(t, r, "POST", "/register", "", map[string]string{
		"name":     "Admin",
		"email":    "admin@parkwash.co",
		"password": "secret-password",
		"role":     "admin",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, r, "POST", "/login", "", map[string]string{
		"email":    "admin@parkwash.co",
		"password": "secret-password",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	data := decodeData(t, w)
	token, ok := data["token"].(string)
	assert.True(t, ok)
	assert.NotEmpty(t, token)
	return token
}

func createSpotTest(t *testing.T, r *gin.Engine, token string) uint {
	w := doRequest(t, r, "POST", "/admin/spots", token, map[string]interface{}{
		"code":        "A-01",
		"level":       "1",
		"hourly_rate": 3000,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	data := decodeData(t, w)
	return uint(data["id"].(float64))
}

func entryTest(t *testing.T, r *gin.Engine, token string, spotID uint) uint {
	w := doRequest(t, r, "POST", "/admin/parking/entry", token, map[string]interface{}{
		"spot_id": spotID,
		"vehicle": map[string]string{"plate": "ABC123", "make": "Chevrolet", "color": "blanco"},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	data := decodeData(t, w)
	assert.Equal(t, "active", data["status"])
	return uint(data["id"].(float64))
}

func exitTest(t *testing.T, r *gin.Engine, token string, ticketID uint) {
	w := doRequest(t, r, "POST", fmt.Sprintf("/admin/parking/%d/exit", ticketID), token, map[string]interface{}{
		"method":        "cash",
		"cash_received": 11000,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	data := decodeData(t, w)
	assert.Equal(t, "completed", data["status"])
	assert.Equal(t, float64(10710), data["total"]) // 3h * 3000 + 19% IVA
}

func findPaymentTest(t *testing.T, db *gorm.DB, ticketID uint) uint {
	var payment models.Payment
	assert.NoError(t, db.Where("ticket_id = ?", ticketID).First(&payment).Error)
	assert.Equal(t, models.PaymentStatusPaid, payment.Status)
	assert.Equal(t, int64(290), payment.Change)
	return payment.ID
}

func receiptTest(t *testing.T, r *gin.Engine, token string, paymentID uint) {
	w := doRequest(t, r, "POST", fmt.Sprintf("/admin/payments/%d/receipt", paymentID), token, nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	data := decodeData(t, w)
	assert.Equal(t, "ParkWash Test", data["business_name"])
	assert.Equal(t, float64(10710), data["total"])
	assert.NotEmpty(t, data["receipt_number"])

	// Struk kedua untuk payment yang sama tidak dibuat ulang
	w = doRequest(t, r, "POST", fmt.Sprintf("/admin/payments/%d/receipt", paymentID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func dashboardTest(t *testing.T, r *gin.Engine, token string) {
	w := doRequest(t, r, "GET", "/admin/dashboard/stats", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := decodeData(t, w)
	assert.Equal(t, float64(10710), data["revenue_today"])
	assert.Equal(t, float64(0), data["active_tickets"])
}
