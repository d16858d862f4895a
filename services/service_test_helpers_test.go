package services

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/andresgluna/parkwash-app/models"
)

// setupServiceTestDB membuat SQLite in-memory dengan skema domain.
// DBChange sengaja tidak dimigrasi di sini karena tipe kolomnya MySQL-only
// (enum + trigger), dan service yang diuji tidak menyentuhnya.
func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
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
		&models.BusinessConfig{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	// Satu row config dengan IVA 19% seperti produksi
	db.Create(&models.BusinessConfig{Name: "ParkWash Test", TaxRate: 0.19})

	return db
}

func seedSpot(t *testing.T, db *gorm.DB, code string, rate int64) models.Spot {
	t.Helper()
	spot := models.Spot{
		Code:       code,
		Kind:       models.SpotKindParking,
		HourlyRate: rate,
		Status:     models.SpotStatusActive,
	}
	if err := db.Create(&spot).Error; err != nil {
		t.Fatalf("failed to seed spot: %v", err)
	}
	return spot
}

func seedBay(t *testing.T, db *gorm.DB, code string) models.Spot {
	t.Helper()
	bay := models.Spot{
		Code:   code,
		Kind:   models.SpotKindWashBay,
		Status: models.SpotStatusActive,
	}
	if err := db.Create(&bay).Error; err != nil {
		t.Fatalf("failed to seed bay: %v", err)
	}
	return bay
}

func seedWorker(t *testing.T, db *gorm.DB, name, document string, pct float64) models.Worker {
	t.Helper()
	worker := models.Worker{
		Name:          name,
		Document:      document,
		CommissionPct: pct,
		Active:        true,
	}
	if err := db.Create(&worker).Error; err != nil {
		t.Fatalf("failed to seed worker: %v", err)
	}
	return worker
}

func seedServiceType(t *testing.T, db *gorm.DB, name string, price int64) models.ServiceType {
	t.Helper()
	serviceType := models.ServiceType{
		Name:        name,
		VehicleType: "car",
		Price:       price,
		DurationEst: 30,
		Active:      true,
	}
	if err := db.Create(&serviceType).Error; err != nil {
		t.Fatalf("failed to seed service type: %v", err)
	}
	return serviceType
}
