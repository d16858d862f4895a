package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/andresgluna/parkwash-app/config"
	"github.com/andresgluna/parkwash-app/database"
	"github.com/andresgluna/parkwash-app/middlewares"
	"github.com/andresgluna/parkwash-app/models"
	"github.com/andresgluna/parkwash-app/router"
	"github.com/andresgluna/parkwash-app/services"
	"github.com/andresgluna/parkwash-app/utils"
)

func init() {
	// Load .env file di awal sebelum apapun
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()
}

func main() {
	// Initialize DB
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	// Simpan koneksi database ke utils untuk digunakan di controller
	utils.InitDB(db)

	// Set gin mode
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)
	seedBusinessConfig(db)

	// Setup rate limiter (50 requests per second per IP)
	rateLimiter := middlewares.NewRateLimiter(50, 1)

	// Change monitor untuk broadcast perubahan spot/ticket/wash/payment
	monitor := services.NewChangeMonitor(db)
	monitor.Interval = 500 * time.Millisecond
	monitor.Start()
	defer monitor.Stop()

	// Reconciler melepaskan spot yatim (ticket sudah selesai tapi spot
	// masih tertandai occupied, mis. karena crash di tengah exit)
	reconciler := services.NewReconciler(db)
	reconciler.Start()
	defer reconciler.Stop()

	// Bersihkan token blacklist yang sudah kadaluarsa
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			utils.CleanupBlacklist()
		}
	}()

	// Setup router
	r := router.SetupRouter(db)
	r.Use(rateLimiter.RateLimit())

	// Set trusted proxies
	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	// Run server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
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
		&models.DBChange{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")

	// Execute triggers
	if err := database.ExecuteTriggers(db); err != nil {
		utils.ErrorLogger.Printf("Error setting up triggers: %v", err)
	}
}

// seedBusinessConfig memastikan selalu ada satu row config.
// TaxRate default 0.19 (IVA Colombia).
func seedBusinessConfig(db *gorm.DB) {
	var count int64
	db.Model(&models.BusinessConfig{}).Count(&count)
	if count > 0 {
		return
	}

	config := models.BusinessConfig{
		Name:    getEnvOr("BUSINESS_NAME", "ParkWash"),
		Address: os.Getenv("BUSINESS_ADDRESS"),
		Phone:   os.Getenv("BUSINESS_PHONE"),
		TaxID:   os.Getenv("BUSINESS_TAX_ID"),
		TaxRate: 0.19,
	}
	if err := db.Create(&config).Error; err != nil {
		utils.ErrorLogger.Printf("Error seeding business config: %v", err)
	}
}

func getEnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
