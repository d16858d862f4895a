package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/andresgluna/parkwash-app/controllers"
	"github.com/andresgluna/parkwash-app/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	// Apply security middlewares
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Inisialisasi controller
	userCtrl := controllers.NewUserController(db)
	spotCtrl := controllers.NewSpotController(db)
	parkingCtrl := controllers.NewParkingController(db)
	washCtrl := controllers.NewWashController(db)
	serviceTypeCtrl := controllers.NewServiceTypeController(db)
	workerCtrl := controllers.NewWorkerController(db)
	customerCtrl := controllers.NewCustomerController(db)
	paymentCtrl := controllers.NewPaymentController(db)
	receiptCtrl := controllers.NewReceiptController(db)
	dashboardCtrl := controllers.NewDashboardController(db)
	businessCtrl := controllers.NewBusinessController(db)
	maintenanceCtrl := controllers.NewMaintenanceLogController(db)
	notificationCtrl := controllers.NewNotificationController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter untuk login/register
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Display publik: ketersediaan spot dan antrian lavadero (tanpa auth)
	r.GET("/spots", spotCtrl.GetAllSpots)
	r.GET("/service-types", serviceTypeCtrl.GetAllServiceTypes)
	r.GET("/wash/queue", washCtrl.GetQueue)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/admin")
	auth.Use(middlewares.AuthMiddleware())

	// Profil user (Admin/Cashier/Supervisor)
	auth.GET("/profile", userCtrl.GetProfile)
	auth.GET("/users", userCtrl.GetAllUsers)
	auth.POST("/logout", userCtrl.Logout)

	// SPOTS / BAYS (supervisor/admin untuk mutasi)
	auth.GET("/spots", spotCtrl.GetAllSpots)
	auth.POST("/spots", spotCtrl.CreateSpot)
	auth.GET("/spots/:spot_id", spotCtrl.GetSpotByID)
	auth.PATCH("/spots/:spot_id/status", spotCtrl.UpdateSpotStatus)
	auth.PATCH("/spots/:spot_id/rate", spotCtrl.UpdateSpotRate)
	auth.DELETE("/spots/:spot_id", spotCtrl.DeleteSpot)

	// PARKING TICKETS (cashier/admin)
	auth.POST("/parking/entry", parkingCtrl.Entry)
	auth.GET("/parking/active", parkingCtrl.GetActive)
	auth.GET("/parking/history", parkingCtrl.GetHistory)
	auth.GET("/parking/:ticket_id", parkingCtrl.GetTicketByID)
	auth.POST("/parking/:ticket_id/exit", parkingCtrl.Exit)
	auth.POST("/parking/:ticket_id/cancel", parkingCtrl.Cancel)

	// WASH ORDERS (cashier/admin)
	auth.GET("/wash-orders", washCtrl.GetAllOrders)
	auth.POST("/wash-orders", washCtrl.CreateOrder)
	auth.GET("/wash-orders/:order_id", washCtrl.GetOrderByID)
	auth.POST("/wash-orders/:order_id/start", washCtrl.StartOrder)
	auth.POST("/wash-orders/:order_id/complete", washCtrl.CompleteOrder)
	auth.POST("/wash-orders/:order_id/cancel", washCtrl.CancelOrder)

	// SERVICE TYPES (supervisor/admin)
	auth.GET("/service-types", serviceTypeCtrl.GetAllServiceTypes)
	auth.POST("/service-types", serviceTypeCtrl.CreateServiceType)
	auth.PATCH("/service-types/:type_id", serviceTypeCtrl.UpdateServiceType)
	auth.DELETE("/service-types/:type_id", serviceTypeCtrl.DeleteServiceType)

	// WORKERS (supervisor/admin)
	auth.GET("/workers", workerCtrl.GetAllWorkers)
	auth.POST("/workers", workerCtrl.CreateWorker)
	auth.GET("/workers/top-earner", workerCtrl.GetTopEarner)
	auth.GET("/workers/:worker_id", workerCtrl.GetWorkerByID)
	auth.PATCH("/workers/:worker_id", workerCtrl.UpdateWorker)
	auth.GET("/workers/:worker_id/commissions", workerCtrl.GetWorkerCommissions)

	// BUSINESS CONFIG (admin)
	auth.GET("/business-config", businessCtrl.GetBusinessConfig)
	auth.PATCH("/business-config", businessCtrl.UpdateBusinessConfig)

	// CUSTOMERS (cashier/admin)
	auth.GET("/customers", customerCtrl.GetAllCustomers)
	auth.POST("/customers", customerCtrl.CreateCustomer)
	auth.GET("/customers/:customer_id", customerCtrl.GetCustomerByID)
	auth.PATCH("/customers/:customer_id", customerCtrl.UpdateCustomer)
	auth.GET("/customers/:customer_id/history", customerCtrl.GetCustomerHistory)

	// PAYMENTS (cashier/admin) dengan rate limiter khusus
	paymentGroup := auth.Group("/payments")
	paymentGroup.Use(middlewares.PaymentRateLimiter())
	paymentGroup.Use(middlewares.LogPaymentRequest())
	{
		paymentGroup.GET("", paymentCtrl.GetAllPayments)
		paymentGroup.GET("/:payment_id", paymentCtrl.GetPaymentByID)
		paymentGroup.POST("/:payment_id/verify", paymentCtrl.VerifyPayment)
		paymentGroup.POST("/:payment_id/cancel", paymentCtrl.CancelPayment)
	}

	// Routes untuk receipt dengan middleware logger
	receiptGroup := auth.Group("/payments")
	receiptGroup.Use(middlewares.ReceiptLoggerMiddleware())
	{
		receiptGroup.POST("/:payment_id/receipt", receiptCtrl.GenerateReceipt)
	}
	auth.GET("/receipts/:receipt_id", receiptCtrl.GetReceiptByID)
	auth.GET("/receipts/:receipt_id/pdf", receiptCtrl.GetReceiptPDF)

	// MAINTENANCE LOGS (supervisor/admin)
	auth.GET("/maintenance-logs", maintenanceCtrl.GetAllMaintenanceLogs)
	auth.POST("/maintenance-logs", maintenanceCtrl.CreateMaintenanceLog)
	auth.GET("/maintenance-logs/:log_id", maintenanceCtrl.GetMaintenanceLogByID)
	auth.PATCH("/maintenance-logs/:log_id", maintenanceCtrl.UpdateMaintenanceLog)
	auth.DELETE("/maintenance-logs/:log_id", maintenanceCtrl.DeleteMaintenanceLog)

	// NOTIFICATIONS (staff/admin)
	auth.GET("/notifications", notificationCtrl.GetAllNotifications)
	auth.POST("/notifications", notificationCtrl.CreateNotification)
	auth.GET("/notifications/:notif_id", notificationCtrl.GetNotificationByID)
	auth.DELETE("/notifications/:notif_id", notificationCtrl.DeleteNotification)

	// Routes untuk Admin/Supervisor
	auth.GET("/dashboard/stats", dashboardCtrl.GetDashboardStats)
	auth.GET("/dashboard/metrics", dashboardCtrl.GetMetrics)
	auth.GET("/reports/peak-hours.png", dashboardCtrl.GetPeakHoursChart)
	auth.GET("/reports/daily-pdf", dashboardCtrl.GetDailyReportPDF)

	// WebSocket endpoint dengan middleware khusus
	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.WebSocketAuthMiddleware())
	wsGroup.Use(middlewares.RoleCheck())
	{
		wsGroup.GET("/:role", controllers.OpsHandler)
	}

	return r
}
