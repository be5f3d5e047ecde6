package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/hotel-management-app/controllers"
	"github.com/yeremiapane/hotel-management-app/middlewares"
	"github.com/yeremiapane/hotel-management-app/notifications"
)

// SetupRouter builds the HTTP surface. Every settlement, receipt and
// refund route requires an authenticated operator with the
// payment_manager or admin role.
func SetupRouter(db *gorm.DB, receiptsDir string, mailer notifications.Mailer) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	// Global middleware must be attached before any route is declared;
	// gin snapshots each handler chain at registration time.
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	userCtrl := controllers.NewUserController(db)
	customerCtrl := controllers.NewCustomerController(db)
	roomCtrl := controllers.NewRoomController(db)
	policyCtrl := controllers.NewPolicyController(db)
	priceCtrl := controllers.NewPriceController(db)
	reservationCtrl := controllers.NewReservationController(db)
	paymentCtrl := controllers.NewPaymentController(db)
	receiptCtrl := controllers.NewReceiptController(db, receiptsDir, mailer)
	refundCtrl := controllers.NewRefundController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Live dashboard WebSocket (token via query param)
	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.WebSocketAuthMiddleware())
	{
		wsGroup.GET("/:role", controllers.EventsHandler)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware())

	api.GET("/profile", userCtrl.GetProfile)

	// Front-desk resources (receptionist/admin)
	desk := api.Group("/")
	desk.Use(middlewares.RequireRoles("receptionist"))
	{
		desk.GET("/customers", customerCtrl.GetAllCustomers)
		desk.POST("/customers", customerCtrl.CreateCustomer)
		desk.GET("/customers/:customer_id", customerCtrl.GetCustomerByID)

		desk.GET("/rooms", roomCtrl.GetAllRooms)
		desk.POST("/rooms", roomCtrl.CreateRoom)
		desk.GET("/rooms/search", roomCtrl.SearchRooms)

		desk.GET("/policies", policyCtrl.GetAllPolicies)
		desk.POST("/policies", policyCtrl.CreatePolicy)
		desk.PATCH("/policies/:policy_id", policyCtrl.UpdatePolicy)

		desk.GET("/prices", priceCtrl.GetAllPrices)
		desk.POST("/prices", priceCtrl.CreatePrice)

		desk.GET("/reservations", reservationCtrl.GetAllReservations)
		desk.POST("/reservations", reservationCtrl.CreateReservation)
		desk.DELETE("/reservations/:reservation_id", reservationCtrl.CancelReservation)
		desk.POST("/reservations/:reservation_id/refund-request", reservationCtrl.RequestRefund)
	}

	// Settlement, receipts, refunds (payment_manager/admin)
	pay := api.Group("/")
	pay.Use(middlewares.RequireRoles("payment_manager"))
	pay.Use(middlewares.PaymentRateLimiter())
	pay.Use(middlewares.LogPaymentRequest())
	{
		pay.GET("/payments/pending", paymentCtrl.GetPendingPayments)
		pay.POST("/payments/update", paymentCtrl.UpdatePaymentStatus)
		pay.GET("/payments/history", paymentCtrl.GetPaymentHistory)

		pay.GET("/receipts/ready", receiptCtrl.GetReadyReceipts)
		pay.POST("/receipts/generate", receiptCtrl.GenerateReceipt)
		pay.POST("/receipts/send", receiptCtrl.SendReceipt)

		pay.GET("/refunds/requests", refundCtrl.GetRefundRequests)
		pay.POST("/refunds/process", refundCtrl.ProcessRefund)
	}

	return r
}
