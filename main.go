package main

import (
	"time"

	"ngo-portal/config"
	"ngo-portal/database"
	paymentapi "ngo-portal/internal/api/payment"
	registrationapi "ngo-portal/internal/api/registration"
	routes "ngo-portal/internal/app/http"
	"ngo-portal/internal/infra/razorpay"
	"ngo-portal/internal/mail"
	"ngo-portal/internal/payments"
	"ngo-portal/internal/registration"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()
	database.InitDB()

	// Payment workflow wiring. The gateway client is constructed exactly
	// once; the key secret stays inside it and the verify service.
	gateway := razorpay.NewClient(config.Razorpay())
	memberStore := &payments.GormMembershipStore{DB: database.DB}
	donationStore := &payments.GormDonationStore{DB: database.DB}

	orders := payments.NewOrderService(gateway, donationStore, config.Razorpay())
	verify := payments.NewVerifyService(gateway, memberStore, donationStore, mail.SMTPReceiptMailer{})
	flows := registration.NewStore(registration.DefaultTTL)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, routes.Deps{
		Payment:      paymentapi.NewHandler(orders, verify),
		Registration: registrationapi.NewHandler(flows, orders, verify),
	})

	r.Run(":" + config.PORT)
}
