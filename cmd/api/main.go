package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"boardinghouse/internal/config"
	"boardinghouse/internal/database"
	"boardinghouse/internal/mailer"
	"boardinghouse/internal/middleware"
	"boardinghouse/internal/modules/auth"
	"boardinghouse/internal/modules/bill"
	"boardinghouse/internal/modules/email"
	"boardinghouse/internal/modules/house"
	"boardinghouse/internal/modules/notify"
	"boardinghouse/internal/modules/payment"
	"boardinghouse/internal/modules/report"
	"boardinghouse/internal/modules/room"
	jwtsvc "boardinghouse/internal/pkg/jwt"
	"boardinghouse/internal/repository"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	resetRepo := repository.NewPasswordResetRepository(db)
	houseRepo := repository.NewHouseRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	contractRepo := repository.NewContractRepository(db)
	billRepo := repository.NewBillRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	emailService := email.NewService(mailer.NewSMTPMailer(cfg.SMTP), cfg.SMTP.FromAddr, cfg.SMTP.FromName)

	hub := notify.NewHub()
	wsHandler := notify.NewWSHandler(hub, j, log.Printf)
	events := notify.NewEvents(hub, userRepo, billRepo, emailService, log.Printf)

	authService := auth.NewService(userRepo, resetRepo, j, emailService, cfg.ResetTTL, cfg.ResetBaseURL, log.Printf)
	authHandler := auth.NewHandler(authService)

	houseService := house.NewService(houseRepo)
	houseHandler := house.NewHandler(houseService)

	roomService := room.NewService(roomRepo, houseRepo, userRepo, contractRepo)
	roomHandler := room.NewHandler(roomService)

	billService := bill.NewService(billRepo, roomRepo, contractRepo, events, log.Printf)
	billHandler := bill.NewHandler(billService)

	gatewayClient := &http.Client{Timeout: 15 * time.Second}
	paymentService := payment.NewService(paymentRepo, billRepo, billRepo, events, gatewayClient, cfg.VNPay, log.Printf)
	paymentHandler := payment.NewHandler(paymentService, log.Printf)

	reportService := report.NewService(paymentRepo, roomRepo, houseRepo)
	reportHandler := report.NewHandler(reportService)

	r := gin.Default()
	r.Use(middleware.CORS(), middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		paymentHandler.RegisterPublicRoutes(v1)
		wsHandler.RegisterRoutes(v1)

		// any authenticated user
		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			paymentHandler.RegisterProtectedRoutes(protected)
			billHandler.RegisterSharedRoutes(protected)
		}

		// landlord only
		landlord := v1.Group("/")
		landlord.Use(middleware.JWTAuth(j), middleware.LandlordOnly())
		{
			houseHandler.RegisterRoutes(landlord)
			roomHandler.RegisterRoutes(landlord)
			billHandler.RegisterLandlordRoutes(landlord)
			reportHandler.RegisterRoutes(landlord)
		}
	}

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
