package main

import (
	"log"

	"github.com/campustix/campus-ticketing/config"
	"github.com/campustix/campus-ticketing/internal/handler"
	"github.com/campustix/campus-ticketing/internal/middleware"
	"github.com/campustix/campus-ticketing/internal/repository"
	"github.com/campustix/campus-ticketing/internal/service"
	"github.com/campustix/campus-ticketing/pkg/database"
	"github.com/campustix/campus-ticketing/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer publisher.Close()

	// Repositories
	eventRepo := repository.NewEventRepository(db)
	ticketTypeRepo := repository.NewTicketTypeRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	promoRepo := repository.NewPromoRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	waitlistRepo := repository.NewWaitlistRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	// Services
	inventorySvc := service.NewInventoryService(eventRepo, ticketTypeRepo, bookingRepo)
	promoSvc := service.NewPromoService(promoRepo, bookingRepo)
	bookingSvc := service.NewBookingService(bookingRepo, eventRepo, ticketTypeRepo, promoRepo, promoSvc, inventorySvc, publisher)
	paymentSvc := service.NewPaymentService(bookingRepo, eventRepo, ticketTypeRepo, paymentRepo, inventorySvc, publisher)
	eventSvc := service.NewEventService(eventRepo, ticketTypeRepo, publisher)
	waitlistSvc := service.NewWaitlistService(waitlistRepo, eventRepo)
	reviewSvc := service.NewReviewService(reviewRepo, bookingRepo, eventRepo)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "campus-ticketing"})
	})

	handler.NewEventHandler(eventSvc, inventorySvc).RegisterRoutes(e)
	handler.NewBookingHandler(bookingSvc, promoSvc, paymentSvc).RegisterRoutes(e)
	handler.NewWaitlistHandler(waitlistSvc).RegisterRoutes(e)
	handler.NewReviewHandler(reviewSvc).RegisterRoutes(e)
	handler.NewPromoHandler(promoSvc).RegisterRoutes(e)

	log.Printf("Campus Ticketing starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
