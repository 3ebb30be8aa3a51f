package database

import (
	"log"

	"github.com/campustix/campus-ticketing/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Category{},
		&models.OrganizerUnit{},
		&models.Event{},
		&models.TicketType{},
		&models.Booking{},
		&models.BookingItem{},
		&models.PromoCode{},
		&models.BookingPromo{},
		&models.Payment{},
		&models.Ticket{},
		&models.WaitingListEntry{},
		&models.Review{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Partial unique index: one pending waitlist entry per member+event.
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_waitlist_pending
		ON waiting_list_entries (event_id, member_id)
		WHERE status = 'pending'
	`)

	return db
}
