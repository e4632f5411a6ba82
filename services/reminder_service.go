// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"

	"joyaspa-backend/models"
	"joyaspa-backend/utils"
)

// ReminderService sends day-before SMS reminders for confirmed bookings.
type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
	from   string
}

func NewReminderService(db *gorm.DB) *ReminderService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		from: os.Getenv("TWILIO_FROM_NUMBER"),
	}
}

// StartScheduler runs the reminder job every day at 9 AM.
func (s *ReminderService) StartScheduler() {
	c := cron.New()

	c.AddFunc("0 9 * * *", func() {
		s.SendDailyReminders()
	})

	c.Start()
	log.Println("Reminder scheduler started")
}

// SendDailyReminders processes tomorrow's confirmed bookings. A failure
// for one booking is logged and never aborts the run.
func (s *ReminderService) SendDailyReminders() {
	log.Println("Starting daily reminder processing...")

	tomorrow := utils.BeginningOfDay(time.Now().AddDate(0, 0, 1)).Format("2006-01-02")

	var bookings []models.Booking
	err := s.db.Preload("Branch").Preload("Customer").
		Where("date = ? AND status = ?", tomorrow, models.BookingStatusConfirmed).
		Find(&bookings).Error
	if err != nil {
		log.Printf("Failed to fetch bookings for %s: %v", tomorrow, err)
		return
	}

	for _, booking := range bookings {
		s.remindBooking(booking)
	}

	log.Println("Daily reminder processing completed")
}

func (s *ReminderService) remindBooking(booking models.Booking) {
	if booking.Customer == nil || !utils.ValidatePhone(booking.Customer.Phone) {
		return
	}

	branchName := "our spa"
	if booking.Branch != nil {
		branchName = booking.Branch.Name
	}

	body := fmt.Sprintf("Reminder: your booking #%d at %s is tomorrow (%s). See you there!",
		booking.ID, branchName, booking.Date)

	entry := models.ReminderLog{
		BookingID: booking.ID,
		Channel:   "sms",
		Status:    "sent",
		SentAt:    time.Now(),
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(booking.Customer.Phone)
	params.SetFrom(s.from)
	params.SetBody(body)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		log.Printf("Booking %d: reminder SMS failed: %v", booking.ID, err)
		entry.Status = "failed"
		entry.ErrorMessage = err.Error()
	}

	if err := s.db.Create(&entry).Error; err != nil {
		log.Printf("Booking %d: failed to write reminder log: %v", booking.ID, err)
	}
}
