package jobs

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/yeremiapane/hotel-management-app/models"
	"github.com/yeremiapane/hotel-management-app/notifications"
	"github.com/yeremiapane/hotel-management-app/utils"
)

// ReminderJob emails guests whose reservation is still unpaid shortly
// before check-in, so pending settlements do not slip past the stay.
type ReminderJob struct {
	db     *gorm.DB
	mailer notifications.Mailer
	cron   *cron.Cron
}

func NewReminderJob(db *gorm.DB, mailer notifications.Mailer) *ReminderJob {
	return &ReminderJob{db: db, mailer: mailer, cron: cron.New()}
}

// Start schedules the daily run at 09:00.
func (j *ReminderJob) Start() error {
	if _, err := j.cron.AddFunc("0 9 * * *", j.SendPendingPaymentReminders); err != nil {
		return err
	}
	j.cron.Start()
	return nil
}

// Stop halts the scheduler; running jobs finish.
func (j *ReminderJob) Stop() {
	j.cron.Stop()
}

// SendPendingPaymentReminders emails guests with a pending payment and
// a check-in within the next 48 hours.
func (j *ReminderJob) SendPendingPaymentReminders() {
	utils.InfoLogger.Println("Running job: SendPendingPaymentReminders...")

	now := time.Now()
	upperBound := now.Add(48 * time.Hour)

	var reservations []models.Reservation
	err := j.db.
		Preload("Customer").
		Preload("Room").
		Where("payment_status = ? AND start_date BETWEEN ? AND ?", "pending", now, upperBound).
		Find(&reservations).Error
	if err != nil {
		utils.ErrorLogger.Printf("Error checking for pending payments: %v", err)
		return
	}

	for _, reservation := range reservations {
		subject := "Reminder: payment pending for your upcoming stay"
		body := fmt.Sprintf(
			"<p>Dear %s,</p><p>Your reservation for room %s checking in on %s still has a pending payment of %s. Please settle it before arrival.</p>",
			reservation.Customer.Name,
			reservation.Room.Code,
			reservation.StartDate.Format("02 Jan 2006"),
			utils.FormatCurrency(reservation.PaymentAmount),
		)

		if err := j.mailer.Send(reservation.Customer.Name, reservation.Customer.Email, subject, body); err != nil {
			utils.ErrorLogger.Printf("Error sending reminder for reservation %d: %v", reservation.ID, err)
			continue
		}
		utils.InfoLogger.Printf("Payment reminder sent for reservation %d", reservation.ID)
	}
}
