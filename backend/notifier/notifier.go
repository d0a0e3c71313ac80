package notifier

import (
	"errors"
	"log"
	"time"

	"fitnessfiend/backend/models"
	"fitnessfiend/backend/plan"

	"github.com/go-co-op/gocron"
	"gorm.io/gorm"
)

// PlanMailer sends a rendered plan to one recipient.
type PlanMailer interface {
	SendPlan(toEmail string, planLines []string) error
}

// Scheduler runs the daily plan mailing. It lives in its own long-running
// process, separate from the HTTP server.
type Scheduler struct {
	scheduler *gocron.Scheduler
	db        *gorm.DB
	mailer    PlanMailer
	sendAt    string // HH:MM
}

func New(db *gorm.DB, mailer PlanMailer, sendAt string) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.Local),
		db:        db,
		mailer:    mailer,
		sendAt:    sendAt,
	}
}

// Start schedules the daily send and returns immediately.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(1).Day().At(s.sendAt).Do(s.runDailySend)
	if err != nil {
		return err
	}
	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) runDailySend() {
	if err := s.SendDailyPlans(); err != nil {
		log.Printf("Daily plan send failed: %v", err)
	}
}

// SendDailyPlans mails every opted-in user their latest plan. One failing
// user does not abort the loop for the rest; there are no retries.
func (s *Scheduler) SendDailyPlans() error {
	var users []models.User
	if err := s.db.Where("wants_emails = ?", true).Find(&users).Error; err != nil {
		return err
	}

	sent := 0
	for _, user := range users {
		latest, err := plan.LatestLog(s.db, user.ID)
		if err != nil {
			if !errors.Is(err, plan.ErrNoPlan) {
				log.Printf("Could not load plan for user %d: %v", user.ID, err)
			}
			continue
		}

		lines := plan.Render(s.db, latest)
		if err := s.mailer.SendPlan(user.Email, lines); err != nil {
			log.Printf("Could not send plan to user %d: %v", user.ID, err)
			continue
		}
		sent++
	}

	log.Printf("Daily plans sent to %d of %d opted-in users", sent, len(users))
	return nil
}
