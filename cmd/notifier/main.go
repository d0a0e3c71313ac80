package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"fitnessfiend/backend/config"
	"fitnessfiend/backend/mailer"
	"fitnessfiend/backend/notifier"
	"fitnessfiend/backend/utils"
)

func main() {
	sendNow := flag.Bool("now", false, "send the plans immediately and exit")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	db, err := utils.InitDB(cfg)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}

	scheduler := notifier.New(db, mailer.New(cfg), cfg.EmailSendAt)

	if *sendNow {
		if err := scheduler.SendDailyPlans(); err != nil {
			log.Fatalf("Error sending plans: %v", err)
		}
		return
	}

	if err := scheduler.Start(); err != nil {
		log.Fatalf("Error starting scheduler: %v", err)
	}
	log.Printf("Plan notifier running, daily send at %s", cfg.EmailSendAt)

	// Ждем сигнала завершения
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	log.Printf("Received signal: %v, shutting down", sig)
	scheduler.Stop()
}
