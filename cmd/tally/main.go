package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tally/internal/config"
	"tally/internal/dates"
	"tally/internal/kv"
	"tally/internal/notify"
	"tally/internal/service"
	"tally/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := kv.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	st := store.New(db)
	if err := st.Load(ctx); err != nil {
		log.Fatalf("load state: %v", err)
	}

	generator := service.NewGenerator(st)
	sweeper := service.NewSweeper(st)
	reminderSvc := service.NewReminderService(st)

	// Startup: sweep stale instances once, then fill the visible horizon.
	removed, err := sweeper.Sweep(ctx, time.Now())
	if err != nil {
		log.Fatalf("sweep: %v", err)
	}
	if removed > 0 {
		log.Printf("[info] sweep removed %d stale instances", removed)
	}

	horizon := dates.Range(dates.FromTime(time.Now()), cfg.HorizonDays)
	created, err := generator.GenerateForDates(ctx, horizon)
	if err != nil {
		log.Fatalf("generate: %v", err)
	}
	if created > 0 {
		log.Printf("[info] generated %d instances for the next %d days", created, cfg.HorizonDays)
	}

	scheduler := service.NewScheduler(time.Local)
	if _, err := scheduler.ScheduleDaily(cfg.GenerateTime, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		window := dates.Range(dates.FromTime(time.Now()), cfg.HorizonDays)
		if n, err := generator.GenerateForDates(jobCtx, window); err != nil {
			log.Printf("generate: %v", err)
		} else if n > 0 {
			log.Printf("[info] generated %d instances", n)
		}
	}); err != nil {
		log.Fatalf("schedule generation: %v", err)
	}

	if cfg.TelegramToken != "" {
		notifier, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Fatalf("notifier: %v", err)
		}
		if _, err := scheduler.ScheduleDaily(cfg.SummaryTime, func() {
			summary := reminderSvc.DailySummary(dates.FromTime(time.Now()))
			if err := notifier.Send(summary); err != nil {
				log.Printf("send summary: %v", err)
			}
		}); err != nil {
			log.Fatalf("schedule summary: %v", err)
		}
	}

	scheduler.Start()
	defer scheduler.Stop()

	log.Println("Tally planner started.")
	<-ctx.Done()
	log.Println("Shutdown complete.")
}
