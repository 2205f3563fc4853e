package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config keeps runtime settings for the planner daemon.
type Config struct {
	DatabaseURL    string
	GenerateTime   string // HH:MM, daily instance generation
	SummaryTime    string // HH:MM, daily summary notification
	HorizonDays    int    // how many days ahead instances are generated
	TelegramToken  string
	TelegramChatID int64
	GitHubToken    string
	GitHubRepo     string
}

// Load reads configuration from environment variables with sane defaults.
// Only the Telegram chat ID can fail to parse; everything else degrades to a
// default.
func Load() (Config, error) {
	cfg := Config{
		DatabaseURL:   strings.TrimSpace(os.Getenv("TALLY_DB")),
		GenerateTime:  strings.TrimSpace(os.Getenv("TALLY_GENERATE_TIME")),
		SummaryTime:   strings.TrimSpace(os.Getenv("TALLY_SUMMARY_TIME")),
		HorizonDays:   parseDays(strings.TrimSpace(os.Getenv("TALLY_HORIZON_DAYS"))),
		TelegramToken: strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
		GitHubToken:   strings.TrimSpace(os.Getenv("TALLY_GITHUB_TOKEN")),
		GitHubRepo:    strings.TrimSpace(os.Getenv("TALLY_GITHUB_REPO")),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "tally.db"
	}
	if cfg.GenerateTime == "" {
		cfg.GenerateTime = "00:05"
	}
	if cfg.SummaryTime == "" {
		cfg.SummaryTime = "09:00"
	}
	if cfg.HorizonDays == 0 {
		cfg.HorizonDays = 7
	}

	if raw := strings.TrimSpace(os.Getenv("TALLY_CHAT_ID")); raw != "" {
		chatID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("TALLY_CHAT_ID must be an integer, got %q", raw)
		}
		cfg.TelegramChatID = chatID
	}

	if cfg.TelegramToken != "" && cfg.TelegramChatID == 0 {
		return cfg, fmt.Errorf("TALLY_CHAT_ID is required when TELEGRAM_TOKEN is set")
	}

	return cfg, nil
}

func parseDays(raw string) int {
	if raw == "" {
		return 0
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		return 0
	}
	return days
}
