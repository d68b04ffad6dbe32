package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
)

type Config struct {
	DatabaseURL      string
	HTTPAddr         string
	OpenAIAPIKey     string
	OpenAIModel      string
	TaskPriceDefault decimal.Decimal
}

func Load() (Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	taskPrice := decimal.Zero
	if raw := os.Getenv("TASK_PRICE_DEFAULT"); raw != "" {
		var err error
		taskPrice, err = decimal.NewFromString(raw)
		if err != nil {
			return Config{}, fmt.Errorf("TASK_PRICE_DEFAULT is not a valid number: %w", err)
		}
	}

	return Config{
		DatabaseURL:      dbURL,
		HTTPAddr:         addr,
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:      os.Getenv("OPENAI_MODEL"),
		TaskPriceDefault: taskPrice,
	}, nil
}
