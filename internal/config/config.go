package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config конфигурация бота из переменных окружения
type Config struct {
	TelegramToken   string
	DBDSN           string
	Environment     string
	DataDir         string // Каталог со статическими JSON справочниками
	MigrationsPath  string
	OccupancyURL    string // Переопределение адреса источника, пусто = по умолчанию
	DeveloperChatID int64  // Чат для отчётов об ошибках, 0 = отключено
}

// Load загружает конфигурацию из .env файла и переменных окружения
func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	cfg := &Config{
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		DBDSN:          os.Getenv("DB_DSN"),
		Environment:    os.Getenv("ENV"),
		DataDir:        os.Getenv("DATA_DIR"),
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
		OccupancyURL:   os.Getenv("OCCUPANCY_URL"),
	}

	// Устанавливаем дефолтные значения
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "migrations"
	}

	if raw := os.Getenv("DEVELOPER_CHAT_ID"); raw != "" {
		chatID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("DEVELOPER_CHAT_ID must be an integer: %w", err)
		}
		cfg.DeveloperChatID = chatID
	}

	// Проверяем обязательные поля
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	log.Printf("Config loaded\n")

	return cfg, nil
}
