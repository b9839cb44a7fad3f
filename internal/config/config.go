package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	DBDSN     string
	MediaDir  string
	LogFile   string
	StoreName string
	// Seller number for the wa.me checkout handoff, digits only (no '+').
	WhatsAppNumber string
}

func Load() Config {
	// .env is optional; real env vars win.
	_ = godotenv.Load()

	cfg := Config{
		Port:           getenv("PORT", "8080"),
		DBDSN:          getenv("DB_DSN", "lumina.db"),
		MediaDir:       getenv("MEDIA_DIR", "./web/media"),
		LogFile:        getenv("LOG_FILE", "./lumina.log"),
		StoreName:      getenv("STORE_NAME", "Lumina Jewelry"),
		WhatsAppNumber: getenv("WHATSAPP_NUMBER", "1234567890"),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s MEDIA_DIR=%s LOG_FILE=%s", cfg.Port, cfg.DBDSN, cfg.MediaDir, cfg.LogFile)
	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
