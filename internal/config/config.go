package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config regroupe la configuration du serveur, chargée depuis l'environnement
type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// AdminKeyHash est le hash bcrypt de la clé d'administration,
	// comparée au header X-Admin-Key
	AdminKeyHash string

	// ScoringStrategy : "linear150" (défaut) ou "percent100"
	ScoringStrategy string

	// PublishTarget est le chemin du fichier où publier les snapshots
	PublishTarget string
}

// LoadConfig charge la configuration depuis l'environnement.
// Un fichier .env est chargé s'il existe (développement local).
func LoadConfig() (*Config, error) {
	// .env optionnel, les variables déjà définies priment
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBUser:          os.Getenv("DB_USER"),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBName:          os.Getenv("DB_NAME"),
		AdminKeyHash:    os.Getenv("ADMIN_KEY_HASH"),
		ScoringStrategy: getEnv("SCORING_STRATEGY", "linear150"),
		PublishTarget:   getEnv("PUBLISH_TARGET", "snapshot.json"),
	}

	if cfg.DBUser == "" || cfg.DBName == "" {
		return nil, fmt.Errorf("missing database configuration (DB_USER, DB_NAME)")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
