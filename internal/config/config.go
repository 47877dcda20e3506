package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	LogLevel     string
	StoreBackend string
	DataDir      string
	RedisAddr    string
	RabbitMQURL  string
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		if os.IsNotExist(err) {
			log.Println("no .env file found, using environment variables and defaults")
		} else {
			log.Printf("could not load .env file: %v", err)
		}
	}

	return &Config{
		Port:         getEnv("PORT", "8080"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		StoreBackend: getEnv("STORE_BACKEND", "jsonfile"),
		DataDir:      getEnv("DATA_DIR", "data"),
		RedisAddr:    getEnv("REDIS_ADDR", ""),
		RabbitMQURL:  getEnv("RABBITMQ_URL", ""),
	}
}
