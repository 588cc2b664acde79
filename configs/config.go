package configs

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	GinMode          string
	MongoURI         string
	MongoDatabase    string
	RabbitMQURI      string
	RabbitMQExchange string
	GeminiAPIKey     string
	GeminiBaseURL    string
	GeminiModel      string
	JWTSecret        string
	QuestionCount    int
	ServiceName      string
	ServiceVersion   string
}

var AppConfig *Config

func LoadConfig() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	AppConfig = &Config{
		Port:             getEnvOrDefault("PORT", "8080"),
		GinMode:          getEnvOrDefault("GIN_MODE", "debug"),
		MongoURI:         getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:    getEnvOrDefault("MONGO_DATABASE", "prepmaster"),
		RabbitMQURI:      getEnvOrDefault("RABBITMQ_URI", ""),
		RabbitMQExchange: getEnvOrDefault("RABBITMQ_EXCHANGE", ""),
		GeminiAPIKey:     getEnvOrDefault("GEMINI_API_KEY", ""),
		GeminiBaseURL:    getEnvOrDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		GeminiModel:      getEnvOrDefault("GEMINI_MODEL", "gemini-2.5-flash"),
		JWTSecret:        getEnvOrDefault("JWT_SECRET", "your-jwt-secret-key"),
		QuestionCount:    getEnvIntOrDefault("QUESTION_COUNT", 10),
		ServiceName:      getEnvOrDefault("SERVICE_NAME", "prepmaster"),
		ServiceVersion:   getEnvOrDefault("SERVICE_VERSION", "1.0.0"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
		log.Printf("Invalid value for %s, using default %d", key, defaultValue)
	}
	return defaultValue
}
