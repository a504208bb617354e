package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Dialogflow DialogflowConfig
	Auth       AuthConfig
	Session    SessionConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	ClientDir          string
}

type DatabaseConfig struct {
	Connection string
}

type DialogflowConfig struct {
	Provider        string // "dialogflow" or "echo"
	ProjectID       string
	Location        string
	AgentID         string
	LanguageCode    string
	CredentialsFile string
	RequestTimeout  time.Duration
}

type AuthConfig struct {
	AllowedEmailDomain string // empty disables the domain check
	AllowGuests        bool
	JWTSecret          string
}

type SessionConfig struct {
	Store      string // "memory" or "redis"
	RedisURL   string
	IdleWindow time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
			ClientDir:          getEnv("CLIENT_DIR", "./client"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Dialogflow: DialogflowConfig{
			Provider:        getEnv("NLU_PROVIDER", "dialogflow"),
			ProjectID:       getEnv("DIALOGFLOW_PROJECT_ID", ""),
			Location:        getEnv("DIALOGFLOW_LOCATION", "global"),
			AgentID:         getEnv("DIALOGFLOW_AGENT_ID", ""),
			LanguageCode:    getEnv("DIALOGFLOW_LANGUAGE_CODE", "en"),
			CredentialsFile: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
			RequestTimeout:  getEnvAsDuration("NLU_REQUEST_TIMEOUT", 15*time.Second),
		},
		Auth: AuthConfig{
			AllowedEmailDomain: getEnv("ALLOWED_EMAIL_DOMAIN", ""),
			AllowGuests:        getEnvAsBool("ALLOW_GUEST_USERS", true),
			JWTSecret:          getEnv("AUTH_JWT_SECRET", ""),
		},
		Session: SessionConfig{
			Store:      getEnv("SESSION_STORE", "memory"),
			RedisURL:   getEnv("REDIS_URL", "redis://localhost:6379"),
			IdleWindow: getEnvAsDuration("SESSION_IDLE_WINDOW", time.Hour),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
