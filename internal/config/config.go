package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	JWTSecret   string
	MongoURI    string
	DBName      string
	SkipAuth    bool
	Environment string
	AppId       string
	ErpDBType   string // hosted ERP backend, "postgresql" or "mysql"
	ErpDBHost   string
	ErpDBPort   string
	ErpDBName   string
	ErpDBUser   string
	ErpDBPass   string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file successfully")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		JWTSecret:   getEnv("JWT_SECRET", "secret"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:      getEnv("DB_NAME", "go-marketing"),
		SkipAuth:    getEnv("SKIP_AUTH", "false") == "true",
		Environment: getEnv("ENVIRONMENT", "development"),
		AppId:       getEnv("APP_ID", "go-marketing"),
		ErpDBType:   getEnv("ERP_DB_TYPE", "postgresql"),
		ErpDBHost:   getEnv("ERP_DB_HOST", "localhost"),
		ErpDBPort:   getEnv("ERP_DB_PORT", "5432"),
		ErpDBName:   getEnv("ERP_DB_NAME", "erp"),
		ErpDBUser:   getEnv("ERP_DB_USER", "erp"),
		ErpDBPass:   getEnv("ERP_DB_PASS", ""),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
