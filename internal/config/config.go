package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreDriverMySQL  = "mysql"
	StoreDriverMemory = "memory"
)

type Config struct {
	AppPort           string
	DbHost            string
	DbPort            string
	DbUser            string
	DbPassword        string
	DbName            string
	DbParams          string
	TrustedProxies    []string
	StoreDriver       string
	JWTSecret         string
	JWTIssuer         string
	JWTTTL            time.Duration
	SeedAdminEmail    string
	SeedAdminName     string
	SeedAdminPassword string
	TranslationFolder string
}

func LoadConfig() *Config {
	_ = godotenv.Load(".env")

	return &Config{
		AppPort:           getEnv("APP_PORT", "8080"),
		DbHost:            getEnv("MYSQL_HOST", "db"),
		DbPort:            getEnv("MYSQL_PORT", "3306"),
		DbUser:            getEnv("MYSQL_USER", "taskflow"),
		DbPassword:        getEnv("MYSQL_PASSWORD", "taskflow"),
		DbName:            getEnv("MYSQL_DATABASE", "taskflow"),
		DbParams:          getEnv("MYSQL_PARAMS", "parseTime=true&multiStatements=true"),
		TrustedProxies:    parseTrustedProxies(os.Getenv("TRUSTED_PROXIES")),
		StoreDriver:       parseStoreDriver(getEnv("STORE_DRIVER", StoreDriverMySQL)),
		JWTSecret:         getEnv("JWT_SECRET", "your_secret_key"),
		JWTIssuer:         getEnv("JWT_ISSUER", "taskflow"),
		JWTTTL:            time.Duration(getEnvInt("JWT_TTL_MINUTES", 30)) * time.Minute,
		SeedAdminEmail:    getEnv("SEED_ADMIN_EMAIL", "admin@test.com"),
		SeedAdminName:     getEnv("SEED_ADMIN_NAME", "Master"),
		SeedAdminPassword: getEnv("SEED_ADMIN_PASSWORD", "12345"),
		TranslationFolder: getEnv("TRANSLATION_FOLDER", "pkg/translator/translation"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func parseStoreDriver(value string) string {
	if strings.EqualFold(strings.TrimSpace(value), StoreDriverMemory) {
		return StoreDriverMemory
	}
	return StoreDriverMySQL
}

func parseTrustedProxies(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	proxies := make([]string, 0, len(parts))
	for _, part := range parts {
		proxy := strings.TrimSpace(part)
		if proxy == "" {
			continue
		}
		proxies = append(proxies, proxy)
	}

	if len(proxies) == 0 {
		return nil
	}

	return proxies
}
