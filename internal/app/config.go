package app

import (
	"strings"

	"github.com/calegray/commerce-backend/internal/pkg/logger"
	"github.com/calegray/commerce-backend/internal/utils"
)

type Config struct {
	Port        string
	LogMode     string
	CORSOrigins []string
	RedisAddr   string
	RedisDB     int
}

func LoadConfig(log *logger.Logger) Config {
	port := utils.GetEnv("PORT", "8080", log)
	logMode := utils.GetEnv("LOG_MODE", "development", log)
	redisAddr := utils.GetEnv("REDIS_ADDR", "", log)
	redisDB := utils.GetEnvAsInt("REDIS_DB", 0, log)

	var origins []string
	if raw := utils.GetEnv("CORS_ORIGINS", "", log); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return Config{
		Port:        port,
		LogMode:     logMode,
		CORSOrigins: origins,
		RedisAddr:   redisAddr,
		RedisDB:     redisDB,
	}
}
