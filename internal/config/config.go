package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port        string
	MongoURI    string
	MongoDB     string
	RedisAddr   string
	OptionsFile string

	// EvictEmptyRooms controls whether a room is dropped from the registry
	// once its last member leaves.
	EvictEmptyRooms bool

	// SendQueueSize is the per-connection outbound buffer; a connection
	// whose buffer fills up is dropped.
	SendQueueSize int
}

func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:         getEnv("MONGO_DB", "bingolive"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		OptionsFile:     getEnv("OPTIONS_FILE", ""),
		EvictEmptyRooms: getEnvBool("EVICT_EMPTY_ROOMS", true),
		SendQueueSize:   getEnvInt("SEND_QUEUE_SIZE", 256),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return n
		}
	}
	return defaultVal
}
