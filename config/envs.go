package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	ArenaWidth        int    // Width of the arena the agent is told about
	ArenaHeight       int    // Height of the arena the agent is told about
	AcceptableDanger  int    // Highest danger estimate an explore target may have
	AcceptableShoot   int    // Lowest wumpus score worth an arrow
	AcceptablePit     int    // Pit score from which a shot target is ignored
	HostIP            string // Host IP for the server
	RESTPort          int    // Port for the REST API
	GinMode           string // Mode for the Gin framework (e.g., release, debug, test)
	JWTSecret         string // Secret key for JWT signing
	JWTIssuer         string // Issuer claim for JWTs
	SessionTTLMinutes int    // Lifetime of a session token
	RedisAddr         string // Address of the Redis leaderboard
	RedisPassword     string // Password for Redis
	LeaderboardSize   int    // Number of episodes the leaderboard keeps
	DBURI             string // MongoDB connection URI
	DBName            string // Name of the database
	Debug             bool   // Debug enables debug logging
}

// Load reads the configuration every command needs. Values missing from the environment fall
// back to defaults.
func Load() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	return Config{
		ArenaWidth:        getEnvAsIntWithDefault("ARENA_WIDTH", 10),
		ArenaHeight:       getEnvAsIntWithDefault("ARENA_HEIGHT", 10),
		AcceptableDanger:  getEnvAsIntWithDefault("ACCEPTABLE_DANGER", 25),
		AcceptableShoot:   getEnvAsIntWithDefault("ACCEPTABLE_SHOOT", 50),
		AcceptablePit:     getEnvAsIntWithDefault("ACCEPTABLE_PIT", 50),
		HostIP:            getEnvWithDefault("HOST_IP", "0.0.0.0"),
		RESTPort:          getEnvAsIntWithDefault("REST_PORT", 8080),
		GinMode:           getEnvWithDefault("GIN_MODE", "release"),
		JWTIssuer:         getEnvWithDefault("JWT_ISSUER", "vinom-agent"),
		SessionTTLMinutes: getEnvAsIntWithDefault("SESSION_TTL_MINUTES", 60),
		RedisAddr:         getEnvWithDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     getEnvWithDefault("REDIS_PASSWORD", ""),
		LeaderboardSize:   getEnvAsIntWithDefault("LEADERBOARD_SIZE", 100),
		DBURI:             getEnvWithDefault("DB_URI", "mongodb://localhost:27017"),
		DBName:            getEnvWithDefault("DB_NAME", "vinom_agent"),
		Debug:             getEnvWithDefault("DEBUG", "false") == "true",
	}
}

// LoadServe is Load plus the secrets the server cannot run without.
func LoadServe() Config {
	c := Load()
	c.JWTSecret = mustGetEnv("JWT_SECRET")
	return c
}

// mustGetEnv retrieves the value of an environment variable or logs a fatal error if not set.
func mustGetEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		log.Fatalf("[APP] [FATAL] Environment variable %s is not set", key)
	}
	return value
}

// getEnvAsIntWithDefault retrieves an integer environment variable, falling back to defaultValue
// when it is unset. A value that does not parse is fatal.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
