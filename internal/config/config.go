package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string
	NodeID      int64

	OTLPEndpoint string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBSQLitePath      string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int

	Email        EmailConfig
	Notification NotificationConfig
	Redis        RedisConfig

	CORSAllowedOrigins []string
	SeedSpecialties    bool
}

type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	Recipient    string
}

type NotificationConfig struct {
	Queue         string
	Workers       int
	QueueSize     int
	MaxAttempts   int
	MaxRedelivery int
	SweepSpec     string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

const (
	QueueMemory = "memory"
	QueueRedis  = "redis"
)

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	emailUser := strings.TrimSpace(getenv("EMAIL_USER", ""))
	from := strings.TrimSpace(getenv("EMAIL_FROM", ""))
	if from == "" && emailUser != "" {
		from = `"Submitted Salary" <` + emailUser + `>`
	}

	cfg := Config{
		AppName:           getenv("APP_SERVICE", "dentalpay"),
		AppVersion:        getenv("APP_VERSION", "0.1.0"),
		Environment:       getenv("ENVIRONMENT", "development"),
		HTTPAddr:          httpAddr(),
		NodeID:            int64(getenvInt("SNOWFLAKE_NODE_ID", 1)),
		OTLPEndpoint:      getenv("OTLP_ENDPOINT", "localhost:4317"),
		DBType:            strings.ToLower(getenv("DATABASE_TYPE", "postgres")),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "dentalpay"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBSQLitePath:      getenv("DATABASE_SQLITE_PATH", "dentalpay.db"),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONN", 5),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 20),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME", 300),
		DBConnMaxIdleTime: getenvInt("DATABASE_CONN_MAX_IDLE_TIME", 60),
		Email: EmailConfig{
			SMTPHost:     strings.TrimSpace(getenv("EMAIL_HOST", "")),
			SMTPPort:     getenvInt("EMAIL_PORT", 465),
			SMTPUsername: emailUser,
			SMTPPassword: getenv("EMAIL_PASS", ""),
			SMTPFrom:     from,
			Recipient:    strings.TrimSpace(getenv("RECEIVER_EMAIL", getenv("RECIEVER_EMAIL", ""))),
		},
		Notification: NotificationConfig{
			Queue:         normalizeQueue(getenv("NOTIFY_QUEUE", QueueMemory)),
			Workers:       getenvInt("NOTIFY_WORKERS", 2),
			QueueSize:     getenvInt("NOTIFY_QUEUE_SIZE", 256),
			MaxAttempts:   getenvInt("NOTIFY_MAX_ATTEMPTS", 5),
			MaxRedelivery: getenvInt("NOTIFY_MAX_REDELIVERY", 3),
			SweepSpec:     getenv("NOTIFY_SWEEP_SPEC", "@every 15m"),
		},
		Redis: RedisConfig{
			Addr:     strings.TrimSpace(getenv("REDIS_ADDR", "")),
			Password: strings.TrimSpace(getenv("REDIS_PASSWORD", "")),
			DB:       getenvInt("REDIS_DB", 0),
		},
		CORSAllowedOrigins: parseList(getenv("CORS_ALLOWED_ORIGINS", "*")),
		SeedSpecialties:    getenvBool("SEED_SPECIALTIES", true),
	}

	return cfg
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), "production")
}

func httpAddr() string {
	if addr := strings.TrimSpace(os.Getenv("HTTP_ADDR")); addr != "" {
		return addr
	}
	return ":" + getenv("PORT", "5000")
}

func normalizeQueue(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case QueueRedis:
		return QueueRedis
	default:
		return QueueMemory
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func parseList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
