package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	CORS      CORSConfig
	Log       LogConfig
	Scheduler SchedulerConfig
	Engine    EngineConfig
	Exports   ExportsConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Issuer     string
	Expiration time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// SchedulerConfig toggles the schedule generation API.
type SchedulerConfig struct {
	Enabled     bool
	ProposalTTL time.Duration
	CacheTTL    time.Duration
}

// EngineConfig holds the scheduling policy knobs.
type EngineConfig struct {
	SectionMin            int
	SectionMax            int
	WindowStart           string
	WindowEnd             string
	LectureSplitThreshold time.Duration
	LabSplitThreshold     time.Duration
	SplitMode             string
	FullTimeMinHours      float64
	PartTimeMaxHours      float64
	EnforcePartTimeCap    bool
	RotatorSeed           int
	MaxPairAttempts       int
}

// ExportsConfig configures asynchronous schedule exports.
type ExportsConfig struct {
	Enabled           bool
	StorageDir        string
	SignedURLSecret   string
	SignedURLTTL      time.Duration
	CleanupInterval   time.Duration
	WorkerConcurrency int
	WorkerRetries     int
}

// Load reads .env and the environment.
func Load() (*Config, error) {
	return LoadFrom(".env")
}

// LoadFrom reads an env-format file (optional) and the environment.
func LoadFrom(path string) (*Config, error) {
	if path == "" {
		path = ".env"
	}
	_ = godotenv.Load(path)

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Issuer:     v.GetString("JWT_ISSUER"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Scheduler = SchedulerConfig{
		Enabled:     v.GetBool("ENABLE_SCHEDULER"),
		ProposalTTL: parseDuration(v.GetString("SCHEDULER_PROPOSAL_TTL"), 30*time.Minute),
		CacheTTL:    parseDuration(v.GetString("SCHEDULER_CACHE_TTL"), 10*time.Minute),
	}

	cfg.Engine = EngineConfig{
		SectionMin:            v.GetInt("SECTION_MIN_SIZE"),
		SectionMax:            v.GetInt("SECTION_MAX_SIZE"),
		WindowStart:           v.GetString("SCHEDULE_WINDOW_START"),
		WindowEnd:             v.GetString("SCHEDULE_WINDOW_END"),
		LectureSplitThreshold: parseDuration(v.GetString("LECTURE_SPLIT_THRESHOLD"), 3*time.Hour),
		LabSplitThreshold:     parseDuration(v.GetString("LAB_SPLIT_THRESHOLD"), 3*time.Hour),
		SplitMode:             v.GetString("SPLIT_MODE"),
		FullTimeMinHours:      v.GetFloat64("FULL_TIME_MIN_HOURS"),
		PartTimeMaxHours:      v.GetFloat64("PART_TIME_MAX_HOURS"),
		EnforcePartTimeCap:    v.GetBool("ENFORCE_PART_TIME_CAP"),
		RotatorSeed:           v.GetInt("ROTATOR_SEED"),
		MaxPairAttempts:       v.GetInt("MAX_PAIR_ATTEMPTS"),
	}

	cfg.Exports = ExportsConfig{
		Enabled:           v.GetBool("ENABLE_EXPORTS"),
		StorageDir:        v.GetString("EXPORTS_STORAGE_DIR"),
		SignedURLSecret:   v.GetString("EXPORTS_SIGNED_URL_SECRET"),
		SignedURLTTL:      parseDuration(v.GetString("EXPORTS_SIGNED_URL_TTL"), 24*time.Hour),
		CleanupInterval:   parseDuration(v.GetString("EXPORTS_CLEANUP_INTERVAL"), time.Hour),
		WorkerConcurrency: v.GetInt("EXPORTS_WORKER_CONCURRENCY"),
		WorkerRetries:     v.GetInt("EXPORTS_WORKER_RETRIES"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "curriculum_scheduler")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_ISSUER", "curriculum-scheduler")
	v.SetDefault("JWT_EXPIRATION", "24h")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_SCHEDULER", true)
	v.SetDefault("SCHEDULER_PROPOSAL_TTL", "30m")
	v.SetDefault("SCHEDULER_CACHE_TTL", "10m")

	v.SetDefault("SECTION_MIN_SIZE", 12)
	v.SetDefault("SECTION_MAX_SIZE", 40)
	v.SetDefault("SCHEDULE_WINDOW_START", "07:00")
	v.SetDefault("SCHEDULE_WINDOW_END", "21:00")
	v.SetDefault("LECTURE_SPLIT_THRESHOLD", "3h")
	v.SetDefault("LAB_SPLIT_THRESHOLD", "3h")
	v.SetDefault("SPLIT_MODE", "even")
	v.SetDefault("FULL_TIME_MIN_HOURS", 24)
	v.SetDefault("PART_TIME_MAX_HOURS", 18)
	v.SetDefault("ENFORCE_PART_TIME_CAP", false)
	v.SetDefault("ROTATOR_SEED", 0)
	v.SetDefault("MAX_PAIR_ATTEMPTS", 3)

	v.SetDefault("ENABLE_EXPORTS", true)
	v.SetDefault("EXPORTS_STORAGE_DIR", "./exports")
	v.SetDefault("EXPORTS_SIGNED_URL_SECRET", "dev_exports_secret")
	v.SetDefault("EXPORTS_SIGNED_URL_TTL", "24h")
	v.SetDefault("EXPORTS_CLEANUP_INTERVAL", "1h")
	v.SetDefault("EXPORTS_WORKER_CONCURRENCY", 1)
	v.SetDefault("EXPORTS_WORKER_RETRIES", 3)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
