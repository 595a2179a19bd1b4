package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	JWT         JWTConfig
	Whisper     WhisperConfig
	Diarization DiarizationConfig
	Groq        GroqConfig
	Assembly    AssemblyAIConfig
	Audio       AudioConfig
	Storage     StorageConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	AllowedOrigins  []string
	ShutdownTimeout int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxConns    int
	MinConns    int
	AutoMigrate bool
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// WhisperConfig holds transcription engine configuration (whisper-compatible HTTP server)
type WhisperConfig struct {
	BaseURL string
	Model   string
}

// DiarizationConfig holds speaker diarization engine configuration.
// An empty BaseURL disables diarization; the pipeline degrades to
// alternating speaker labels.
type DiarizationConfig struct {
	BaseURL string
}

// GroqConfig holds Groq LLM configuration
type GroqConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// AssemblyAIConfig holds AssemblyAI configuration
type AssemblyAIConfig struct {
	APIKey string
}

// AudioConfig holds upload and processing limits
type AudioConfig struct {
	TempDir            string
	MaxUploadMB        int
	MaxDurationMinutes int
	AllowedExtensions  []string
	CacheCapacity      int
	EngineTimeout      time.Duration
	// TranscribeProvider selects the transcription backend: "whisper" or "assemblyai"
	TranscribeProvider string
}

// StorageConfig holds report archive storage configuration
type StorageConfig struct {
	ArchiveReports  bool
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			AllowedOrigins:  getEnvAsSlice("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
		},
		Database: DatabaseConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnv("DB_PORT", "5432"),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			Name:        getEnv("DB_NAME", "meeting_reporter"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			MaxConns:    getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:    getEnvAsInt("DB_MIN_CONNS", 5),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", false),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			AccessSecret:  getEnv("JWT_ACCESS_SECRET", "your-access-secret-change-in-production"),
			RefreshSecret: getEnv("JWT_REFRESH_SECRET", "your-refresh-secret-change-in-production"),
			AccessExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRY", "15m"),
			RefreshExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", "168h"),
		},
		Whisper: WhisperConfig{
			BaseURL: getEnv("WHISPER_URL", "http://localhost:9000"),
			Model:   getEnv("WHISPER_MODEL", "base"),
		},
		Diarization: DiarizationConfig{
			BaseURL: getEnv("DIARIZATION_URL", ""),
		},
		Groq: GroqConfig{
			APIKey:  getEnv("GROQ_API_KEY", ""),
			BaseURL: getEnv("GROQ_API_URL", "https://api.groq.com"),
			Model:   getEnv("GROQ_MODEL", "llama-3.3-70b-versatile"),
		},
		Assembly: AssemblyAIConfig{
			APIKey: getEnv("ASSEMBLYAI_API_KEY", ""),
		},
		Audio: AudioConfig{
			TempDir:            getEnv("AUDIO_TEMP_DIR", "temp_files"),
			MaxUploadMB:        getEnvAsInt("AUDIO_MAX_UPLOAD_MB", 200),
			MaxDurationMinutes: getEnvAsInt("AUDIO_MAX_DURATION_MIN", 180),
			AllowedExtensions:  getEnvAsSlice("AUDIO_ALLOWED_EXTENSIONS", []string{".wav", ".mp3", ".m4a", ".flac", ".ogg"}),
			CacheCapacity:      getEnvAsInt("RESULT_CACHE_CAPACITY", 100),
			EngineTimeout:      getEnvAsDuration("ENGINE_TIMEOUT", "5m"),
			TranscribeProvider: getEnv("TRANSCRIBE_PROVIDER", "whisper"),
		},
		Storage: StorageConfig{
			ArchiveReports:  getEnvAsBool("STORAGE_ARCHIVE_REPORTS", false),
			Endpoint:        getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
			SecretAccessKey: getEnv("STORAGE_SECRET_KEY", "minioadmin"),
			BucketName:      getEnv("STORAGE_BUCKET", "meeting-reports"),
			UseSSL:          getEnvAsBool("STORAGE_USE_SSL", false),
		},
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Audio.TranscribeProvider {
	case "whisper", "assemblyai":
	default:
		return fmt.Errorf("TRANSCRIBE_PROVIDER must be \"whisper\" or \"assemblyai\", got %q", c.Audio.TranscribeProvider)
	}
	if c.Audio.TranscribeProvider == "assemblyai" && c.Assembly.APIKey == "" {
		return fmt.Errorf("ASSEMBLYAI_API_KEY is required when TRANSCRIBE_PROVIDER=assemblyai")
	}
	if c.Audio.CacheCapacity < 1 {
		return fmt.Errorf("RESULT_CACHE_CAPACITY must be at least 1")
	}
	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
