package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 所有環境變數只在這裡讀取
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Upstream endpoints
	TWSE UpstreamConfig
	TPEX UpstreamConfig

	// HTTP client
	HTTP HTTPConfig

	// Redis (optional cache backend)
	Redis RedisConfig

	// Streak scanner
	Scan ScanConfig

	// Report
	Report ReportConfig

	// Scheduler
	Scheduler SchedulerConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// UpstreamConfig holds base URLs for one exchange data source
type UpstreamConfig struct {
	BaseURL    string
	OpenAPIURL string
}

// HTTPConfig holds outbound HTTP client configuration
type HTTPConfig struct {
	Timeout            time.Duration
	InsecureSkipVerify bool // 交易所舊憑證鏈在部分環境驗不過
	MaxRetries         int
	RetryDelay         time.Duration
	UserAgent          string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// ScanConfig holds historical streak scanner parameters
type ScanConfig struct {
	Window int           // 目標交易日數 (預設 25)
	Budget int           // 回推日曆日上限 (預設 60)
	Delay  time.Duration // 每日抓取間隔 (upstream 禮貌性延遲)
}

// ReportConfig holds ranking report parameters
type ReportConfig struct {
	TopN          int
	MinVolumeLots int64  // 強弱勢股報表的最低成交量門檻 (張)
	OutputDir     string // CSV 匯出目錄
}

// SchedulerConfig holds the daily report job configuration
type SchedulerConfig struct {
	Enabled bool
	Spec    string // cron spec (with seconds field)
}

// Load reads configuration from environment variables
// ⭐ SSOT: 只有這個函式呼叫 os.Getenv()
func Load() (*Config, error) {
	// Try multiple paths for .env file
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8090"),
		Env:  getEnv("ENV", "development"),

		TWSE: UpstreamConfig{
			BaseURL:    getEnv("TWSE_BASE_URL", "https://www.twse.com.tw"),
			OpenAPIURL: getEnv("TWSE_OPENAPI_URL", "https://openapi.twse.com.tw"),
		},
		TPEX: UpstreamConfig{
			BaseURL:    getEnv("TPEX_BASE_URL", "https://www.tpex.org.tw"),
			OpenAPIURL: getEnv("TPEX_OPENAPI_URL", "https://www.tpex.org.tw"),
		},

		HTTP: HTTPConfig{
			Timeout:            getEnvAsDuration("HTTP_TIMEOUT", "10s"),
			InsecureSkipVerify: getEnvAsBool("HTTP_INSECURE_SKIP_VERIFY", true),
			MaxRetries:         getEnvAsInt("HTTP_MAX_RETRIES", 2),
			RetryDelay:         getEnvAsDuration("HTTP_RETRY_DELAY", "1s"),
			UserAgent:          getEnv("HTTP_USER_AGENT", "Mozilla/5.0"),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		Scan: ScanConfig{
			Window: getEnvAsInt("SCAN_WINDOW_DAYS", 25),
			Budget: getEnvAsInt("SCAN_ATTEMPT_BUDGET", 60),
			Delay:  getEnvAsDuration("SCAN_DELAY", "200ms"),
		},

		Report: ReportConfig{
			TopN:          getEnvAsInt("REPORT_TOP_N", 100),
			MinVolumeLots: int64(getEnvAsInt("REPORT_MIN_VOLUME_LOTS", 1000)),
			OutputDir:     getEnv("REPORT_OUTPUT_DIR", "reports"),
		},

		Scheduler: SchedulerConfig{
			Enabled: getEnvAsBool("SCHEDULER_ENABLED", false),
			// 平日 15:30，盤後資料公布之後
			Spec: getEnv("SCHEDULER_SPEC", "0 30 15 * * 1-5"),
		},

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	// Validate environment
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Scan.Window <= 0 {
		return fmt.Errorf("SCAN_WINDOW_DAYS must be positive")
	}
	if c.Scan.Budget < c.Scan.Window {
		return fmt.Errorf("SCAN_ATTEMPT_BUDGET must be >= SCAN_WINDOW_DAYS")
	}
	if c.Report.TopN <= 0 {
		return fmt.Errorf("REPORT_TOP_N must be positive")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	// Try paths in order of priority
	paths := []string{
		".env", // Current directory
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
			filepath.Join(exeDir, "..", "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to default
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
