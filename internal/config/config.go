package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

// Config содержит всю конфигурацию агента
type Config struct {
	// Расписание выборки
	Interval time.Duration
	Duration time.Duration // 0 — работать без ограничения по времени

	// Пороги в процентах (0–100)
	CPUThreshold   float64
	MemThreshold   float64
	DiskThreshold  float64
	CriticalMargin float64

	// Журнал мониторинга
	LogFile     string
	LogMaxBytes int64
	LogBackups  int

	// Долговременное хранилище (пустой путь — отключено)
	DBPath string

	// Общие настройки
	LogLevel string

	// Профилирование
	ProfileEnable   bool
	ProfileHTTPPort int
	ProfileCPUFile  string
	ProfileMemFile  string
}

// NewConfig создает новую конфигурацию со значениями по умолчанию
func NewConfig() *Config {
	return &Config{
		Interval:        5 * time.Second,
		Duration:        0,
		CPUThreshold:    80,
		MemThreshold:    80,
		DiskThreshold:   90,
		CriticalMargin:  5,
		LogFile:         filepath.Join("logs", "system_health.log"),
		LogMaxBytes:     1_000_000,
		LogBackups:      5,
		DBPath:          "",
		LogLevel:        "info",
		ProfileEnable:   false,
		ProfileHTTPPort: 6060,
	}
}

// Load загружает конфигурацию из флагов командной строки и переменных окружения
func (c *Config) Load(cmd *cobra.Command) error {
	// Загружаем из переменных окружения сначала
	c.loadFromEnv()

	// Затем из флагов (они имеют приоритет)
	if cmd.Flags().Changed("interval") {
		sec, _ := cmd.Flags().GetInt("interval")
		c.Interval = time.Duration(sec) * time.Second
	}
	if cmd.Flags().Changed("duration") {
		sec, _ := cmd.Flags().GetInt("duration")
		c.Duration = time.Duration(sec) * time.Second
	}
	if cmd.Flags().Changed("cpu-th") {
		c.CPUThreshold, _ = cmd.Flags().GetFloat64("cpu-th")
	}
	if cmd.Flags().Changed("mem-th") {
		c.MemThreshold, _ = cmd.Flags().GetFloat64("mem-th")
	}
	if cmd.Flags().Changed("disk-th") {
		c.DiskThreshold, _ = cmd.Flags().GetFloat64("disk-th")
	}
	if cmd.Flags().Changed("critical-margin") {
		c.CriticalMargin, _ = cmd.Flags().GetFloat64("critical-margin")
	}
	if cmd.Flags().Changed("log-file") {
		c.LogFile, _ = cmd.Flags().GetString("log-file")
	}
	if cmd.Flags().Changed("log-max-bytes") {
		c.LogMaxBytes, _ = cmd.Flags().GetInt64("log-max-bytes")
	}
	if cmd.Flags().Changed("log-backups") {
		c.LogBackups, _ = cmd.Flags().GetInt("log-backups")
	}
	if cmd.Flags().Changed("db") {
		c.DBPath, _ = cmd.Flags().GetString("db")
	}
	if cmd.Flags().Changed("log-level") {
		c.LogLevel, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("profile") {
		c.ProfileEnable, _ = cmd.Flags().GetBool("profile")
	}
	if cmd.Flags().Changed("profile-http-port") {
		c.ProfileHTTPPort, _ = cmd.Flags().GetInt("profile-http-port")
	}
	if cmd.Flags().Changed("profile-cpu") {
		c.ProfileCPUFile, _ = cmd.Flags().GetString("profile-cpu")
	}
	if cmd.Flags().Changed("profile-mem") {
		c.ProfileMemFile, _ = cmd.Flags().GetString("profile-mem")
	}

	return c.Validate()
}

// loadFromEnv загружает конфигурацию из переменных окружения
func (c *Config) loadFromEnv() {
	if s := os.Getenv("INTERVAL"); s != "" {
		if sec, err := strconv.Atoi(s); err == nil {
			c.Interval = time.Duration(sec) * time.Second
		}
	}
	if s := os.Getenv("DURATION"); s != "" {
		if sec, err := strconv.Atoi(s); err == nil {
			c.Duration = time.Duration(sec) * time.Second
		}
	}
	if s := os.Getenv("CPU_THRESHOLD"); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			c.CPUThreshold = v
		}
	}
	if s := os.Getenv("MEM_THRESHOLD"); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			c.MemThreshold = v
		}
	}
	if s := os.Getenv("DISK_THRESHOLD"); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			c.DiskThreshold = v
		}
	}
	if s := os.Getenv("CRITICAL_MARGIN"); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			c.CriticalMargin = v
		}
	}
	if s := os.Getenv("LOG_FILE"); s != "" {
		c.LogFile = s
	}
	if s := os.Getenv("LOG_MAX_BYTES"); s != "" {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			c.LogMaxBytes = v
		}
	}
	if s := os.Getenv("LOG_BACKUPS"); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			c.LogBackups = v
		}
	}
	if s := os.Getenv("DB_PATH"); s != "" {
		c.DBPath = s
	}
	if s := os.Getenv("LOG_LEVEL"); s != "" {
		c.LogLevel = s
	}
	if s := os.Getenv("PROFILE_ENABLE"); s != "" {
		if v, err := strconv.ParseBool(s); err == nil {
			c.ProfileEnable = v
		}
	}
	if s := os.Getenv("PROFILE_HTTP_PORT"); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			c.ProfileHTTPPort = v
		}
	}
}

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	if c.Interval < time.Second {
		return fmt.Errorf("interval must be at least 1 second")
	}
	if c.Duration < 0 {
		return fmt.Errorf("duration must not be negative")
	}
	if err := validatePct("cpu threshold", c.CPUThreshold); err != nil {
		return err
	}
	if err := validatePct("mem threshold", c.MemThreshold); err != nil {
		return err
	}
	if err := validatePct("disk threshold", c.DiskThreshold); err != nil {
		return err
	}
	if c.CriticalMargin <= 0 {
		return fmt.Errorf("critical margin must be positive")
	}
	if c.LogFile == "" {
		return fmt.Errorf("log file path is required")
	}
	if c.LogMaxBytes <= 0 {
		return fmt.Errorf("log max bytes must be positive")
	}
	if c.LogBackups < 0 {
		return fmt.Errorf("log backups must not be negative")
	}

	// Проверяем уровень логирования
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	if c.ProfileEnable {
		if c.ProfileHTTPPort <= 0 || c.ProfileHTTPPort > 65535 {
			return fmt.Errorf("invalid profile HTTP port: %d", c.ProfileHTTPPort)
		}
	}

	return nil
}

func validatePct(name string, v float64) error {
	if v < 0 || v > 100 {
		return fmt.Errorf("%s must be between 0 and 100, got %v", name, v)
	}
	return nil
}

// AddFlags добавляет флаги в cobra команду
func AddFlags(cmd *cobra.Command) {
	cmd.Flags().Int("interval", 5, "Seconds between samples")
	cmd.Flags().Int("duration", 0, "Total seconds to run (0 = run indefinitely)")
	cmd.Flags().Float64("cpu-th", 80, "CPU usage % threshold for warning")
	cmd.Flags().Float64("mem-th", 80, "Memory usage % threshold for warning")
	cmd.Flags().Float64("disk-th", 90, "Disk usage % threshold for warning")
	cmd.Flags().Float64("critical-margin", 5, "Percent points above a threshold that raise ERROR instead of WARNING")
	cmd.Flags().String("log-file", filepath.Join("logs", "system_health.log"), "Path to monitor log file")
	cmd.Flags().Int64("log-max-bytes", 1_000_000, "Max bytes per log file before rotation")
	cmd.Flags().Int("log-backups", 5, "Number of rotated log backups to keep")
	cmd.Flags().String("db", "", "Path to sqlite database file (optional)")
	cmd.Flags().String("log-level", "info", "Internal log level (debug, info, warn, error)")

	// Флаги профилирования
	cmd.Flags().Bool("profile", false, "Enable profiling")
	cmd.Flags().Int("profile-http-port", 6060, "HTTP port for pprof endpoints")
	cmd.Flags().String("profile-cpu", "", "CPU profile output file")
	cmd.Flags().String("profile-mem", "", "Memory profile output file")
}
