package config

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
)

func newTestCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "test", Run: func(cmd *cobra.Command, args []string) {}}
	AddFlags(cmd)
	return cmd
}

func TestDefaultsAreValid(t *testing.T) {
	cfg := NewConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
	if cfg.Interval != 5*time.Second {
		t.Errorf("default interval: want 5s, got %v", cfg.Interval)
	}
	if cfg.Duration != 0 {
		t.Errorf("default duration: want unbounded, got %v", cfg.Duration)
	}
	if cfg.DBPath != "" {
		t.Errorf("store must be disabled by default, got %q", cfg.DBPath)
	}
}

func TestLoadFromFlags(t *testing.T) {
	cmd := newTestCommand()
	cmd.SetArgs([]string{
		"--interval", "10",
		"--duration", "60",
		"--mem-th", "85",
		"--db", "/tmp/health.db",
	})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	cfg := NewConfig()
	if err := cfg.Load(cmd); err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Interval != 10*time.Second {
		t.Errorf("interval: want 10s, got %v", cfg.Interval)
	}
	if cfg.Duration != 60*time.Second {
		t.Errorf("duration: want 60s, got %v", cfg.Duration)
	}
	if cfg.MemThreshold != 85 {
		t.Errorf("mem threshold: want 85, got %v", cfg.MemThreshold)
	}
	if cfg.DBPath != "/tmp/health.db" {
		t.Errorf("db path: want /tmp/health.db, got %q", cfg.DBPath)
	}
	// не тронутые флаги остаются по умолчанию
	if cfg.CPUThreshold != 80 {
		t.Errorf("cpu threshold: want default 80, got %v", cfg.CPUThreshold)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("INTERVAL", "7")
	t.Setenv("DISK_THRESHOLD", "95")
	t.Setenv("DB_PATH", "/var/lib/health.db")

	cfg := NewConfig()
	if err := cfg.Load(newTestCommand()); err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Interval != 7*time.Second {
		t.Errorf("interval from env: want 7s, got %v", cfg.Interval)
	}
	if cfg.DiskThreshold != 95 {
		t.Errorf("disk threshold from env: want 95, got %v", cfg.DiskThreshold)
	}
	if cfg.DBPath != "/var/lib/health.db" {
		t.Errorf("db path from env: want /var/lib/health.db, got %q", cfg.DBPath)
	}
}

func TestFlagsOverrideEnv(t *testing.T) {
	t.Setenv("INTERVAL", "7")

	cmd := newTestCommand()
	cmd.SetArgs([]string{"--interval", "3"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	cfg := NewConfig()
	if err := cfg.Load(cmd); err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Interval != 3*time.Second {
		t.Errorf("flag must win over env: want 3s, got %v", cfg.Interval)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero interval", func(c *Config) { c.Interval = 0 }},
		{"sub-second interval", func(c *Config) { c.Interval = 500 * time.Millisecond }},
		{"negative duration", func(c *Config) { c.Duration = -time.Second }},
		{"cpu threshold above 100", func(c *Config) { c.CPUThreshold = 101 }},
		{"negative mem threshold", func(c *Config) { c.MemThreshold = -1 }},
		{"zero critical margin", func(c *Config) { c.CriticalMargin = 0 }},
		{"empty log file", func(c *Config) { c.LogFile = "" }},
		{"zero log max bytes", func(c *Config) { c.LogMaxBytes = 0 }},
		{"negative log backups", func(c *Config) { c.LogBackups = -1 }},
		{"unknown log level", func(c *Config) { c.LogLevel = "verbose" }},
		{"bad profile port", func(c *Config) { c.ProfileEnable = true; c.ProfileHTTPPort = -1 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := NewConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("want validation error")
			}
		})
	}
}
