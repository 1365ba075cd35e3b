package profiler

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"go.uber.org/zap"
)

// Config представляет конфигурацию профилировщика
type Config struct {
	Enable     bool   // включить профилирование
	HTTPPort   int    // порт для HTTP сервера pprof
	CPUProfile string // путь к файлу CPU профиля
	MemProfile string // путь к файлу профиля памяти
}

// Profiler управляет профилированием агента
type Profiler struct {
	config     Config
	logger     *zap.Logger
	httpServer *http.Server
	cpuFile    *os.File
}

// New создает новый профилировщик
func New(config Config, logger *zap.Logger) *Profiler {
	return &Profiler{
		config: config,
		logger: logger,
	}
}

// Start запускает профилирование, если оно включено
func (p *Profiler) Start() error {
	if !p.config.Enable {
		return nil
	}

	p.logger.Info("Starting profiler",
		zap.Int("http_port", p.config.HTTPPort),
		zap.String("cpu_profile", p.config.CPUProfile),
		zap.String("mem_profile", p.config.MemProfile))

	if p.config.HTTPPort > 0 {
		p.httpServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", p.config.HTTPPort),
			Handler: http.DefaultServeMux, // pprof регистрируется в нем
		}
		go func() {
			if err := p.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				p.logger.Error("pprof HTTP server error", zap.Error(err))
			}
		}()
	}

	if p.config.CPUProfile != "" {
		file, err := os.Create(p.config.CPUProfile)
		if err != nil {
			return fmt.Errorf("failed to create CPU profile file: %w", err)
		}
		if err := pprof.StartCPUProfile(file); err != nil {
			file.Close()
			return fmt.Errorf("failed to start CPU profiling: %w", err)
		}
		p.cpuFile = file
	}

	return nil
}

// Stop останавливает профилирование и сохраняет профили
func (p *Profiler) Stop() error {
	if !p.config.Enable {
		return nil
	}

	var errs []error

	if p.cpuFile != nil {
		pprof.StopCPUProfile()
		if err := p.cpuFile.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close CPU profile file: %w", err))
		}
		p.cpuFile = nil
	}

	if p.config.MemProfile != "" {
		if err := p.writeMemProfile(); err != nil {
			errs = append(errs, err)
		}
	}

	if p.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := p.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shutdown pprof HTTP server: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("profiler shutdown errors: %v", errs)
	}

	p.logger.Info("Profiler stopped")
	return nil
}

// writeMemProfile записывает профиль памяти в файл
func (p *Profiler) writeMemProfile() error {
	file, err := os.Create(p.config.MemProfile)
	if err != nil {
		return fmt.Errorf("failed to create memory profile file: %w", err)
	}
	defer file.Close()

	runtime.GC()

	if err := pprof.WriteHeapProfile(file); err != nil {
		return fmt.Errorf("failed to write memory profile: %w", err)
	}
	return nil
}
