package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
	"go.uber.org/zap"
)

// Provider выдает текущий снимок системных метрик.
// Ошибка означает, что источник метрик ОС недоступен целиком.
type Provider interface {
	Sample(ctx context.Context) (*Snapshot, error)
}

// Collector отвечает за сбор системных метрик через gopsutil
type Collector struct {
	diskPath string
	logger   *zap.Logger
}

// New создает новый экземпляр сборщика метрик
func New(logger *zap.Logger) *Collector {
	return &Collector{
		diskPath: "/",
		logger:   logger,
	}
}

// Prime выполняет холостое чтение CPU, чтобы первый Sample
// считал загрузку за интервал, а не с момента запуска процесса.
func (c *Collector) Prime(ctx context.Context) {
	if _, err := cpu.PercentWithContext(ctx, 0, false); err != nil {
		c.logger.Debug("CPU prime read failed", zap.Error(err))
	}
}

// Sample собирает все системные метрики в один снимок.
// Любая из четырех групп метрик обязательна: ошибка одной из них
// делает весь снимок недействительным.
func (c *Collector) Sample(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{
		Timestamp: time.Now(),
	}

	// Используем каналы для параллельного сбора метрик
	type result struct {
		name string
		err  error
	}

	results := make(chan result, 4)

	go func() {
		pct, err := c.sampleCPU(ctx)
		if err == nil {
			snap.CPUPct = pct
		}
		results <- result{name: "CPU", err: err}
	}()

	go func() {
		pct, err := c.sampleMemory(ctx)
		if err == nil {
			snap.MemPct = pct
		}
		results <- result{name: "Memory", err: err}
	}()

	go func() {
		pct, err := c.sampleDisk(ctx)
		if err == nil {
			snap.DiskPct = pct
		}
		results <- result{name: "Disk", err: err}
	}()

	go func() {
		sent, recv, err := c.sampleNetwork(ctx)
		if err == nil {
			snap.NetSentCum = sent
			snap.NetRecvCum = recv
		}
		results <- result{name: "Network", err: err}
	}()

	// Ждем завершения всех горутин
	var firstErr error
	for i := 0; i < 4; i++ {
		select {
		case res := <-results:
			if res.err != nil {
				c.logger.Warn("Failed to collect metrics",
					zap.String("component", res.name),
					zap.Error(res.err))
				if firstErr == nil {
					firstErr = fmt.Errorf("%s: %w", res.name, res.err)
				}
			}
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if firstErr != nil {
		return nil, fmt.Errorf("metric source unavailable: %w", firstErr)
	}

	return snap, nil
}

// sampleCPU возвращает загрузку процессора в процентах с предыдущего чтения
func (c *Collector) sampleCPU(ctx context.Context) (float64, error) {
	percentages, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return 0, fmt.Errorf("failed to get CPU percentage: %w", err)
	}
	if len(percentages) == 0 {
		return 0, fmt.Errorf("no CPU percentage reported")
	}
	return percentages[0], nil
}

// sampleMemory возвращает использование памяти в процентах
func (c *Collector) sampleMemory(ctx context.Context) (float64, error) {
	vmStat, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get memory statistics: %w", err)
	}
	return vmStat.UsedPercent, nil
}

// sampleDisk возвращает использование корневого раздела в процентах
func (c *Collector) sampleDisk(ctx context.Context) (float64, error) {
	diskStat, err := disk.UsageWithContext(ctx, c.diskPath)
	if err != nil {
		return 0, fmt.Errorf("failed to get disk statistics: %w", err)
	}
	return diskStat.UsedPercent, nil
}

// sampleNetwork возвращает кумулятивные счетчики байт по всем интерфейсам
func (c *Collector) sampleNetwork(ctx context.Context) (sent, recv uint64, err error) {
	netStats, err := net.IOCountersWithContext(ctx, false)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get network statistics: %w", err)
	}

	// Суммируем статистику по всем интерфейсам
	for _, stat := range netStats {
		sent += stat.BytesSent
		recv += stat.BytesRecv
	}
	return sent, recv, nil
}
