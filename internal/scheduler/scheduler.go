package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"healthmon/internal/collector"
	"healthmon/internal/config"
	"healthmon/internal/sink"
	"healthmon/internal/threshold"
	"healthmon/internal/tracker"
)

// Scheduler отвечает за цикл выборки: по фиксированному интервалу
// снимает метрики, считает сетевую дельту, применяет пороги и
// раздает результат по приемникам. Весь цикл работает в одной
// горутине; параллельных выборок не бывает.
type Scheduler struct {
	interval time.Duration
	duration time.Duration
	policy   threshold.Config

	provider collector.Provider
	tracker  *tracker.NetTracker
	fanout   *sink.Fanout
	logger   *zap.Logger
}

// New создает новый планировщик выборки
func New(cfg *config.Config, provider collector.Provider, fanout *sink.Fanout, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		interval: cfg.Interval,
		duration: cfg.Duration,
		policy: threshold.Config{
			CPUThreshold:   cfg.CPUThreshold,
			MemThreshold:   cfg.MemThreshold,
			DiskThreshold:  cfg.DiskThreshold,
			CriticalMargin: cfg.CriticalMargin,
		},
		provider: provider,
		tracker:  tracker.New(),
		fanout:   fanout,
		logger:   logger,
	}
}

// Run выполняет цикл выборки до отмены контекста или истечения
// заданной длительности. Первая выборка делается сразу; отказ
// источника метрик на ней — ошибка запуска. Дальше отказ источника
// пропускает одну итерацию, но не останавливает цикл. Отмена
// срабатывает между итерациями: начатая выборка всегда доводится
// до раздачи по приемникам.
func (s *Scheduler) Run(ctx context.Context) error {
	if s.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.duration)
		defer cancel()
	}

	s.logger.Info("Starting sampling loop",
		zap.Duration("interval", s.interval),
		zap.Duration("duration", s.duration))

	if err := s.iterate(ctx); err != nil {
		if isCancellation(err) {
			return nil
		}
		return fmt.Errorf("first sample failed: %w", err)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Sampling loop stopped")
			return nil
		case <-ticker.C:
			if err := s.iterate(ctx); err != nil && !isCancellation(err) {
				s.logger.Error("Sample skipped", zap.Error(err))
			}
		}
	}
}

// iterate выполняет одну итерацию: выборка, дельта, пороги, раздача.
// Возвращает ошибку только при недоступности источника метрик.
func (s *Scheduler) iterate(ctx context.Context) error {
	snap, err := s.provider.Sample(ctx)
	if err != nil {
		return err
	}

	delta := s.tracker.Compute(snap)
	events := threshold.Evaluate(snap, s.policy)
	s.fanout.Dispatch(snap, delta, events)

	return nil
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
