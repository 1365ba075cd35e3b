// Package sink доставляет записи мониторинга в журнал и,
// опционально, в долговременное хранилище.
package sink

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"healthmon/internal/collector"
	"healthmon/internal/threshold"
	"healthmon/internal/tracker"
	"healthmon/pkg/bytefmt"
)

// Store долговременное хранилище выборок и событий.
// Обе операции только добавляют строки, без обновлений и удалений.
type Store interface {
	InsertMetric(ts time.Time, cpuPct, memPct, diskPct float64, netSent, netRecv uint64) error
	InsertEvent(ts time.Time, level, message string) error
}

// Fanout раздает каждую выборку по приемникам. Отказ одного приемника
// изолируется: он логируется внутренним логгером и не мешает остальным
// и не останавливает цикл выборки.
type Fanout struct {
	log    LogSink
	store  Store // nil, если хранилище не настроено
	logger *zap.Logger
}

// New создает новый раздатчик. store может быть nil.
func New(log LogSink, store Store, logger *zap.Logger) *Fanout {
	return &Fanout{
		log:    log,
		store:  store,
		logger: logger,
	}
}

// Dispatch записывает события превышения и сводную строку в журнал,
// затем добавляет выборку и события в хранилище, если оно настроено.
// На выборку приходится не больше одной вставки в metrics и по одной
// в events на каждое событие.
func (f *Fanout) Dispatch(snap *collector.Snapshot, delta tracker.Delta, events []threshold.Event) {
	for _, ev := range events {
		if err := f.log.Write(ev.Timestamp, ev.Level, ev.Message); err != nil {
			f.logger.Warn("Failed to write event to log sink", zap.Error(err))
		}
	}

	routine := RoutineMessage(snap, delta)
	if err := f.log.Write(snap.Timestamp, threshold.LevelInfo, routine); err != nil {
		f.logger.Warn("Failed to write routine record to log sink", zap.Error(err))
	}

	if f.store == nil {
		return
	}

	if err := f.store.InsertMetric(snap.Timestamp, snap.CPUPct, snap.MemPct, snap.DiskPct,
		snap.NetSentCum, snap.NetRecvCum); err != nil {
		f.logger.Warn("Failed to persist metric sample", zap.Error(err))
	}

	for _, ev := range events {
		if err := f.store.InsertEvent(ev.Timestamp, string(ev.Level), ev.Message); err != nil {
			f.logger.Warn("Failed to persist event",
				zap.String("subject", string(ev.Subject)),
				zap.Error(err))
		}
	}
}

// RoutineMessage собирает сводную строку по всем метрикам выборки
func RoutineMessage(snap *collector.Snapshot, delta tracker.Delta) string {
	return fmt.Sprintf("CPU: %.1f%%, MEM: %.1f%%, DISK: %.1f%%, NET Δ Sent: %s, Δ Recv: %s",
		snap.CPUPct, snap.MemPct, snap.DiskPct,
		bytefmt.Human(delta.SentBytes), bytefmt.Human(delta.RecvBytes))
}
