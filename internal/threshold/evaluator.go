// Package threshold реализует политику перевода значений метрик
// в события уровня WARNING или ERROR.
package threshold

import (
	"fmt"
	"time"

	"healthmon/internal/collector"
)

// Level уровень серьезности события
type Level string

const (
	LevelInfo    Level = "INFO"
	LevelWarning Level = "WARNING"
	LevelError   Level = "ERROR"
)

// Subject метрика, к которой относится событие
type Subject string

const (
	SubjectCPU    Subject = "CPU"
	SubjectMemory Subject = "MEMORY"
	SubjectDisk   Subject = "DISK"
)

// Event событие превышения порога для одной метрики
type Event struct {
	Timestamp time.Time
	Level     Level
	Subject   Subject
	Value     float64
	Message   string
}

// Config пороги срабатывания в процентах (0–100).
// Неизменяемы на все время работы процесса.
type Config struct {
	CPUThreshold  float64
	MemThreshold  float64
	DiskThreshold float64

	// CriticalMargin задает вторую границу: значение выше
	// порог+margin дает ERROR вместо WARNING.
	CriticalMargin float64
}

var messageNames = map[Subject]string{
	SubjectCPU:    "CPU",
	SubjectMemory: "Memory",
	SubjectDisk:   "Disk",
}

// Evaluate сравнивает снимок с порогами и возвращает события строго
// в порядке CPU, MEMORY, DISK. Значение на пороге или ниже событий
// не порождает. Чистая функция: без ввода-вывода и побочных эффектов.
func Evaluate(snap *collector.Snapshot, cfg Config) []Event {
	var events []Event

	checks := []struct {
		subject   Subject
		value     float64
		threshold float64
	}{
		{SubjectCPU, snap.CPUPct, cfg.CPUThreshold},
		{SubjectMemory, snap.MemPct, cfg.MemThreshold},
		{SubjectDisk, snap.DiskPct, cfg.DiskThreshold},
	}

	for _, ch := range checks {
		if ch.value <= ch.threshold {
			continue
		}

		level := LevelWarning
		msg := fmt.Sprintf("High %s Usage: %.1f%%", messageNames[ch.subject], ch.value)
		if ch.value > ch.threshold+cfg.CriticalMargin {
			level = LevelError
			msg = fmt.Sprintf("%s Usage Critical: %.1f%%", messageNames[ch.subject], ch.value)
		}

		events = append(events, Event{
			Timestamp: snap.Timestamp,
			Level:     level,
			Subject:   ch.subject,
			Value:     ch.value,
			Message:   msg,
		})
	}

	return events
}
