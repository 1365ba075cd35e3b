package sink

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"healthmon/internal/threshold"
)

const timeLayout = "2006-01-02 15:04:05"

// LogSink журнальный приемник записей мониторинга
type LogSink interface {
	Write(ts time.Time, level threshold.Level, message string) error
	Close() error
}

// RotatingLog пишет форматированные строки в файл с ротацией по размеру
// и дублирует их в stdout. Ротация прозрачна для остального кода.
type RotatingLog struct {
	file   *lumberjack.Logger
	mirror *os.File
}

// NewRotatingLog создает журнал мониторинга. Каталог файла создается
// при необходимости; недоступность файла — ошибка запуска.
func NewRotatingLog(path string, maxBytes int64, backups int) (*RotatingLog, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	// Проверяем, что файл вообще открывается на запись: lumberjack
	// открывает его лениво и о проблеме мы узнали бы только в цикле.
	probe, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("log target unwritable: %w", err)
	}
	probe.Close()

	// lumberjack считает размер в мегабайтах, округляем вверх
	maxMB := int((maxBytes + 1024*1024 - 1) / (1024 * 1024))
	if maxMB < 1 {
		maxMB = 1
	}

	return &RotatingLog{
		file: &lumberjack.Logger{
			Filename:   path,
			MaxSize:    maxMB,
			MaxBackups: backups,
		},
		mirror: os.Stdout,
	}, nil
}

// Write добавляет одну строку вида "[<время>] <УРОВЕНЬ>  <сообщение>".
// Уровень дополняется пробелами до ширины 9, чтобы сообщения
// выравнивались в одну колонку.
func (l *RotatingLog) Write(ts time.Time, level threshold.Level, message string) error {
	line := fmt.Sprintf("[%s] %-9s%s\n", ts.Format(timeLayout), level, message)

	fmt.Fprint(l.mirror, line)

	if _, err := l.file.Write([]byte(line)); err != nil {
		return fmt.Errorf("failed to write log line: %w", err)
	}
	return nil
}

// Close закрывает файл журнала
func (l *RotatingLog) Close() error {
	return l.file.Close()
}
