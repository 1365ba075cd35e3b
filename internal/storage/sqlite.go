// Package storage реализует долговременное хранилище выборок
// и событий поверх sqlite.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Формат метки времени в таблицах, с часовым поясом
const tsLayout = "2006-01-02 15:04:05-0700"

const schema = `
CREATE TABLE IF NOT EXISTS metrics (
	ts TEXT,
	cpu_pct REAL,
	mem_pct REAL,
	disk_pct REAL,
	net_sent INTEGER,
	net_recv INTEGER
);
CREATE TABLE IF NOT EXISTS events (
	ts TEXT,
	level TEXT,
	message TEXT
);`

// SQLite хранилище только на добавление: строки никогда не
// обновляются и не удаляются. Доступ однопоточный — пишет только
// цикл выборки.
type SQLite struct {
	db *sql.DB
}

// Open открывает базу по указанному пути и создает таблицы,
// если их еще нет
func Open(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// InsertMetric добавляет одну строку выборки в таблицу metrics
func (s *SQLite) InsertMetric(ts time.Time, cpuPct, memPct, diskPct float64, netSent, netRecv uint64) error {
	_, err := s.db.Exec(
		`INSERT INTO metrics (ts, cpu_pct, mem_pct, disk_pct, net_sent, net_recv) VALUES (?, ?, ?, ?, ?, ?)`,
		ts.Format(tsLayout), cpuPct, memPct, diskPct, int64(netSent), int64(netRecv))
	if err != nil {
		return fmt.Errorf("failed to insert metric: %w", err)
	}
	return nil
}

// InsertEvent добавляет одно событие в таблицу events
func (s *SQLite) InsertEvent(ts time.Time, level, message string) error {
	_, err := s.db.Exec(
		`INSERT INTO events (ts, level, message) VALUES (?, ?, ?)`,
		ts.Format(tsLayout), level, message)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

// Close закрывает базу
func (s *SQLite) Close() error {
	return s.db.Close()
}
