package sink

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"healthmon/internal/collector"
	"healthmon/internal/threshold"
	"healthmon/internal/tracker"
)

type recordedLine struct {
	level   threshold.Level
	message string
}

type fakeLog struct {
	lines []recordedLine
	err   error
}

func (f *fakeLog) Write(ts time.Time, level threshold.Level, message string) error {
	if f.err != nil {
		return f.err
	}
	f.lines = append(f.lines, recordedLine{level, message})
	return nil
}

func (f *fakeLog) Close() error { return nil }

type fakeStore struct {
	metrics int
	events  int
	err     error
}

func (f *fakeStore) InsertMetric(ts time.Time, cpu, mem, disk float64, sent, recv uint64) error {
	if f.err != nil {
		return f.err
	}
	f.metrics++
	return nil
}

func (f *fakeStore) InsertEvent(ts time.Time, level, message string) error {
	if f.err != nil {
		return f.err
	}
	f.events++
	return nil
}

func sampleSnap() *collector.Snapshot {
	return &collector.Snapshot{Timestamp: time.Now(), CPUPct: 23.0, MemPct: 45.2, DiskPct: 67.1}
}

func sampleEvents() []threshold.Event {
	return []threshold.Event{
		{Level: threshold.LevelWarning, Subject: threshold.SubjectMemory, Message: "High Memory Usage: 89.7%"},
		{Level: threshold.LevelError, Subject: threshold.SubjectDisk, Message: "Disk Usage Critical: 95.4%"},
	}
}

func TestDispatchWithoutStore(t *testing.T) {
	log := &fakeLog{}
	f := New(log, nil, zap.NewNop())

	f.Dispatch(sampleSnap(), tracker.Delta{SentBytes: 114688, RecvBytes: 542720}, nil)

	if len(log.lines) != 1 {
		t.Fatalf("want one log line, got %d", len(log.lines))
	}
	if log.lines[0].level != threshold.LevelInfo {
		t.Errorf("routine record level: want INFO, got %s", log.lines[0].level)
	}
	want := "CPU: 23.0%, MEM: 45.2%, DISK: 67.1%, NET Δ Sent: 112 KB, Δ Recv: 530 KB"
	if log.lines[0].message != want {
		t.Errorf("routine record:\nwant %q\ngot  %q", want, log.lines[0].message)
	}
}

func TestDispatchWritesEventsBeforeRoutine(t *testing.T) {
	log := &fakeLog{}
	store := &fakeStore{}
	f := New(log, store, zap.NewNop())

	f.Dispatch(sampleSnap(), tracker.Delta{}, sampleEvents())

	if len(log.lines) != 3 {
		t.Fatalf("want three log lines, got %d", len(log.lines))
	}
	if log.lines[0].level != threshold.LevelWarning || log.lines[1].level != threshold.LevelError {
		t.Errorf("event order broken: %+v", log.lines)
	}
	if log.lines[2].level != threshold.LevelInfo {
		t.Errorf("routine record must come last, got %+v", log.lines)
	}

	// ровно одна вставка в metrics и по одной на событие
	if store.metrics != 1 {
		t.Errorf("metric inserts: want 1, got %d", store.metrics)
	}
	if store.events != 2 {
		t.Errorf("event inserts: want 2, got %d", store.events)
	}
}

func TestStoreFailureDoesNotBlockLog(t *testing.T) {
	log := &fakeLog{}
	store := &fakeStore{err: errors.New("database is locked")}
	f := New(log, store, zap.NewNop())

	f.Dispatch(sampleSnap(), tracker.Delta{}, sampleEvents())

	if len(log.lines) != 3 {
		t.Fatalf("log sink must receive all records despite store failure, got %d lines", len(log.lines))
	}
}

func TestLogFailureDoesNotPanicOrBlockStore(t *testing.T) {
	log := &fakeLog{err: errors.New("write failed")}
	store := &fakeStore{}
	f := New(log, store, zap.NewNop())

	f.Dispatch(sampleSnap(), tracker.Delta{}, sampleEvents())

	if store.metrics != 1 || store.events != 2 {
		t.Errorf("store must receive records despite log failure, got %d/%d", store.metrics, store.events)
	}
}
