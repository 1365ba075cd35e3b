package tracker

import (
	"testing"

	"healthmon/internal/collector"
)

func snap(sent, recv uint64) *collector.Snapshot {
	return &collector.Snapshot{NetSentCum: sent, NetRecvCum: recv}
}

func TestFirstSampleYieldsZeroDelta(t *testing.T) {
	tr := New()

	d := tr.Compute(snap(1_000_000, 2_000_000))
	if d.SentBytes != 0 || d.RecvBytes != 0 {
		t.Errorf("first sample: want zero delta, got %+v", d)
	}
}

func TestDeltaBetweenSamples(t *testing.T) {
	tr := New()
	tr.Compute(snap(1000, 5000))

	d := tr.Compute(snap(1300, 5800))
	if d.SentBytes != 300 {
		t.Errorf("sent delta: want 300, got %d", d.SentBytes)
	}
	if d.RecvBytes != 800 {
		t.Errorf("recv delta: want 800, got %d", d.RecvBytes)
	}
}

func TestCounterResetClampsToZero(t *testing.T) {
	tr := New()
	tr.Compute(snap(9000, 9000))

	// счетчики сбросились в меньшее значение
	d := tr.Compute(snap(100, 200))
	if d.SentBytes != 0 || d.RecvBytes != 0 {
		t.Errorf("reset: want zero delta, got %+v", d)
	}

	// после сброса отсчет идет от новых значений
	d = tr.Compute(snap(150, 260))
	if d.SentBytes != 50 || d.RecvBytes != 60 {
		t.Errorf("after reset: want 50/60, got %+v", d)
	}
}

func TestIndependentClamping(t *testing.T) {
	tr := New()
	tr.Compute(snap(1000, 1000))

	// сбросился только один счетчик
	d := tr.Compute(snap(500, 1700))
	if d.SentBytes != 0 {
		t.Errorf("sent delta: want 0, got %d", d.SentBytes)
	}
	if d.RecvBytes != 700 {
		t.Errorf("recv delta: want 700, got %d", d.RecvBytes)
	}
}
