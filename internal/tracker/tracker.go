// Package tracker превращает кумулятивные сетевые счетчики
// в дельты за интервал между двумя соседними выборками.
package tracker

import "healthmon/internal/collector"

// Delta содержит приращение сетевых счетчиков за интервал
type Delta struct {
	SentBytes uint64
	RecvBytes uint64
}

// NetTracker хранит счетчики предыдущей выборки.
// Единственный владелец — цикл выборки, поэтому без блокировок.
type NetTracker struct {
	prevSent uint64
	prevRecv uint64
	primed   bool
}

// New создает новый трекер без предыдущей выборки
func New() *NetTracker {
	return &NetTracker{}
}

// Compute возвращает дельту относительно предыдущей выборки и
// запоминает текущие счетчики. На самой первой выборке предыдущих
// значений нет, поэтому дельта нулевая. Если счетчик уменьшился
// (сброс источника), дельта ограничивается нулем, а не уходит в минус.
func (t *NetTracker) Compute(snap *collector.Snapshot) Delta {
	var d Delta
	if t.primed {
		if snap.NetSentCum > t.prevSent {
			d.SentBytes = snap.NetSentCum - t.prevSent
		}
		if snap.NetRecvCum > t.prevRecv {
			d.RecvBytes = snap.NetRecvCum - t.prevRecv
		}
	}

	t.prevSent = snap.NetSentCum
	t.prevRecv = snap.NetRecvCum
	t.primed = true

	return d
}
