package collector

import "time"

// Snapshot содержит все метрики системы, снятые в один момент времени.
// Создается один раз на выборку и после этого не изменяется.
type Snapshot struct {
	Timestamp time.Time `json:"timestamp"`
	CPUPct    float64   `json:"cpu_pct"`
	MemPct    float64   `json:"mem_pct"`
	DiskPct   float64   `json:"disk_pct"`

	// Кумулятивные сетевые счетчики, суммированные по всем интерфейсам.
	// Монотонно неубывающие; могут сброситься в 0 при рестарте источника.
	NetSentCum uint64 `json:"net_sent_cum"`
	NetRecvCum uint64 `json:"net_recv_cum"`
}
