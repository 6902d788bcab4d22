// Package observability aggregates what the telemetry worker learns into the health report.
package observability

import (
	"log/slog"
	"runtime"
	"sync"
	"time"

	"team-roulette/domain/event"
)

// HealthStats is served as is by the health endpoint.
type HealthStats struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds int64   `json:"uptime_seconds"`
	PID           int32   `json:"pid"`
	ProcessStatus string  `json:"process_status"`
	CPUPercent    float64 `json:"cpu_percent"`
	RAMPercent    float32 `json:"ram_percent"`
	RSSMb         uint64  `json:"rss_mb"`

	AllocMemMb uint64 `json:"alloc_mem_mb"`
	NumGC      uint32 `json:"num_gc"`
	Goroutines int    `json:"goroutines"`

	Splits         uint64 `json:"splits"`
	VoiceSplits    uint64 `json:"voice_splits"`
	MembersRouted  uint64 `json:"members_routed"`
	WorkerRestarts uint64 `json:"worker_restarts"`
}

// MonitoringManager keeps the last process sample next to the event counters.
type MonitoringManager struct {
	log       *slog.Logger
	mu        sync.RWMutex
	counter   *event.Counter
	startedAt time.Time
	process   event.ProcessTracker
	now       func() time.Time
}

func NewMonitoringManager(log *slog.Logger, counter *event.Counter) *MonitoringManager {
	return &MonitoringManager{
		log:       log,
		counter:   counter,
		startedAt: time.Now(),
		now:       time.Now,
	}
}

func (mm *MonitoringManager) RecordProcess(sample event.ProcessTracker) {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	mm.process = sample
}

func (mm *MonitoringManager) GetLatest() HealthStats {
	mm.mu.RLock()
	process := mm.process
	mm.mu.RUnlock()

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	uptime := mm.now().Sub(mm.startedAt).Truncate(time.Second)
	return HealthStats{
		Status:         "ok",
		Uptime:         uptime.String(),
		UptimeSeconds:  int64(uptime.Seconds()),
		PID:            process.PID,
		ProcessStatus:  process.Status,
		CPUPercent:     process.Cpu,
		RAMPercent:     process.RamPercent,
		RSSMb:          process.RSS / 1024 / 1024,
		AllocMemMb:     m.Alloc / 1024 / 1024,
		NumGC:          m.NumGC,
		Goroutines:     runtime.NumGoroutine(),
		Splits:         mm.counter.Get(event.TeamsPublishedType),
		VoiceSplits:    mm.counter.Get(event.VoiceSplitType),
		MembersRouted:  mm.counter.Get(event.MemberRoutedType),
		WorkerRestarts: mm.counter.Get(event.RestartedAfterPanicType),
	}
}
