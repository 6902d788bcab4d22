package workers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"team-roulette/domain/event"

	"github.com/shirou/gopsutil/process"
)

// HealthMonitoringWorker samples the current process and sends the figures as telemetry.
type HealthMonitoringWorker struct {
	log            *slog.Logger
	telemetryChan  chan<- event.Event
	metricInterval time.Duration
	pid            int32
}

func NewHealthMonitoringWorker(
	log *slog.Logger,
	telemetryChan chan<- event.Event,
	metricInterval time.Duration,
) *HealthMonitoringWorker {
	return &HealthMonitoringWorker{
		log:            log,
		telemetryChan:  telemetryChan,
		metricInterval: metricInterval,
		pid:            int32(os.Getpid()),
	}
}

func (w *HealthMonitoringWorker) Run(ctx context.Context) error {
	p, err := process.NewProcess(w.pid)
	if err != nil {
		return err
	}

	ticker := time.NewTicker(w.metricInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping process sampling")
			return nil
		case <-ticker.C:
			sample, err := w.sample(p)
			if err != nil {
				w.log.Error("Error while sampling process", "pid", w.pid, "err", err)
				continue
			}
			if !event.Emit(w.telemetryChan, event.New(event.PIDTrackerType, sample)) {
				w.log.Debug("Process sample lost, telemetry channel full")
			}
		}
	}
}

func (w *HealthMonitoringWorker) sample(p *process.Process) (event.ProcessTracker, error) {
	status, err := p.Status()
	if err != nil {
		return event.ProcessTracker{}, err
	}
	cpu, err := p.CPUPercent()
	if err != nil {
		return event.ProcessTracker{}, err
	}
	ram, err := p.MemoryPercent()
	if err != nil {
		return event.ProcessTracker{}, err
	}
	mem, err := p.MemoryInfo()
	if err != nil {
		return event.ProcessTracker{}, err
	}
	return event.ProcessTracker{
		PID:        w.pid,
		Status:     status,
		Cpu:        cpu,
		RamPercent: ram,
		RSS:        mem.RSS,
	}, nil
}
