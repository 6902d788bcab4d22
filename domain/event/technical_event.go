package event

const (
	RestartedAfterPanicType Type = "WORKER_RESTARTED_AFTER_PANIC"
	PIDTrackerType          Type = "PID_TRACKER"
)

type WorkerRestartedAfterPanic struct {
	WorkerName string
}

type ProcessTracker struct {
	PID        int32
	Status     string
	Cpu        float64
	RamPercent float32
	RSS        uint64 // bytes
}
