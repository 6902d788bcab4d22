package workers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"team-roulette/contract"
	"team-roulette/domain/event"
	apperrors "team-roulette/errors"
)

const waitTimeBeforeRestart = 200 * time.Millisecond

// Supervisor Own a context and a Cancel function
// Run each worker in a goroutine
// Check panics and errors
// Restart workers automatically
// Shutdown properly if parent context is canceled
// Wait for the end of all goroutines via WaitGroup
type Supervisor struct {
	Cancel    context.CancelFunc // To stop the context
	mu        sync.Mutex
	wg        *sync.WaitGroup // Wait for the end of goroutines
	log       *slog.Logger
	telemetry chan<- event.Event
	workers   []contract.Worker
}

// NewSupervisor telemetry may be nil, restarts after panic are then only logged.
func NewSupervisor(log *slog.Logger, telemetry chan<- event.Event) *Supervisor {
	return &Supervisor{wg: &sync.WaitGroup{}, log: log, telemetry: telemetry}
}

// Run Create a local cancellation trigger tied to the parent ctx
//
//	// If the parent (main) cancels, we Cancel.
//	// If WE call s.Cancel(), only our children Cancel.
func (s *Supervisor) Run(ctx context.Context) {
	supervisedCtx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.Cancel = cancel
	s.mu.Unlock()
	// Safety: ensure resources are cleaned up when Run exits
	defer cancel()

	for _, worker := range s.workers {
		s.Start(supervisedCtx, worker)
	}
	s.wg.Wait()
}

func (s *Supervisor) Add(worker ...contract.Worker) contract.ISupervisor {
	s.workers = append(s.workers, worker...)
	return s
}

// Start runs a worker under supervision.
// The worker is executed in a dedicated goroutine. If its Run method panics or
// returns an error, the supervisor restarts it after a short delay.
// A failure in one worker must not stop the supervisor itself.
func (s *Supervisor) Start(ctx context.Context, worker contract.Worker) {
	s.wg.Add(1)
	workerName := contract.GetWorkerName(worker)

	go func() {
		defer s.wg.Done()

		for {
			if ctx.Err() != nil {
				s.log.Info(fmt.Sprintf("Stopping : %s", workerName))
				return
			}

			err := func() (err error) {
				defer func() {
					if r := recover(); r != nil {
						err = fmt.Errorf("%w: %v", apperrors.ErrWorkerPanic, r)
					}
				}()
				return worker.Run(ctx)
			}()

			if err == nil {
				// Terminated properly, never restart !
				s.log.Info(fmt.Sprintf("Worker finished : %s", workerName))
				return
			}

			if ctx.Err() != nil {
				s.log.Info("Worker stopped (context canceled)", "name", workerName)
				return
			}

			if errors.Is(err, apperrors.ErrWorkerPanic) {
				event.Emit(s.telemetry, event.New(event.RestartedAfterPanicType, event.WorkerRestartedAfterPanic{WorkerName: workerName}))
			}
			s.log.Warn("Worker crashed, restarting", "name", workerName, "error", err)
			select {
			case <-ctx.Done():
				// Context canceled: priority stop.
				return
			case <-time.After(waitTimeBeforeRestart):
			}
		}
	}()
}

// Stop Cancel all goroutines listening channel for Ctx.Done
// Supervisor will wait for all goroutines to finish
func (s *Supervisor) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Cancel != nil {
		s.Cancel()
	}
}
