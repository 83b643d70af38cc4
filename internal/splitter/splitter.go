// Package splitter is the autosplitter core: it polls a handful of game
// memory fields through a Memory transport, tracks their previous/current
// history, and drives an external run timer with at most one control signal
// per tick.
package splitter

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"spinsplit/internal/config"
	"spinsplit/internal/metrics"
)

// Memory is the inbound transport: best-effort reads of work-RAM offsets.
// A false ok means the location was unreadable this tick; that is a normal
// degraded condition, never an error.
type Memory interface {
	// Attached reports whether the target game is loaded and reachable.
	Attached() bool
	ReadU8(offset uint32) (uint8, bool)
	ReadU16(offset uint32) (uint16, bool)
}

// TimerPhase is the external timer's coarse state.
type TimerPhase int

const (
	TimerNotRunning TimerPhase = iota
	TimerRunning
	TimerPaused
)

func (p TimerPhase) String() string {
	switch p {
	case TimerNotRunning:
		return "NotRunning"
	case TimerRunning:
		return "Running"
	case TimerPaused:
		return "Paused"
	}
	return "Unknown"
}

// TimerControl is the outbound transport to the run timer. Control sends
// are fire-and-forget; implementations swallow transport errors.
type TimerControl interface {
	Phase() TimerPhase
	Start()
	Split()
	Reset()
}

// Signal is the at-most-one control decision a tick produces.
type Signal int

const (
	SignalNone Signal = iota
	SignalStart
	SignalSplit
	SignalReset
)

func (s Signal) String() string {
	switch s {
	case SignalStart:
		return "start"
	case SignalSplit:
		return "split"
	case SignalReset:
		return "reset"
	}
	return "none"
}

// Splitter owns the watcher bank and the decision logic. A single instance
// exists for the process lifetime; the host constructs it once at startup
// and calls Tick on a fixed cadence.
type Splitter struct {
	// mu spans the whole tick so no caller can observe a bank with some
	// fields refreshed and others stale. The host scheduler makes no
	// single-threading promise.
	mu sync.Mutex

	settings config.Settings
	mem      Memory
	timer    TimerControl
	log      *zap.Logger

	watchers bank

	// runID correlates the log lines of one run, minted on start and
	// cleared on reset.
	runID string
}

// New builds a Splitter. Settings are captured by value and never change
// afterwards.
func New(settings config.Settings, mem Memory, timer TimerControl, log *zap.Logger) *Splitter {
	return &Splitter{
		settings: settings,
		mem:      mem,
		timer:    timer,
		log:      log,
	}
}

// Tick runs one poll/classify/decide cycle and returns the signal it sent,
// if any. Reset wins over split within a tick; start is only considered
// while the timer is stopped. When the game is not attached the tick is a
// no-op: the bank keeps its history and nothing is emitted.
func (s *Splitter) Tick() Signal {
	s.mu.Lock()
	defer s.mu.Unlock()

	metrics.TicksTotal.Inc()

	if !s.mem.Attached() {
		metrics.DetachedTicks.Inc()
		return SignalNone
	}

	s.watchers.refresh(s.mem)

	switch s.timer.Phase() {
	case TimerRunning, TimerPaused:
		if s.resetTriggered() {
			s.timer.Reset()
			s.log.Info("run reset", zap.String("run_id", s.runID))
			s.runID = ""
			metrics.SignalsTotal.WithLabelValues(SignalReset.String()).Inc()
			return SignalReset
		}
		if s.splitTriggered() {
			s.timer.Split()
			level, _ := s.watchers.level.Pair()
			s.log.Info("segment split",
				zap.String("run_id", s.runID),
				zap.Stringer("from", level.Old),
				zap.Stringer("to", level.Current))
			metrics.SignalsTotal.WithLabelValues(SignalSplit.String()).Inc()
			return SignalSplit
		}
	case TimerNotRunning:
		if s.startTriggered() {
			s.runID = uuid.NewString()
			s.timer.Start()
			s.log.Info("run started", zap.String("run_id", s.runID))
			metrics.SignalsTotal.WithLabelValues(SignalStart.String()).Inc()
			return SignalStart
		}
	}

	return SignalNone
}
