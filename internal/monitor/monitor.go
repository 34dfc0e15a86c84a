package monitor

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/gift-interop/disbridge/internal/translate"
)

// Stats is what the monitor reads from the gateway.
type Stats interface {
	Dialect() translate.Dialect
	Entities() int
	Substitutions() int
	Loopback() bool
}

// Backlog reports entries waiting to be written, such as the journal queue.
type Backlog interface {
	Pending() int
}

// Dependencies holds all dependencies for the monitor service
type Dependencies struct {
	Stats      Stats
	Journal    Backlog // optional
	StatusPath string  // optional; status is only logged when empty
	Interval   time.Duration
	Logger     *slog.Logger
}

// Status is one snapshot of the bridge.
type Status struct {
	Time           time.Time `json:"time"`
	Dialect        string    `json:"dialect"`
	Entities       int       `json:"entities"`
	Substitutions  int       `json:"substitutions"`
	Loopback       bool      `json:"loopback"`
	JournalPending int       `json:"journalPending"`
}

// Service manages status monitoring
type Service struct {
	deps      Dependencies
	isRunning bool
	mu        sync.RWMutex
	stopChan  chan struct{}
	done      chan struct{}
}

// NewService creates a new monitor service
func NewService(deps Dependencies) *Service {
	if deps.Interval <= 0 {
		deps.Interval = time.Second
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Service{deps: deps}
}

// IsRunning returns whether the status monitor is running
func (s *Service) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Snapshot returns the current bridge status
func (s *Service) Snapshot() Status {
	st := Status{
		Time:          time.Now().UTC(),
		Dialect:       s.deps.Stats.Dialect().String(),
		Entities:      s.deps.Stats.Entities(),
		Substitutions: s.deps.Stats.Substitutions(),
		Loopback:      s.deps.Stats.Loopback(),
	}
	if s.deps.Journal != nil {
		st.JournalPending = s.deps.Journal.Pending()
	}
	return st
}

// Start starts the status monitor goroutine
func (s *Service) Start() error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}

	var statusFile *os.File
	if s.deps.StatusPath != "" {
		f, err := os.Create(s.deps.StatusPath)
		if err != nil {
			s.mu.Unlock()
			return fmt.Errorf("error creating status file: %w", err)
		}
		statusFile = f
	}

	s.isRunning = true
	s.stopChan = make(chan struct{})
	s.done = make(chan struct{})
	stop, done := s.stopChan, s.done
	s.mu.Unlock()

	go func() {
		defer close(done)
		defer func() {
			s.mu.Lock()
			s.isRunning = false
			s.mu.Unlock()
		}()
		if statusFile != nil {
			defer statusFile.Close()
		}

		logger := s.deps.Logger
		logger.Debug("Starting status monitor", "interval", s.deps.Interval)

		ticker := time.NewTicker(s.deps.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				st := s.Snapshot()
				logger.Debug("bridge status",
					"entities", st.Entities,
					"substitutions", st.Substitutions,
					"loopback", st.Loopback,
					"journalPending", st.JournalPending)

				if statusFile != nil {
					if err := writeStatus(statusFile, st); err != nil {
						logger.Error("Error writing status file", "error", err)
					}
				}
			}
		}
	}()

	return nil
}

// Stop stops the status monitor and waits for it to exit
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	close(s.stopChan)
	done := s.done
	s.isRunning = false
	s.mu.Unlock()

	<-done
}

func writeStatus(f *os.File, st Status) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	if err := f.Truncate(0); err != nil {
		return err
	}
	if _, err := f.Seek(0, 0); err != nil {
		return err
	}
	_, err = f.Write(append(data, '\n'))
	return err
}
