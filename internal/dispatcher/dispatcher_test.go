package dispatcher

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// testLogger implements Logger for testing
type testLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *testLogger) Debug(msg string, keysAndValues ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf("DEBUG: %s %v", msg, keysAndValues))
}

func (l *testLogger) Info(msg string, keysAndValues ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf("INFO: %s %v", msg, keysAndValues))
}

func (l *testLogger) Error(msg string, keysAndValues ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf("ERROR: %s %v", msg, keysAndValues))
}

func (l *testLogger) hasPrefix(prefix string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, msg := range l.messages {
		if strings.HasPrefix(msg, prefix) {
			return true
		}
	}
	return false
}

func newTestDispatcher(t *testing.T) (*Dispatcher, *testLogger) {
	logger := &testLogger{}

	d, err := New(logger)
	if err != nil {
		t.Fatalf("failed to create dispatcher: %v", err)
	}

	return d, logger
}

func TestDispatcher_SyncHandler(t *testing.T) {
	d, _ := newTestDispatcher(t)

	var got Event
	d.Register("pdu.EntityState", func(e Event) (any, error) {
		got = e
		return "result", nil
	})

	result, err := d.Dispatch(Event{Route: "pdu.EntityState", Payload: 42})

	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if result != "result" {
		t.Errorf("expected 'result', got %v", result)
	}
	if got.Payload != 42 {
		t.Errorf("expected payload 42, got %v", got.Payload)
	}
	if got.Timestamp.IsZero() {
		t.Error("expected dispatch to stamp the event")
	}
}

func TestDispatcher_KeepsTimestamp(t *testing.T) {
	d, _ := newTestDispatcher(t)

	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var got time.Time
	d.Register("event.Collision", func(e Event) (any, error) {
		got = e.Timestamp
		return nil, nil
	})

	d.Dispatch(Event{Route: "event.Collision", Timestamp: ts})

	if !got.Equal(ts) {
		t.Errorf("expected %v, got %v", ts, got)
	}
}

func TestDispatcher_UnknownRoute(t *testing.T) {
	d, _ := newTestDispatcher(t)

	_, err := d.Dispatch(Event{Route: "pdu.Unknown"})

	if err == nil {
		t.Error("expected error for unknown route")
	}
}

func TestDispatcher_BufferedHandler(t *testing.T) {
	d, _ := newTestDispatcher(t)

	var processed atomic.Int32
	var wg sync.WaitGroup
	wg.Add(3)

	d.Register("pdu.Fire", func(e Event) (any, error) {
		processed.Add(1)
		wg.Done()
		return nil, nil
	}, Buffered(100))

	for i := 0; i < 3; i++ {
		result, err := d.Dispatch(Event{Route: "pdu.Fire"})
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if result != "queued" {
			t.Errorf("expected 'queued', got %v", result)
		}
	}

	wg.Wait()

	if processed.Load() != 3 {
		t.Errorf("expected 3 processed, got %d", processed.Load())
	}
}

func TestDispatcher_BufferedDropsWhenFull(t *testing.T) {
	d, _ := newTestDispatcher(t)

	started := make(chan struct{}, 1)
	block := make(chan struct{})
	d.Register("pdu.Detonation", func(e Event) (any, error) {
		select {
		case started <- struct{}{}:
		default:
		}
		<-block
		return nil, nil
	}, Buffered(2))

	// one in the handler, two in the queue
	d.Dispatch(Event{Route: "pdu.Detonation"})
	<-started
	d.Dispatch(Event{Route: "pdu.Detonation"})
	d.Dispatch(Event{Route: "pdu.Detonation"})

	_, err := d.Dispatch(Event{Route: "pdu.Detonation"})

	if err == nil {
		t.Error("expected error when queue is full")
	}

	close(block)
	d.Close()
}

func TestDispatcher_BufferedBlocking(t *testing.T) {
	d, _ := newTestDispatcher(t)

	started := make(chan struct{}, 1)
	block := make(chan struct{})
	d.Register("event.EntityState", func(e Event) (any, error) {
		select {
		case started <- struct{}{}:
		default:
		}
		<-block
		return nil, nil
	}, Buffered(1), Blocking())

	d.Dispatch(Event{Route: "event.EntityState"})
	<-started
	d.Dispatch(Event{Route: "event.EntityState"})

	done := make(chan struct{})
	go func() {
		d.Dispatch(Event{Route: "event.EntityState"})
		close(done)
	}()

	select {
	case <-done:
		t.Error("dispatch should have blocked")
	case <-time.After(50 * time.Millisecond):
	}

	close(block)
	<-done
	d.Close()
}

func TestDispatcher_BufferedErrorIsLogged(t *testing.T) {
	d, logger := newTestDispatcher(t)

	d.Register("pdu.Collision", func(e Event) (any, error) {
		return nil, fmt.Errorf("boom")
	}, Buffered(4))

	d.Dispatch(Event{Route: "pdu.Collision"})
	d.Close()

	if !logger.hasPrefix("ERROR") {
		t.Error("expected error log message")
	}
}

func TestDispatcher_CloseDrainsQueue(t *testing.T) {
	d, _ := newTestDispatcher(t)

	var processed atomic.Int32
	d.Register("pdu.EntityState", func(e Event) (any, error) {
		time.Sleep(time.Millisecond)
		processed.Add(1)
		return nil, nil
	}, Buffered(10), Blocking())

	for i := 0; i < 5; i++ {
		d.Dispatch(Event{Route: "pdu.EntityState"})
	}
	d.Close()
	d.Close()

	if processed.Load() != 5 {
		t.Errorf("expected 5 processed, got %d", processed.Load())
	}
}

func TestDispatcher_SharedQueueKeepsOrder(t *testing.T) {
	d, _ := newTestDispatcher(t)

	var mu sync.Mutex
	var order []string
	record := func(e Event) (any, error) {
		if e.Route == "pdu.EntityState" {
			time.Sleep(time.Millisecond)
		}
		mu.Lock()
		order = append(order, e.Route)
		mu.Unlock()
		return nil, nil
	}
	d.Register("pdu.EntityState", record, Queue("traffic", 16), Blocking())
	d.Register("pdu.RemoveEntity", record, Queue("traffic", 1), Blocking())

	routes := []string{"pdu.EntityState", "pdu.RemoveEntity", "pdu.EntityState", "pdu.RemoveEntity"}
	for _, r := range routes {
		if _, err := d.Dispatch(Event{Route: r}); err != nil {
			t.Fatalf("dispatch %s: %v", r, err)
		}
	}
	d.Close()

	if len(order) != len(routes) {
		t.Fatalf("expected %d handled, got %d", len(routes), len(order))
	}
	for i := range routes {
		if order[i] != routes[i] {
			t.Errorf("position %d: expected %s, got %s", i, routes[i], order[i])
		}
	}
}

func TestDispatcher_LoggedHandler(t *testing.T) {
	d, logger := newTestDispatcher(t)

	d.Register("event.Detonation", func(e Event) (any, error) {
		return "ok", nil
	}, Logged())

	d.Dispatch(Event{Route: "event.Detonation", Payload: "x"})

	logger.mu.Lock()
	defer logger.mu.Unlock()

	if len(logger.messages) < 2 {
		t.Errorf("expected at least 2 log messages, got %d", len(logger.messages))
	}
}

func TestDispatcher_LoggedHandlerError(t *testing.T) {
	d, logger := newTestDispatcher(t)

	d.Register("event.Siman", func(e Event) (any, error) {
		return nil, fmt.Errorf("test error")
	}, Logged())

	d.Dispatch(Event{Route: "event.Siman"})

	if !logger.hasPrefix("ERROR") {
		t.Error("expected error log message")
	}
}

func TestDispatcher_HasHandler(t *testing.T) {
	d, _ := newTestDispatcher(t)

	d.Register("pdu.RemoveEntity", func(e Event) (any, error) { return nil, nil })

	if !d.HasHandler("pdu.RemoveEntity") {
		t.Error("expected handler to exist")
	}

	if d.HasHandler("pdu.StopFreeze") {
		t.Error("expected handler to not exist")
	}
}

func TestDispatcher_Routes(t *testing.T) {
	d, _ := newTestDispatcher(t)

	d.Register("pdu.Fire", func(e Event) (any, error) { return nil, nil })
	d.Register("event.WeaponFire", func(e Event) (any, error) { return nil, nil })

	routes := d.Routes()
	if len(routes) != 2 || routes[0] != "event.WeaponFire" || routes[1] != "pdu.Fire" {
		t.Errorf("unexpected routes %v", routes)
	}
}

func TestDispatcher_CombinedOptions(t *testing.T) {
	d, logger := newTestDispatcher(t)

	var processed atomic.Int32
	var wg sync.WaitGroup
	wg.Add(1)

	d.Register("pdu.StartResume", func(e Event) (any, error) {
		processed.Add(1)
		wg.Done()
		return "done", nil
	}, Buffered(100), Logged())

	result, err := d.Dispatch(Event{Route: "pdu.StartResume"})

	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if result != "queued" {
		t.Errorf("expected 'queued', got %v", result)
	}

	wg.Wait()

	if processed.Load() != 1 {
		t.Errorf("expected 1 processed, got %d", processed.Load())
	}

	logger.mu.Lock()
	defer logger.mu.Unlock()

	if len(logger.messages) < 2 {
		t.Errorf("expected log messages, got %d", len(logger.messages))
	}
}
