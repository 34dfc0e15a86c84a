// Package stream carries bridge traffic as newline delimited JSON messages.
package stream

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/gift-interop/disbridge/internal/dispatcher"
	"github.com/gift-interop/disbridge/internal/gateway"
	"github.com/gift-interop/disbridge/pkg/core"
	"github.com/gift-interop/disbridge/pkg/pdu"
)

// Directions of a message.
const (
	DirectionPDU   = "pdu"
	DirectionEvent = "event"
)

// maxLine bounds a single message.
const maxLine = 1 << 20

// Message is one line of the stream. Payload holds a PDU record when Direction
// is "pdu" and a platform event when it is "event".
type Message struct {
	Direction string          `json:"direction"`
	Kind      string          `json:"kind"`
	Origin    string          `json:"origin,omitempty"`
	Payload   json.RawMessage `json:"payload"`
}

// Decode turns a message into a dispatcher event.
func Decode(m Message) (dispatcher.Event, error) {
	switch m.Direction {
	case DirectionPDU:
		t, err := PDUType(m.Kind)
		if err != nil {
			return dispatcher.Event{}, err
		}
		p := pdu.New(t)
		if err := json.Unmarshal(m.Payload, p); err != nil {
			return dispatcher.Event{}, fmt.Errorf("decoding %s payload: %w", t, err)
		}
		return dispatcher.Event{Route: gateway.PDURoute(t), Payload: p}, nil

	case DirectionEvent:
		e, err := NewEvent(m.Kind)
		if err != nil {
			return dispatcher.Event{}, err
		}
		if err := json.Unmarshal(m.Payload, e); err != nil {
			return dispatcher.Event{}, fmt.Errorf("decoding %s payload: %w", e.MessageType(), err)
		}
		origin := gateway.OriginPlatform
		if m.Origin == "domain" {
			origin = gateway.OriginDomain
		}
		return dispatcher.Event{
			Route:   gateway.EventRoute(e.MessageType()),
			Payload: gateway.Outbound{Event: e, Origin: origin},
		}, nil

	default:
		return dispatcher.Event{}, fmt.Errorf("unknown direction: %q", m.Direction)
	}
}

// Writer encodes translated traffic as messages. It serves as both gateway sinks.
type Writer struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewWriter returns a Writer encoding one message per line to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{enc: json.NewEncoder(w)}
}

// PublishEvent writes an inbound translation.
func (w *Writer) PublishEvent(_ context.Context, e core.Event) error {
	return w.write(DirectionEvent, e.MessageType().String(), e)
}

// SendPDU writes an outbound translation.
func (w *Writer) SendPDU(_ context.Context, p pdu.PDU) error {
	return w.write(DirectionPDU, p.Type().String(), p)
}

func (w *Writer) write(direction, kind string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", kind, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	return w.enc.Encode(Message{Direction: direction, Kind: kind, Payload: payload})
}

// Run reads messages from r and dispatches them until r is exhausted or ctx is
// done. Bad lines are logged and skipped. Run returns the number of messages
// dispatched.
func Run(ctx context.Context, r io.Reader, d *dispatcher.Dispatcher, log *slog.Logger) (int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	n, line := 0, 0
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		line++
		if len(sc.Bytes()) == 0 {
			continue
		}

		var m Message
		if err := json.Unmarshal(sc.Bytes(), &m); err != nil {
			log.Warn("skipping malformed message", "line", line, "error", err)
			continue
		}
		e, err := Decode(m)
		if err != nil {
			log.Warn("skipping message", "line", line, "error", err)
			continue
		}
		if _, err := d.Dispatch(e); err != nil {
			log.Error("dispatch failed", "line", line, "route", e.Route, "error", err)
			continue
		}
		n++
	}
	if err := sc.Err(); err != nil && !errors.Is(err, io.EOF) {
		return n, fmt.Errorf("reading messages: %w", err)
	}
	return n, nil
}
