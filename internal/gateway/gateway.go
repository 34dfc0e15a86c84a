// Package gateway connects a DIS transport and the training platform's message
// bus through the dialect translator.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/gift-interop/disbridge/internal/cache"
	"github.com/gift-interop/disbridge/internal/convert"
	"github.com/gift-interop/disbridge/internal/geo"
	"github.com/gift-interop/disbridge/internal/journal"
	"github.com/gift-interop/disbridge/internal/translate"
	"github.com/gift-interop/disbridge/pkg/core"
	"github.com/gift-interop/disbridge/pkg/pdu"
)

const instrumentationName = "github.com/gift-interop/disbridge/internal/gateway"

// Origin is the platform component an outbound event came from.
type Origin uint8

const (
	OriginPlatform Origin = iota
	// OriginDomain marks events from the domain module, which replays session
	// logs during playback.
	OriginDomain
)

// EventSink receives translated inbound events.
type EventSink interface {
	PublishEvent(ctx context.Context, e core.Event) error
}

// PDUSink receives translated outbound PDUs.
type PDUSink interface {
	SendPDU(ctx context.Context, p pdu.PDU) error
}

// Journal stores translated traffic.
type Journal interface {
	Record(e journal.Entry)
}

// Metrics counts translated traffic.
type Metrics interface {
	RecordTranslation(direction, kind, dialect string, substitutions int)
}

// Options configures a Gateway. Events and PDUs are required.
type Options struct {
	Dialect translate.Dialect
	Address core.SimulationAddress
	Events  EventSink
	PDUs    PDUSink
	Journal Journal
	Metrics Metrics
	Logger  *slog.Logger
	Now     func() time.Time
}

// Gateway translates traffic in both directions and keeps the last known state
// of every entity it has seen.
type Gateway struct {
	translator *translate.Translator
	address    core.SimulationAddress
	events     EventSink
	pdus       PDUSink
	journal    Journal
	metrics    Metrics
	log        *slog.Logger
	now        func() time.Time

	entities      *cache.EntityCache
	markings      *cache.MarkingIndex
	substitutions cache.SafeCounter
	loopback      atomic.Bool

	translated  metric.Int64Counter
	substituted metric.Int64Counter
}

// New creates a Gateway.
// Uses the global OTel meter for metrics (no-op if not configured).
func New(opts Options) (*Gateway, error) {
	if opts.Events == nil || opts.PDUs == nil {
		return nil, errors.New("gateway needs an event sink and a PDU sink")
	}

	g := &Gateway{
		translator: translate.Lookup(opts.Dialect),
		address:    opts.Address,
		events:     opts.Events,
		pdus:       opts.PDUs,
		journal:    opts.Journal,
		metrics:    opts.Metrics,
		log:        opts.Logger,
		now:        opts.Now,
		entities:   cache.NewEntityCache(),
		markings:   cache.NewMarkingIndex(),
	}
	if g.log == nil {
		g.log = slog.Default()
	}
	if g.now == nil {
		g.now = time.Now
	}
	if !translate.Registered(opts.Dialect) {
		g.log.Warn("unknown dialect, using generic", "dialect", string(opts.Dialect))
	}

	m := otel.Meter(instrumentationName)
	var err error
	g.translated, err = m.Int64Counter(
		"gateway.translations",
		metric.WithDescription("Total messages translated"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating translation counter: %w", err)
	}
	g.substituted, err = m.Int64Counter(
		"gateway.substitutions",
		metric.WithDescription("Total PDU fields replaced with defaults while decoding"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating substitution counter: %w", err)
	}

	return g, nil
}

// Dialect returns the dialect the gateway translates with.
func (g *Gateway) Dialect() translate.Dialect {
	return g.translator.Dialect()
}

// Loopback reports whether outbound domain traffic is handled as inbound.
func (g *Gateway) Loopback() bool {
	return g.loopback.Load()
}

// Entity returns the last known state of an entity.
func (g *Gateway) Entity(id core.EntityIdentifier) (core.EntityState, bool) {
	return g.entities.Get(id)
}

// EntityByMarking returns the last known state of the entity carrying marking.
func (g *Gateway) EntityByMarking(marking string) (core.EntityState, bool) {
	id, ok := g.markings.Get(marking)
	if !ok {
		return core.EntityState{}, false
	}
	return g.entities.Get(id)
}

// Entities returns the number of tracked entities.
func (g *Gateway) Entities() int {
	return g.entities.Len()
}

// Substitutions returns the number of PDU fields replaced with defaults so far.
func (g *Gateway) Substitutions() int {
	return g.substitutions.Value()
}

// HandlePDU translates a received PDU and publishes the event.
func (g *Gateway) HandlePDU(ctx context.Context, p pdu.PDU) error {
	if p == nil {
		return fmt.Errorf("%w: nil PDU", translate.ErrUnsupported)
	}

	subs := translate.Substitutions(p)
	g.substitute(ctx, journal.Inbound, p.Type().String(), subs)

	e, err := g.translator.ToEvent(p)
	if err != nil {
		return fmt.Errorf("translating inbound %s: %w", p.Type(), err)
	}
	g.track(e)
	g.record(ctx, journal.Inbound, p, len(subs))

	if err := g.events.PublishEvent(ctx, e); err != nil {
		return fmt.Errorf("publishing %s: %w", e.MessageType(), err)
	}
	return nil
}

// HandleEvent translates a platform event and sends the PDU. While a playback
// session is loaded, PDUs for events from the domain module are handled as if
// they had been received instead.
func (g *Gateway) HandleEvent(ctx context.Context, e core.Event, origin Origin) error {
	if e == nil {
		return fmt.Errorf("%w: nil event", translate.ErrUnsupported)
	}

	var (
		p   pdu.PDU
		err error
	)
	if s, ok := e.(*core.Siman); ok {
		p, err = g.simanToPDU(s)
	} else {
		p, err = g.translator.ToPDU(e)
	}
	if err != nil {
		return fmt.Errorf("translating outbound %s: %w", e.MessageType(), err)
	}
	if p == nil {
		return nil
	}

	if origin == OriginDomain && g.loopback.Load() {
		g.log.Debug("looping back PDU", "kind", p.Type().String())
		return g.HandlePDU(ctx, p)
	}

	subs := translate.EventSubstitutions(e)
	g.substitute(ctx, journal.Outbound, e.MessageType().String(), subs)

	g.track(e)
	g.record(ctx, journal.Outbound, p, len(subs))
	if err := g.pdus.SendPDU(ctx, p); err != nil {
		return fmt.Errorf("sending %s: %w", p.Type(), err)
	}
	return nil
}

func (g *Gateway) substitute(ctx context.Context, direction, kind string, subs []translate.Substitution) {
	if len(subs) == 0 {
		return
	}
	for _, s := range subs {
		g.log.Warn("substituted field", "direction", direction, "kind", kind, "field", s.Field, "reason", s.Reason)
	}
	g.substitutions.Add(len(subs))
	g.substituted.Add(ctx, int64(len(subs)), metric.WithAttributes(
		attribute.String("direction", direction),
		attribute.String("kind", kind),
	))
}

func (g *Gateway) simanToPDU(s *core.Siman) (pdu.PDU, error) {
	if s != nil && s.Type == core.SimanLoad {
		g.loopback.Store(s.Playback)
		g.log.Info("session loaded", "playback", s.Playback)
	}
	if s != nil && (s.Type == core.SimanLoad || s.Type == core.SimanRestart) {
		g.reset()
	}

	p, err := translate.SimanToPDU(s, g.now().UnixMilli())
	if err != nil || p == nil {
		return p, err
	}

	origin := convert.EntityIDToPDU(core.EntityIdentifier{Address: g.address})
	switch v := p.(type) {
	case *pdu.StartResumePDU:
		v.OriginatingEntityID = origin
	case *pdu.StopFreezePDU:
		v.OriginatingEntityID = origin
	}
	return p, nil
}

// reset forgets the entities and substitutions of the previous session.
func (g *Gateway) reset() {
	g.entities.Reset()
	g.markings.Reset()
	g.substitutions.Set(0)
}

func (g *Gateway) track(e core.Event) {
	switch v := e.(type) {
	case *core.EntityState:
		if prev, ok := g.entities.Get(v.ID); ok && prev.Marking.Text != v.Marking.Text {
			if owner, ok := g.markings.Get(prev.Marking.Text); ok && owner == v.ID {
				g.markings.Delete(prev.Marking.Text)
			}
		}
		g.entities.Put(*v)
		g.markings.Set(v.Marking.Text, v.ID)
	case *core.RemoveEntity:
		if g.entities.Remove(v.ReceivingID) {
			g.log.Debug("entity removed", "entity", v.ReceivingID.String())
		}
		g.markings.DeleteEntity(v.ReceivingID)
	}
}

func (g *Gateway) record(ctx context.Context, direction string, p pdu.PDU, substitutions int) {
	kind := p.Type().String()
	dialect := g.Dialect().String()

	g.translated.Add(ctx, 1, metric.WithAttributes(
		attribute.String("direction", direction),
		attribute.String("kind", kind),
	))
	if g.metrics != nil {
		g.metrics.RecordTranslation(direction, kind, dialect, substitutions)
	}
	if g.journal != nil {
		g.journal.Record(g.entry(direction, p))
	}
}

func (g *Gateway) entry(direction string, p pdu.PDU) journal.Entry {
	e := journal.Entry{
		Time:      g.now(),
		Direction: direction,
		Kind:      p.Type().String(),
		Dialect:   g.Dialect().String(),
	}

	if id, ok := subject(p); ok {
		e.Site = id.Address.Site
		e.Application = id.Address.Application
		e.Entity = id.Entity
	}
	if loc, ok := location(p); ok {
		if pt, err := geo.Point3857FromGeocentric(convert.LocationFromPDU(loc)); err == nil {
			e.Position = pt
		}
	}

	payload, err := json.Marshal(p)
	if err != nil {
		g.log.Warn("journal payload not stored", "kind", e.Kind, "error", err)
	} else {
		e.Payload = payload
	}
	return e
}

// subject returns the entity a PDU is about.
func subject(p pdu.PDU) (pdu.EntityID, bool) {
	switch v := p.(type) {
	case *pdu.EntityStatePDU:
		return v.EntityID, true
	case *pdu.FirePDU:
		return v.FiringEntityID, true
	case *pdu.DetonationPDU:
		return v.FiringEntityID, true
	case *pdu.CollisionPDU:
		return v.IssuingEntityID, true
	case *pdu.RemoveEntityPDU:
		return v.ReceivingEntityID, true
	case *pdu.StartResumePDU:
		return v.OriginatingEntityID, true
	case *pdu.StopFreezePDU:
		return v.OriginatingEntityID, true
	}
	return pdu.EntityID{}, false
}

func location(p pdu.PDU) (pdu.WorldCoordinates, bool) {
	switch v := p.(type) {
	case *pdu.EntityStatePDU:
		return v.Location, true
	case *pdu.FirePDU:
		return v.Location, true
	case *pdu.DetonationPDU:
		return v.Location, true
	}
	return pdu.WorldCoordinates{}, false
}
